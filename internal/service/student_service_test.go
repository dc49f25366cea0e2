package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gradebook-api/internal/models"
	appErrors "github.com/noah-isme/gradebook-api/pkg/errors"
)

func TestStudentServiceList(t *testing.T) {
	users := append(DefaultStudents(), models.User{ID: "adm1", FirstName: "Admin", Role: models.RoleAdmin})
	svc := NewStudentService(users)
	ctx := context.Background()

	all := svc.List(ctx, "")
	require.Len(t, all, 3)
	assert.Equal(t, "stu1", all[0].ID)
	assert.Equal(t, "stu3", all[2].ID)

	found := svc.List(ctx, "PATEL")
	require.Len(t, found, 1)
	assert.Equal(t, "stu2", found[0].ID)
}

func TestStudentServiceGet(t *testing.T) {
	svc := NewStudentService(DefaultStudents())
	ctx := context.Background()

	u, err := svc.Get(ctx, "stu3")
	require.NoError(t, err)
	assert.Equal(t, "Ishaan", u.FirstName)

	_, err = svc.Get(ctx, "adm1")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}
