package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gradebook-api/internal/events"
	"github.com/noah-isme/gradebook-api/internal/models"
	"github.com/noah-isme/gradebook-api/pkg/jobs"
)

func TestRecomputeServiceRecomputesOnConfigChange(t *testing.T) {
	store := newMockKVStore()
	grades, _, cfg := newTestGradeService(store, false)
	ctx := context.Background()
	require.NoError(t, grades.SeedIfMissing(ctx, "stu1"))
	require.NoError(t, grades.SeedIfMissing(ctx, "stu2"))

	svc := NewRecomputeService(grades, jobs.QueueConfig{Workers: 2, RetryDelay: 5 * time.Millisecond}, NewMetricsService(), nil)
	svc.Start(ctx)
	defer svc.Stop()

	cfg.cfg = models.GradeConfig{MidtermWeights: []float64{0, 0}, EndSemWeight: 1}
	require.NoError(t, svc.HandleConfigUpdated(ctx, events.Event{ID: "evt-1", Type: events.EventConfigUpdated}))

	assert.Eventually(t, func() bool {
		for _, id := range []string{"stu1", "stu2"} {
			record, err := grades.GetGrades(ctx, id)
			if err != nil || record == nil {
				return false
			}
			if *record.Semesters[0].Subjects[0].TotalScore != 81 {
				return false
			}
		}
		return true
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRecomputeServiceListFailure(t *testing.T) {
	store := newMockKVStore()
	store.keysErr = errors.New("scan failed")
	grades, _, _ := newTestGradeService(store, false)
	svc := NewRecomputeService(grades, jobs.QueueConfig{}, nil, nil)
	svc.Start(context.Background())
	defer svc.Stop()

	assert.Error(t, svc.HandleConfigUpdated(context.Background(), events.Event{ID: "evt-2"}))
}

func TestRecomputeServiceRecordSaved(t *testing.T) {
	svc := NewRecomputeService(nil, jobs.QueueConfig{}, nil, nil)
	assert.NoError(t, svc.HandleRecordSaved(context.Background(), events.Event{Data: []byte(`{"userId":"stu1","cgpa":8.14}`)}))
	assert.Error(t, svc.HandleRecordSaved(context.Background(), events.Event{Data: []byte(`nope`)}))
}
