package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/noah-isme/gradebook-api/internal/models"
	appErrors "github.com/noah-isme/gradebook-api/pkg/errors"
)

// StudentService is a read-only directory of the students known to the
// dashboard. Identity lives elsewhere; this only backs pickers and
// transcript headers.
type StudentService struct {
	students map[string]models.User
}

// DefaultStudents is the built-in roster.
func DefaultStudents() []models.User {
	return []models.User{
		{ID: "stu1", Email: "aarav.sharma@example.edu", FirstName: "Aarav", LastName: "Sharma", Role: models.RoleStudent, IsActive: true},
		{ID: "stu2", Email: "diya.patel@example.edu", FirstName: "Diya", LastName: "Patel", Role: models.RoleStudent, IsActive: true},
		{ID: "stu3", Email: "ishaan.verma@example.edu", FirstName: "Ishaan", LastName: "Verma", Role: models.RoleStudent, IsActive: true},
	}
}

// NewStudentService builds a directory from users, keeping only students.
func NewStudentService(users []models.User) *StudentService {
	students := make(map[string]models.User, len(users))
	for _, u := range users {
		if u.Role == models.RoleStudent {
			students[u.ID] = u
		}
	}
	return &StudentService{students: students}
}

// List returns students ordered by ID, optionally filtered by a
// case-insensitive match on name or email.
func (s *StudentService) List(_ context.Context, search string) []models.User {
	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]models.User, 0, len(s.students))
	for _, u := range s.students {
		if needle != "" && !matchesStudent(u, needle) {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get returns one student.
func (s *StudentService) Get(_ context.Context, id string) (*models.User, error) {
	u, ok := s.students[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("student %s not found", id))
	}
	return &u, nil
}

func matchesStudent(u models.User, needle string) bool {
	haystack := strings.ToLower(u.FirstName + " " + u.LastName + " " + u.Email)
	return strings.Contains(haystack, needle)
}
