package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/gradebook-api/internal/dto"
	"github.com/noah-isme/gradebook-api/internal/events"
	"github.com/noah-isme/gradebook-api/internal/grading"
	"github.com/noah-isme/gradebook-api/internal/models"
	appErrors "github.com/noah-isme/gradebook-api/pkg/errors"
)

const recordKeyPrefix = "grades:"

// RecordKey returns the store key of a student's grade record.
func RecordKey(userID string) string {
	return recordKeyPrefix + userID
}

// recordKey is RecordKey for user IDs that may own a record. The policy key
// shares the record prefix, so an ID mapping onto it is rejected.
func recordKey(userID string) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, "user id is required")
	}
	key := RecordKey(userID)
	if key == ConfigKey {
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("user id %q is reserved", userID))
	}
	return key, nil
}

type gradeConfigProvider interface {
	GetConfig(ctx context.Context) models.GradeConfig
}

// GradeServiceOptions tunes the record lifecycle.
type GradeServiceOptions struct {
	// SeedOnRead seeds the demonstration record before FetchGrades reads.
	SeedOnRead bool
}

// GradeService manages per-student grade records: seeding, loading,
// editing and saving, always recomputing derived fields on write.
type GradeService struct {
	store     KVStore
	configs   gradeConfigProvider
	publisher events.Publisher
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	opts      GradeServiceOptions
}

// NewGradeService constructs the service.
func NewGradeService(store KVStore, configs gradeConfigProvider, publisher events.Publisher, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, opts GradeServiceOptions) *GradeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{
		store:     store,
		configs:   configs,
		publisher: publisher,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		opts:      opts,
	}
}

// SeedIfMissing stores the demonstration record for userID unless one
// already exists. Calling it again is a no-op.
func (s *GradeService) SeedIfMissing(ctx context.Context, userID string) error {
	key, err := recordKey(userID)
	if err != nil {
		return err
	}
	exists, err := s.store.Exists(ctx, key)
	if err != nil {
		return appErrors.Internal(err, "failed to check grade record")
	}
	if exists {
		return nil
	}

	record := grading.ComputeAll(seedRecord(userID), s.configs.GetConfig(ctx))
	s.metrics.RecordRecomputation(RecomputeScopeSeed)
	if err := s.persist(ctx, userID, record); err != nil {
		return err
	}
	s.logger.Info("grade record seeded", zap.String("user_id", userID))
	return nil
}

// GetGrades returns the stored record, or nil when it is absent or
// malformed. Only backend failures and reserved IDs are returned as errors.
func (s *GradeService) GetGrades(ctx context.Context, userID string) (*models.StudentGradesRecord, error) {
	key, err := recordKey(userID)
	if err != nil {
		return nil, err
	}
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, appErrors.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, appErrors.Internal(err, "failed to load grade record")
	}

	var record *models.StudentGradesRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		s.logger.Warn("grade record is malformed, treating as absent", zap.String("user_id", userID), zap.Error(err))
		return nil, nil
	}
	// A stored null decodes to a nil record.
	return record, nil
}

// FetchGrades loads a record for display, seeding first when configured.
// An absent record is reported as not found.
func (s *GradeService) FetchGrades(ctx context.Context, userID string) (*models.StudentGradesRecord, error) {
	if s.opts.SeedOnRead {
		if err := s.SeedIfMissing(ctx, userID); err != nil {
			return nil, err
		}
	}
	record, err := s.GetGrades(ctx, userID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("grade record for %s not found", userID))
	}
	return record, nil
}

// SaveGrades recomputes record under the current policy, stores it as the
// record of userID and returns what was stored. Derived fields on the input
// are ignored.
func (s *GradeService) SaveGrades(ctx context.Context, userID string, record models.StudentGradesRecord) (*models.StudentGradesRecord, error) {
	if _, err := recordKey(userID); err != nil {
		return nil, err
	}
	record.UserID = userID
	computed := grading.ComputeAll(record, s.configs.GetConfig(ctx))
	s.metrics.RecordRecomputation(RecomputeScopeSave)
	if err := s.persist(ctx, userID, computed); err != nil {
		return nil, err
	}
	return &computed, nil
}

// Replace validates a submitted record and saves it.
func (s *GradeService) Replace(ctx context.Context, userID string, req dto.SaveGradesRequest) (*models.StudentGradesRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade record payload")
	}
	return s.SaveGrades(ctx, userID, req.ToRecord(userID))
}

// ComputeAll recomputes record under the persisted policy without saving.
func (s *GradeService) ComputeAll(ctx context.Context, record models.StudentGradesRecord) models.StudentGradesRecord {
	s.metrics.RecordRecomputation(RecomputeScopePreview)
	return grading.ComputeAll(record, s.configs.GetConfig(ctx))
}

// Preview validates a submitted record and returns it recomputed.
func (s *GradeService) Preview(ctx context.Context, req dto.ComputeGradesRequest) (*models.StudentGradesRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade record payload")
	}
	computed := s.ComputeAll(ctx, req.ToRecord())
	return &computed, nil
}

// FindSemester returns one semester of a student's record by its number.
func (s *GradeService) FindSemester(ctx context.Context, userID string, number int) (*models.SemesterGrades, error) {
	record, err := s.FetchGrades(ctx, userID)
	if err != nil {
		return nil, err
	}
	sem, ok := record.FindSemester(number)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("semester %d not found", number))
	}
	return sem, nil
}

// ApplyEdits runs edits in order against the stored record and saves the
// result. Nothing is saved when any edit is rejected.
func (s *GradeService) ApplyEdits(ctx context.Context, userID string, req dto.GradeEditRequest) (*models.StudentGradesRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade edit payload")
	}
	current, err := s.FetchGrades(ctx, userID)
	if err != nil {
		return nil, err
	}

	draft := *current
	for i, edit := range req.Edits {
		next, err := applyEdit(draft, edit)
		if err != nil {
			return nil, appErrors.Clone(err, fmt.Sprintf("edit %d (%s): %s", i, edit.Op, err.Message))
		}
		draft = next
	}
	return s.SaveGrades(ctx, userID, draft)
}

func applyEdit(record models.StudentGradesRecord, edit dto.GradeEdit) (models.StudentGradesRecord, *appErrors.Error) {
	var ok bool
	switch edit.Op {
	case dto.EditAddSemester:
		return grading.AddSemester(record), nil
	case dto.EditRemoveSemester:
		record, ok = grading.RemoveSemester(record, edit.SemesterIndex)
	case dto.EditAddSubject:
		record, ok = grading.AddSubject(record, edit.SemesterIndex)
	case dto.EditRemoveSubject:
		record, ok = grading.RemoveSubject(record, edit.SemesterIndex, edit.SubjectIndex)
	case dto.EditUpdateSubject:
		patch := grading.SubjectPatch{Code: edit.Code, Name: edit.Name, Credits: edit.Credits}
		record, ok = grading.UpdateSubject(record, edit.SemesterIndex, edit.SubjectIndex, patch)
	case dto.EditSetAssessment:
		if edit.Value == nil || edit.Kind == "" {
			return record, appErrors.Clone(appErrors.ErrValidation, "kind and value are required")
		}
		record, ok = grading.SetAssessment(record, edit.SemesterIndex, edit.SubjectIndex, grading.AssessmentKind(edit.Kind), *edit.Value)
	default:
		return record, appErrors.Clone(appErrors.ErrValidation, "unknown edit operation")
	}
	if !ok {
		return record, appErrors.ErrInvalidIndex
	}
	return record, nil
}

// ListRecordUserIDs returns the user IDs of every stored record.
func (s *GradeService) ListRecordUserIDs(ctx context.Context) ([]string, error) {
	keys, err := s.store.Keys(ctx, recordKeyPrefix)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list grade records")
	}
	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		if key == ConfigKey {
			continue
		}
		ids = append(ids, strings.TrimPrefix(key, recordKeyPrefix))
	}
	return ids, nil
}

// Recompute reloads and re-saves one record so its derived fields match
// the current policy. A missing record is skipped.
func (s *GradeService) Recompute(ctx context.Context, userID string) error {
	record, err := s.GetGrades(ctx, userID)
	if err != nil {
		return err
	}
	if record == nil {
		s.logger.Debug("recompute skipped, record absent", zap.String("user_id", userID))
		return nil
	}
	computed := grading.ComputeAll(*record, s.configs.GetConfig(ctx))
	s.metrics.RecordRecomputation(RecomputeScopeConfigChange)
	return s.persist(ctx, userID, computed)
}

// RecomputeAll recomputes every stored record and returns how many were
// processed. It stops at the first failure.
func (s *GradeService) RecomputeAll(ctx context.Context) (int, error) {
	ids, err := s.ListRecordUserIDs(ctx)
	if err != nil {
		return 0, err
	}
	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if err := s.Recompute(ctx, id); err != nil {
			return i, err
		}
	}
	return len(ids), nil
}

func (s *GradeService) persist(ctx context.Context, userID string, record models.StudentGradesRecord) error {
	if record.Semesters == nil {
		record.Semesters = []models.SemesterGrades{}
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return appErrors.Internal(err, "failed to encode grade record")
	}
	key, err := recordKey(userID)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, key, payload); err != nil {
		return appErrors.Internal(err, "failed to save grade record")
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.EventRecordSaved, events.RecordSaved{UserID: userID, CGPA: record.CGPA}); err != nil {
			s.logger.Warn("publish record saved failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return nil
}
