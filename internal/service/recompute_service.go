package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/gradebook-api/internal/events"
	"github.com/noah-isme/gradebook-api/pkg/jobs"
)

const recomputeJobType = "grades.recompute"

type recordRecomputer interface {
	ListRecordUserIDs(ctx context.Context) ([]string, error)
	Recompute(ctx context.Context, userID string) error
}

// RecomputeService brings stored records in line with a changed grading
// policy by re-saving each one on a background worker queue.
type RecomputeService struct {
	grades  recordRecomputer
	queue   *jobs.Queue
	metrics *MetricsService
	logger  *zap.Logger
}

// NewRecomputeService builds the service and its queue. The queue's
// observer is replaced so job outcomes reach metrics.
func NewRecomputeService(grades recordRecomputer, cfg jobs.QueueConfig, metrics *MetricsService, logger *zap.Logger) *RecomputeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &RecomputeService{grades: grades, metrics: metrics, logger: logger}
	if cfg.Logger == nil {
		cfg.Logger = logger
	}
	cfg.Observer = s.observe
	s.queue = jobs.NewQueue("grades-recompute", s.handle, cfg)
	return s
}

// Start launches the workers.
func (s *RecomputeService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the workers.
func (s *RecomputeService) Stop() {
	s.queue.Stop()
}

// HandleConfigUpdated enqueues one job per stored record.
func (s *RecomputeService) HandleConfigUpdated(ctx context.Context, event events.Event) error {
	ids, err := s.grades.ListRecordUserIDs(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		job := jobs.Job{ID: uuid.NewString(), Type: recomputeJobType, Key: id}
		if err := s.queue.Enqueue(job); err != nil {
			return err
		}
	}
	s.logger.Info("recompute scheduled", zap.String("event_id", event.ID), zap.Int("records", len(ids)))
	return nil
}

// HandleRecordSaved logs saved records.
func (s *RecomputeService) HandleRecordSaved(_ context.Context, event events.Event) error {
	var payload events.RecordSaved
	if err := event.Decode(&payload); err != nil {
		return err
	}
	fields := []zap.Field{zap.String("event_id", event.ID), zap.String("user_id", payload.UserID)}
	if payload.CGPA != nil {
		fields = append(fields, zap.Float64("cgpa", *payload.CGPA))
	}
	s.logger.Debug("grade record saved", fields...)
	return nil
}

func (s *RecomputeService) handle(ctx context.Context, job jobs.Job) error {
	return s.grades.Recompute(ctx, job.Key)
}

func (s *RecomputeService) observe(job jobs.Job, outcome jobs.Outcome, elapsed time.Duration) {
	s.metrics.ObserveRecomputeJob(string(outcome), elapsed)
}
