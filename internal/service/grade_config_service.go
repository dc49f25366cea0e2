package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/gradebook-api/internal/dto"
	"github.com/noah-isme/gradebook-api/internal/events"
	"github.com/noah-isme/gradebook-api/internal/grading"
	"github.com/noah-isme/gradebook-api/internal/models"
	appErrors "github.com/noah-isme/gradebook-api/pkg/errors"
)

// ConfigKey is the store key of the global grading policy.
const ConfigKey = "grades:config"

// NormalizedConfig is the outcome of rescaling a config's weights.
type NormalizedConfig struct {
	Config models.GradeConfig
	Total  float64
	Valid  bool
}

// GradeConfigService owns the persisted grading policy.
type GradeConfigService struct {
	store     KVStore
	publisher events.Publisher
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGradeConfigService constructs the service. A nil publisher disables
// config change events.
func NewGradeConfigService(store KVStore, publisher events.Publisher, validate *validator.Validate, logger *zap.Logger) *GradeConfigService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeConfigService{store: store, publisher: publisher, validator: validate, logger: logger}
}

// GetConfig returns the persisted policy, falling back to the default when
// it is absent, unreadable or malformed. It never fails.
func (s *GradeConfigService) GetConfig(ctx context.Context) models.GradeConfig {
	raw, err := s.store.Get(ctx, ConfigKey)
	if err != nil {
		if !errors.Is(err, appErrors.ErrKeyNotFound) {
			s.logger.Error("load grade config failed, using default", zap.Error(err))
		}
		return models.DefaultGradeConfig()
	}

	var cfg models.GradeConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		s.logger.Warn("grade config is malformed, using default", zap.Error(err))
		return models.DefaultGradeConfig()
	}
	return cfg
}

// SaveConfig overwrites the persisted policy as given. Weights are not
// validated. Subscribers are notified after a successful write.
func (s *GradeConfigService) SaveConfig(ctx context.Context, cfg models.GradeConfig) error {
	if cfg.MidtermWeights == nil {
		cfg.MidtermWeights = []float64{}
	}
	payload, err := json.Marshal(cfg)
	if err != nil {
		return appErrors.Internal(err, "failed to encode grade config")
	}
	if err := s.store.Set(ctx, ConfigKey, payload); err != nil {
		return appErrors.Internal(err, "failed to save grade config")
	}
	s.logger.Info("grade config saved",
		zap.Float64s("midterm_weights", cfg.MidtermWeights),
		zap.Float64("end_sem_weight", cfg.EndSemWeight))

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.EventConfigUpdated, events.ConfigUpdated{Config: cfg}); err != nil {
			s.logger.Warn("publish config update failed", zap.Error(err))
		}
	}
	return nil
}

// Update checks that both weight fields are present, saves the config and
// returns it.
func (s *GradeConfigService) Update(ctx context.Context, req dto.GradeConfigRequest) (*models.GradeConfig, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade config payload")
	}
	cfg := req.ToModel()
	if err := s.SaveConfig(ctx, cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize rescales cfg so its weights sum to 1 and reports whether the
// input already did. Nothing is persisted.
func (s *GradeConfigService) Normalize(cfg models.GradeConfig) NormalizedConfig {
	return NormalizedConfig{
		Config: grading.NormalizeWeights(cfg),
		Total:  grading.TotalWeight(cfg),
		Valid:  grading.WeightsSumToOne(cfg),
	}
}
