package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/gradebook-api/internal/dto"
	"github.com/noah-isme/gradebook-api/internal/events"
	"github.com/noah-isme/gradebook-api/internal/models"
	appErrors "github.com/noah-isme/gradebook-api/pkg/errors"
)

func TestGradeConfigServiceDefaultsWhenAbsent(t *testing.T) {
	svc := NewGradeConfigService(newMockKVStore(), nil, nil, nil)
	assert.Equal(t, models.DefaultGradeConfig(), svc.GetConfig(context.Background()))
}

func TestGradeConfigServiceRoundTrip(t *testing.T) {
	store := newMockKVStore()
	pub := &mockPublisher{}
	svc := NewGradeConfigService(store, pub, nil, zap.NewNop())
	ctx := context.Background()

	cfg := models.GradeConfig{MidtermWeights: []float64{1, 1}, EndSemWeight: 3}
	require.NoError(t, svc.SaveConfig(ctx, cfg))

	assert.JSONEq(t, `{"midtermWeights":[1,1],"endSemWeight":3}`, store.raw(ConfigKey))
	assert.Equal(t, cfg, svc.GetConfig(ctx))
	assert.Equal(t, 1, pub.count(events.EventConfigUpdated))
}

func TestGradeConfigServiceMalformedFallsBack(t *testing.T) {
	store := newMockKVStore()
	store.entries[ConfigKey] = []byte("{not json")
	core, logs := observer.New(zap.WarnLevel)
	svc := NewGradeConfigService(store, nil, nil, zap.New(core))

	assert.Equal(t, models.DefaultGradeConfig(), svc.GetConfig(context.Background()))
	assert.Equal(t, 1, logs.FilterMessage("grade config is malformed, using default").Len())
}

func TestGradeConfigServiceBackendFailureFallsBack(t *testing.T) {
	store := newMockKVStore()
	store.getErr = errors.New("connection refused")
	core, logs := observer.New(zap.ErrorLevel)
	svc := NewGradeConfigService(store, nil, nil, zap.New(core))

	assert.Equal(t, models.DefaultGradeConfig(), svc.GetConfig(context.Background()))
	assert.Equal(t, 1, logs.Len())
}

func TestGradeConfigServiceSaveFailure(t *testing.T) {
	store := newMockKVStore()
	store.setErr = errors.New("disk full")
	pub := &mockPublisher{}
	svc := NewGradeConfigService(store, pub, nil, nil)

	err := svc.SaveConfig(context.Background(), models.DefaultGradeConfig())
	require.Error(t, err)
	assert.Equal(t, 0, pub.count(events.EventConfigUpdated))
}

func TestGradeConfigServiceSaveStoresUnvalidatedWeights(t *testing.T) {
	store := newMockKVStore()
	svc := NewGradeConfigService(store, nil, nil, nil)
	ctx := context.Background()

	cfg := models.GradeConfig{MidtermWeights: []float64{-1, 0}, EndSemWeight: 0}
	require.NoError(t, svc.SaveConfig(ctx, cfg))
	assert.Equal(t, cfg, svc.GetConfig(ctx))
}

func TestGradeConfigServicePublishFailureIsNotFatal(t *testing.T) {
	svc := NewGradeConfigService(newMockKVStore(), &mockPublisher{err: errors.New("closed")}, nil, nil)
	assert.NoError(t, svc.SaveConfig(context.Background(), models.DefaultGradeConfig()))
}

func TestGradeConfigServiceNormalize(t *testing.T) {
	svc := NewGradeConfigService(newMockKVStore(), nil, nil, nil)

	out := svc.Normalize(models.GradeConfig{MidtermWeights: []float64{1, 1}, EndSemWeight: 3})
	assert.Equal(t, []float64{0.2, 0.2}, out.Config.MidtermWeights)
	assert.Equal(t, 0.6, out.Config.EndSemWeight)
	assert.Equal(t, 5.0, out.Total)
	assert.False(t, out.Valid)

	assert.True(t, svc.Normalize(models.DefaultGradeConfig()).Valid)
}

func TestGradeConfigServiceUpdate(t *testing.T) {
	store := newMockKVStore()
	svc := NewGradeConfigService(store, nil, nil, nil)
	ctx := context.Background()

	_, err := svc.Update(ctx, dto.GradeConfigRequest{MidtermWeights: []float64{0.5}})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	end := 0.5
	cfg, err := svc.Update(ctx, dto.GradeConfigRequest{MidtermWeights: []float64{}, EndSemWeight: &end})
	require.NoError(t, err)
	assert.Empty(t, cfg.MidtermWeights)
	assert.JSONEq(t, `{"midtermWeights":[],"endSemWeight":0.5}`, store.raw(ConfigKey))
}
