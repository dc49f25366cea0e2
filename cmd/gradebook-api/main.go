package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "github.com/noah-isme/gradebook-api/api/swagger"
	"github.com/noah-isme/gradebook-api/internal/events"
	"github.com/noah-isme/gradebook-api/internal/handler"
	"github.com/noah-isme/gradebook-api/internal/repository"
	"github.com/noah-isme/gradebook-api/internal/service"
	"github.com/noah-isme/gradebook-api/pkg/config"
	"github.com/noah-isme/gradebook-api/pkg/jobs"
	"github.com/noah-isme/gradebook-api/pkg/logger"
)

// @title Gradebook API
// @version 1.0.0
// @description Grade computation engine: subject totals, grade points, semester GPA and CGPA.
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, err := repository.OpenKVBackend(ctx, cfg, logr)
	if err != nil {
		logr.Fatal("failed to open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer backend.Close() //nolint:errcheck

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}
	store := service.NewInstrumentedStore(backend.Store, backend.Driver, metrics)

	bus := events.NewBus(0, logr)
	defer bus.Close() //nolint:errcheck

	validate := validator.New()
	configs := service.NewGradeConfigService(store, bus, validate, logr)
	grades := service.NewGradeService(store, configs, bus, metrics, validate, logr, service.GradeServiceOptions{
		SeedOnRead: cfg.Grades.SeedOnRead,
	})
	students := service.NewStudentService(service.DefaultStudents())
	exports := service.NewExportService(grades, students, logr)

	recompute := service.NewRecomputeService(grades, jobs.QueueConfig{
		Workers:    cfg.Grades.RecomputeWorkers,
		MaxRetries: cfg.Grades.RecomputeRetries,
		RetryDelay: cfg.Grades.RecomputeRetryDelay,
		Logger:     logr,
	}, metrics, logr)
	recompute.Start(ctx)
	defer recompute.Stop()

	if cfg.Grades.RecomputeOnConfigChange {
		if err := bus.Subscribe(ctx, events.EventConfigUpdated, recompute.HandleConfigUpdated); err != nil {
			logr.Fatal("failed to subscribe to config updates", zap.Error(err))
		}
	}
	if err := bus.Subscribe(ctx, events.EventRecordSaved, recompute.HandleRecordSaved); err != nil {
		logr.Fatal("failed to subscribe to record saves", zap.Error(err))
	}

	router := handler.NewRouter(handler.RouterDeps{
		Config:      cfg,
		Logger:      logr,
		Metrics:     metrics,
		GradeConfig: handler.NewGradeConfigHandler(configs),
		Grades:      handler.NewGradeHandler(grades, exports),
		Students:    handler.NewStudentHandler(students),
		System:      handler.NewMetricsHandler(metrics, backend.Ping),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: router, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "store", backend.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
