package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/noah-isme/gradebook-api/internal/repository"
	"github.com/noah-isme/gradebook-api/internal/service"
	"github.com/noah-isme/gradebook-api/pkg/config"
	"github.com/noah-isme/gradebook-api/pkg/logger"
)

func main() {
	var (
		userID  string
		seed    bool
		timeout time.Duration
	)

	flag.StringVar(&userID, "user", "", "Recompute only this student's record")
	flag.BoolVar(&seed, "seed", false, "Seed the demonstration record for -user when missing")
	flag.DurationVar(&timeout, "timeout", time.Minute, "Overall deadline")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	backend, err := repository.OpenKVBackend(ctx, cfg, logr)
	if err != nil {
		log.Fatalf("failed to open %s store: %v", cfg.Store.Driver, err)
	}
	defer backend.Close() //nolint:errcheck

	configs := service.NewGradeConfigService(backend.Store, nil, nil, logr)
	grades := service.NewGradeService(backend.Store, configs, nil, nil, nil, logr, service.GradeServiceOptions{})

	if seed && userID == "" {
		fmt.Fprintln(os.Stderr, "-seed requires -user")
		os.Exit(2)
	}

	start := time.Now()
	if userID != "" {
		if seed {
			if err := grades.SeedIfMissing(ctx, userID); err != nil {
				log.Fatalf("seed %s: %v", userID, err)
			}
		}
		if err := grades.Recompute(ctx, userID); err != nil {
			log.Fatalf("recompute %s: %v", userID, err)
		}
		printRecord(ctx, grades, userID)
		return
	}

	n, err := grades.RecomputeAll(ctx)
	fmt.Printf("Recomputed %d record(s) in %s\n", n, time.Since(start).Round(time.Millisecond))
	if err != nil {
		log.Fatalf("recompute stopped: %v", err)
	}
}

func printRecord(ctx context.Context, grades *service.GradeService, userID string) {
	record, err := grades.GetGrades(ctx, userID)
	if err != nil {
		log.Fatalf("load %s: %v", userID, err)
	}
	if record == nil {
		fmt.Printf("No grade record for %s\n", userID)
		return
	}
	fmt.Printf("Grade record %s\n", userID)
	fmt.Println("======================")
	for _, sem := range record.Semesters {
		fmt.Printf("Semester %d: GPA %.2f (%d subjects)\n", sem.SemesterNumber, valueOf(sem.SemesterGPA), len(sem.Subjects))
	}
	fmt.Printf("CGPA: %.2f\n", valueOf(record.CGPA))
}

func valueOf(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
