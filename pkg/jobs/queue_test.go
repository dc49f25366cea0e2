package jobs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type outcomeRecorder struct {
	mu       sync.Mutex
	outcomes []Outcome
}

func (r *outcomeRecorder) observe(_ Job, outcome Outcome, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}

func (r *outcomeRecorder) snapshot() []Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Outcome(nil), r.outcomes...)
}

func TestQueueProcessesJobs(t *testing.T) {
	var processed int32
	done := make(chan struct{}, 3)
	rec := &outcomeRecorder{}
	q := NewQueue("recompute", func(_ context.Context, job Job) error {
		atomic.AddInt32(&processed, 1)
		done <- struct{}{}
		return nil
	}, QueueConfig{Workers: 2, Observer: rec.observe})
	q.Start(context.Background())
	defer q.Stop()

	for _, key := range []string{"stu1", "stu2", "stu3"} {
		require.NoError(t, q.Enqueue(Job{ID: key, Type: "recompute", Key: key}))
	}
	for i := 0; i < 3; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for jobs")
		}
	}
	assert.Equal(t, int32(3), atomic.LoadInt32(&processed))
	assert.Eventually(t, func() bool { return len(rec.snapshot()) == 3 }, time.Second, 10*time.Millisecond)
}

func TestQueueRetriesThenFails(t *testing.T) {
	var attempts int32
	rec := &outcomeRecorder{}
	q := NewQueue("recompute", func(_ context.Context, _ Job) error {
		atomic.AddInt32(&attempts, 1)
		return errors.New("store unavailable")
	}, QueueConfig{MaxRetries: 2, RetryDelay: 5 * time.Millisecond, Observer: rec.observe})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "j1", Key: "stu1"}))

	assert.Eventually(t, func() bool {
		got := rec.snapshot()
		return len(got) == 3 && got[2] == OutcomeFailed
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, []Outcome{OutcomeRetried, OutcomeRetried, OutcomeFailed}, rec.snapshot())
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestQueueEnqueueBeforeStart(t *testing.T) {
	q := NewQueue("idle", func(context.Context, Job) error { return nil }, QueueConfig{})
	assert.Error(t, q.Enqueue(Job{ID: "x"}))
	q.Stop()
}

func TestQueueEnqueueAfterStop(t *testing.T) {
	q := NewQueue("stopped", func(context.Context, Job) error { return nil }, QueueConfig{})
	q.Start(context.Background())
	q.Stop()
	assert.Error(t, q.Enqueue(Job{ID: "x"}))
}
