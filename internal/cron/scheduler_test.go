package cron_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/flemzord/recall/internal/cron"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeJob is a controllable Job implementation.
type fakeJob struct {
	name     string
	schedule string
	err      error

	mu   sync.Mutex
	runs int
}

func (j *fakeJob) Name() string     { return j.name }
func (j *fakeJob) Schedule() string { return j.schedule }

func (j *fakeJob) Run(context.Context) error {
	j.mu.Lock()
	j.runs++
	j.mu.Unlock()
	return j.err
}

// ---------------------------------------------------------------------------
// Scheduler
// ---------------------------------------------------------------------------

func TestScheduler_RejectsDuplicateName(t *testing.T) {
	t.Parallel()

	s := cron.NewScheduler(discardLogger())
	if err := s.RegisterJob(&fakeJob{name: "job", schedule: "* * * * *"}); err != nil {
		t.Fatalf("first RegisterJob: %v", err)
	}

	err := s.RegisterJob(&fakeJob{name: "job", schedule: "*/5 * * * *"})
	if err == nil {
		t.Fatal("duplicate RegisterJob succeeded, want error")
	}
}

func TestScheduler_RejectsInvalidSchedule(t *testing.T) {
	t.Parallel()

	s := cron.NewScheduler(discardLogger())
	if err := s.RegisterJob(&fakeJob{name: "bad", schedule: "not a cron expr"}); err != nil {
		t.Fatalf("RegisterJob: %v", err)
	}

	if err := s.Start(); err == nil {
		_ = s.Stop(context.Background())
		t.Fatal("Start succeeded with invalid schedule, want error")
	}
}

func TestScheduler_RejectsSixFieldSchedule(t *testing.T) {
	t.Parallel()

	// Only 5-field expressions are accepted; the seconds field is rejected.
	s := cron.NewScheduler(discardLogger())
	if err := s.RegisterJob(&fakeJob{name: "six", schedule: "0 0 * * * *"}); err != nil {
		t.Fatalf("RegisterJob: %v", err)
	}

	if err := s.Start(); err == nil {
		_ = s.Stop(context.Background())
		t.Fatal("Start accepted a 6-field schedule, want error")
	}
}

func TestScheduler_StartStop(t *testing.T) {
	t.Parallel()

	s := cron.NewScheduler(discardLogger())
	if err := s.RegisterJob(&fakeJob{name: "noop", schedule: "* * * * *"}); err != nil {
		t.Fatalf("RegisterJob: %v", err)
	}

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Stop(context.Background()); err != nil {
		t.Errorf("Stop: %v", err)
	}
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	t.Parallel()

	s := cron.NewScheduler(discardLogger())
	if err := s.Stop(context.Background()); err != nil {
		t.Errorf("Stop without Start: %v", err)
	}
}

// ---------------------------------------------------------------------------
// RetentionPruneJob
// ---------------------------------------------------------------------------

type fakePruner struct {
	mu     sync.Mutex
	cutoff time.Time
	count  int64
	err    error
	calls  int
}

func (p *fakePruner) PruneBefore(cutoff time.Time) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cutoff = cutoff
	p.calls++
	return p.count, p.err
}

func TestRetentionPruneJob_Defaults(t *testing.T) {
	t.Parallel()

	j := &cron.RetentionPruneJob{}
	if j.Name() != "retention_prune" {
		t.Errorf("Name = %q", j.Name())
	}
	if j.Schedule() != "0 * * * *" {
		t.Errorf("default Schedule = %q, want hourly", j.Schedule())
	}

	j.ScheduleExpr = "0 3 * * *"
	if j.Schedule() != "0 3 * * *" {
		t.Errorf("Schedule = %q, want the explicit expression", j.Schedule())
	}
}

func TestRetentionPruneJob_Run(t *testing.T) {
	t.Parallel()

	pruner := &fakePruner{count: 3}
	j := &cron.RetentionPruneJob{
		Store:  pruner,
		MaxAge: 7 * 24 * time.Hour,
		Logger: discardLogger(),
	}

	before := time.Now().Add(-7 * 24 * time.Hour)
	if err := j.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	after := time.Now().Add(-7 * 24 * time.Hour)

	if pruner.calls != 1 {
		t.Fatalf("PruneBefore called %d times, want 1", pruner.calls)
	}
	if pruner.cutoff.Before(before) || pruner.cutoff.After(after) {
		t.Errorf("cutoff = %v, want now minus MaxAge", pruner.cutoff)
	}
}

func TestRetentionPruneJob_StoreError(t *testing.T) {
	t.Parallel()

	boom := errors.New("database locked")
	j := &cron.RetentionPruneJob{
		Store:  &fakePruner{err: boom},
		MaxAge: time.Hour,
		Logger: discardLogger(),
	}

	if err := j.Run(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Run error = %v, want %v", err, boom)
	}
}

func TestRetentionPruneJob_CancelledContext(t *testing.T) {
	t.Parallel()

	pruner := &fakePruner{}
	j := &cron.RetentionPruneJob{
		Store:  pruner,
		MaxAge: time.Hour,
		Logger: discardLogger(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := j.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
	if pruner.calls != 0 {
		t.Errorf("PruneBefore called %d times after cancellation, want 0", pruner.calls)
	}
}
