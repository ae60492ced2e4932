package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/quatton/metashare/pkg/mslog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func startWorker(t *testing.T, w *Worker) (stop func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	return func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("worker did not stop")
		}
	}
}

func testConfig() WorkerConfig {
	return WorkerConfig{Concurrency: 2, PollTimeout: 20 * time.Millisecond, MaxAttempts: 3, ErrorBackoff: 10 * time.Millisecond}
}

func TestWorkerRunsHandlers(t *testing.T) {
	defer goleak.VerifyNone(t)

	q := NewMemoryQueue()
	w := NewWorker(q, testConfig(), mslog.NewDiscard())

	var seen atomic.Int32
	w.Handle(KindDeleteScratchOrg, func(ctx context.Context, job *Job) error {
		var p ScratchOrgPayload
		if err := job.Decode(&p); err != nil {
			return err
		}
		seen.Add(1)
		return nil
	})

	stop := startWorker(t, w)
	for i := 0; i < 5; i++ {
		require.NoError(t, DeleteScratchOrg(context.Background(), q, uuid.New()))
	}

	require.Eventually(t, func() bool { return seen.Load() == 5 }, 2*time.Second, 5*time.Millisecond)
	stop()
	assert.Empty(t, q.Dead())
}

func TestWorkerRetriesThenDeadLetters(t *testing.T) {
	defer goleak.VerifyNone(t)

	q := NewMemoryQueue()
	w := NewWorker(q, testConfig(), mslog.NewDiscard())

	var calls atomic.Int32
	w.Handle(KindGetUnsavedChanges, func(context.Context, *Job) error {
		calls.Add(1)
		return errors.New("salesforce unavailable")
	})

	stop := startWorker(t, w)
	require.NoError(t, GetUnsavedChanges(context.Background(), q, uuid.New()))

	require.Eventually(t, func() bool { return len(q.Dead()) == 1 }, 2*time.Second, 5*time.Millisecond)
	stop()

	assert.EqualValues(t, 3, calls.Load())
	dead := q.Dead()[0]
	assert.Equal(t, 3, dead.Attempt)
	assert.Equal(t, "salesforce unavailable", dead.LastError)
}

func TestWorkerRecoversFromPanic(t *testing.T) {
	defer goleak.VerifyNone(t)

	q := NewMemoryQueue()
	cfg := testConfig()
	cfg.MaxAttempts = 1
	w := NewWorker(q, cfg, mslog.NewDiscard())
	w.Handle(KindRefreshGitHubRepositories, func(context.Context, *Job) error {
		panic("boom")
	})

	stop := startWorker(t, w)
	require.NoError(t, RefreshRepositories(context.Background(), q, uuid.New()))

	require.Eventually(t, func() bool { return len(q.Dead()) == 1 }, 2*time.Second, 5*time.Millisecond)
	stop()
	assert.Contains(t, q.Dead()[0].LastError, "boom")
}

func TestWorkerLeavesUnhandledKinds(t *testing.T) {
	defer goleak.VerifyNone(t)

	q := NewMemoryQueue()
	w := NewWorker(q, testConfig(), mslog.NewDiscard())

	var handled atomic.Int32
	w.Handle(KindDeleteScratchOrg, func(context.Context, *Job) error {
		handled.Add(1)
		return nil
	})

	stop := startWorker(t, w)
	ctx := context.Background()
	require.NoError(t, CommitChanges(ctx, q, CommitChangesPayload{ScratchOrgID: uuid.New(), CommitMessage: "x"}))
	require.NoError(t, DeleteScratchOrg(ctx, q, uuid.New()))

	require.Eventually(t, func() bool { return handled.Load() == 1 }, 2*time.Second, 5*time.Millisecond)
	stop()

	job, err := q.Dequeue(ctx, []Kind{KindCommitChanges}, 10*time.Millisecond)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, KindCommitChanges, job.Kind)
}

func TestWorkerWithoutHandlers(t *testing.T) {
	w := NewWorker(NewMemoryQueue(), WorkerConfig{}, mslog.NewDiscard())
	assert.Error(t, w.Run(context.Background()))
}

func TestWorkerKindsSorted(t *testing.T) {
	w := NewWorker(NewMemoryQueue(), WorkerConfig{}, mslog.NewDiscard())
	noop := func(context.Context, *Job) error { return nil }
	w.Handle(KindGetUnsavedChanges, noop)
	w.Handle(KindDeleteScratchOrg, noop)
	w.Handle(KindRefreshGitHubRepositories, noop)

	assert.Equal(t, []Kind{KindDeleteScratchOrg, KindGetUnsavedChanges, KindRefreshGitHubRepositories}, w.Kinds())
}

func TestWorkerRequeuesJobInterruptedByShutdown(t *testing.T) {
	q, _ := newRedisQueue(t)
	cfg := testConfig()
	cfg.Concurrency = 1
	w := NewWorker(q, cfg, mslog.NewDiscard())

	started := make(chan struct{}, 1)
	w.Handle(KindDeleteScratchOrg, func(ctx context.Context, job *Job) error {
		started <- struct{}{}
		<-ctx.Done()
		return ctx.Err()
	})

	ctx := context.Background()
	orgID := uuid.New()
	require.NoError(t, DeleteScratchOrg(ctx, q, orgID))

	stop := startWorker(t, w)
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("job never started")
	}
	stop()

	pending, err := q.Len(ctx, KindDeleteScratchOrg)
	require.NoError(t, err)
	assert.EqualValues(t, 1, pending)
	dead, err := q.client.LLen(ctx, q.DeadLetterKey()).Result()
	require.NoError(t, err)
	assert.Zero(t, dead)

	job, err := q.Dequeue(ctx, []Kind{KindDeleteScratchOrg}, time.Second)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Zero(t, job.Attempt, "shutdown must not consume an attempt")
	var p ScratchOrgPayload
	require.NoError(t, job.Decode(&p))
	assert.Equal(t, orgID, p.ScratchOrgID)
}
