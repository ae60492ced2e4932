package jobs

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/quatton/metashare/pkg/mslog"
	"golang.org/x/sync/errgroup"
)

// Handler runs one job. A returned error makes the worker retry the job
// until MaxAttempts is reached.
type Handler func(ctx context.Context, job *Job) error

type WorkerConfig struct {
	Concurrency int
	PollTimeout time.Duration
	MaxAttempts int
	// ErrorBackoff is how long a goroutine pauses after the queue itself
	// fails.
	ErrorBackoff time.Duration
}

func (c WorkerConfig) withDefaults() WorkerConfig {
	if c.Concurrency <= 0 {
		c.Concurrency = 4
	}
	if c.PollTimeout <= 0 {
		c.PollTimeout = 5 * time.Second
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.ErrorBackoff <= 0 {
		c.ErrorBackoff = time.Second
	}
	return c
}

// Worker pulls jobs for its registered kinds from a Consumer and runs them
// on a fixed pool of goroutines. Kinds without a handler are never
// dequeued, so another consumer can own them.
type Worker struct {
	queue    Consumer
	cfg      WorkerConfig
	logger   *mslog.Logger
	handlers map[Kind]Handler
}

func NewWorker(queue Consumer, cfg WorkerConfig, logger *mslog.Logger) *Worker {
	if logger == nil {
		logger = mslog.NewDefault()
	}
	return &Worker{
		queue:    queue,
		cfg:      cfg.withDefaults(),
		logger:   logger.With("component", "worker"),
		handlers: make(map[Kind]Handler),
	}
}

// Handle registers h for kind. It must be called before Run.
func (w *Worker) Handle(kind Kind, h Handler) {
	w.handlers[kind] = h
}

// Kinds returns the registered kinds in a stable order.
func (w *Worker) Kinds() []Kind {
	kinds := make([]Kind, 0, len(w.handlers))
	for k := range w.handlers {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Run consumes jobs until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	kinds := w.Kinds()
	if len(kinds) == 0 {
		return fmt.Errorf("worker has no handlers registered")
	}
	w.logger.Info("worker started", "concurrency", w.cfg.Concurrency, "kinds", fmt.Sprint(kinds))

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < w.cfg.Concurrency; i++ {
		g.Go(func() error {
			w.loop(ctx, kinds)
			return nil
		})
	}
	err := g.Wait()
	w.logger.Info("worker stopped")
	return err
}

func (w *Worker) loop(ctx context.Context, kinds []Kind) {
	for ctx.Err() == nil {
		job, err := w.queue.Dequeue(ctx, kinds, w.cfg.PollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.logger.Error("dequeue failed", "error", err)
			select {
			case <-time.After(w.cfg.ErrorBackoff):
			case <-ctx.Done():
				return
			}
			continue
		}
		if job == nil {
			continue
		}
		w.process(ctx, job)
	}
}

// settleTimeout bounds the queue writes that put a finished or interrupted
// job back. They run on a context detached from the worker's so a shutdown
// cannot drop the job.
const settleTimeout = 5 * time.Second

// Settle returns a context for cleanup that must outlive cancellation of
// ctx.
func Settle(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), settleTimeout)
}

func (w *Worker) process(ctx context.Context, job *Job) {
	log := w.logger.With("job_id", job.ID, "kind", string(job.Kind), "attempt", job.Attempt+1)

	h, ok := w.handlers[job.Kind]
	if !ok {
		log.Error("no handler for job")
		w.deadLetter(ctx, log, job)
		return
	}

	start := time.Now()
	err := safeRun(ctx, h, job)
	if err == nil {
		log.Info("job done", "duration", time.Since(start))
		return
	}

	// Interrupted by shutdown: put it back untouched for the next worker.
	if ctx.Err() != nil {
		log.Warn("job interrupted by shutdown, requeueing", "error", err)
		w.requeue(ctx, log, job)
		return
	}

	job.Attempt++
	job.LastError = err.Error()
	if job.Attempt >= w.cfg.MaxAttempts {
		log.Error("job failed permanently", "error", err)
		w.deadLetter(ctx, log, job)
		return
	}

	log.Warn("job failed, requeueing", "error", err)
	w.requeue(ctx, log, job)
}

func (w *Worker) requeue(ctx context.Context, log *mslog.Logger, job *Job) {
	ctx, cancel := Settle(ctx)
	defer cancel()
	if err := w.queue.Requeue(ctx, job); err != nil {
		log.Error("requeue failed", "error", err)
	}
}

func (w *Worker) deadLetter(ctx context.Context, log *mslog.Logger, job *Job) {
	ctx, cancel := Settle(ctx)
	defer cancel()
	if err := w.queue.DeadLetter(ctx, job); err != nil {
		log.Error("dead-letter failed", "error", err)
	}
}

func safeRun(ctx context.Context, h Handler, job *Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return h(ctx, job)
}
