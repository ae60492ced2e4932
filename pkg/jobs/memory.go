package jobs

import (
	"context"
	"sync"
	"time"
)

// MemoryQueue is an in-process Queue and Consumer. It also records every
// enqueued job so tests can assert on side effects.
type MemoryQueue struct {
	mu      sync.Mutex
	pending map[Kind][]*Job
	history []*Job
	dead    []*Job
	notify  chan struct{}
}

func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{
		pending: make(map[Kind][]*Job),
		notify:  make(chan struct{}, 1),
	}
}

func (q *MemoryQueue) Enqueue(_ context.Context, kind Kind, payload any) error {
	job, err := NewJob(kind, payload)
	if err != nil {
		return err
	}
	q.mu.Lock()
	q.history = append(q.history, job)
	q.mu.Unlock()
	q.push(job)
	return nil
}

func (q *MemoryQueue) push(job *Job) {
	q.mu.Lock()
	q.pending[job.Kind] = append(q.pending[job.Kind], job)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

func (q *MemoryQueue) pop(kinds []Kind) *Job {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, k := range kinds {
		if list := q.pending[k]; len(list) > 0 {
			q.pending[k] = list[1:]
			return list[0]
		}
	}
	return nil
}

func (q *MemoryQueue) Dequeue(ctx context.Context, kinds []Kind, timeout time.Duration) (*Job, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		if job := q.pop(kinds); job != nil {
			return job, nil
		}
		select {
		case <-q.notify:
		case <-timer.C:
			return nil, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (q *MemoryQueue) Requeue(_ context.Context, job *Job) error {
	q.push(job)
	return nil
}

func (q *MemoryQueue) DeadLetter(_ context.Context, job *Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.dead = append(q.dead, job)
	return nil
}

// Enqueued returns every job ever enqueued, oldest first.
func (q *MemoryQueue) Enqueued() []*Job {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]*Job(nil), q.history...)
}

// EnqueuedKinds returns the kinds of every enqueued job, oldest first.
func (q *MemoryQueue) EnqueuedKinds() []Kind {
	jobs := q.Enqueued()
	kinds := make([]Kind, len(jobs))
	for i, j := range jobs {
		kinds[i] = j.Kind
	}
	return kinds
}

// Dead returns the dead-lettered jobs.
func (q *MemoryQueue) Dead() []*Job {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]*Job(nil), q.dead...)
}

var (
	_ Queue    = (*MemoryQueue)(nil)
	_ Consumer = (*MemoryQueue)(nil)
)
