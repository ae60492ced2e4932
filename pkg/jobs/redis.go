package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "metashare:jobs:"

// RedisQueue keeps one redis list per kind. Producers LPUSH, consumers
// BRPOP, so each list is FIFO.
type RedisQueue struct {
	client *redis.Client
	prefix string
}

func NewRedisQueue(client *redis.Client, prefix string) *RedisQueue {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisQueue{client: client, prefix: prefix}
}

// Key returns the list holding jobs of kind.
func (q *RedisQueue) Key(kind Kind) string {
	return q.prefix + string(kind)
}

// DeadLetterKey returns the list holding jobs that exhausted their retries.
func (q *RedisQueue) DeadLetterKey() string {
	return q.prefix + "dead"
}

func (q *RedisQueue) Enqueue(ctx context.Context, kind Kind, payload any) error {
	job, err := NewJob(kind, payload)
	if err != nil {
		return err
	}
	return q.push(ctx, q.Key(kind), job)
}

func (q *RedisQueue) push(ctx context.Context, key string, job *Job) error {
	raw, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, key, raw).Err()
}

func (q *RedisQueue) Dequeue(ctx context.Context, kinds []Kind, timeout time.Duration) (*Job, error) {
	keys := make([]string, len(kinds))
	for i, k := range kinds {
		keys[i] = q.Key(k)
	}

	res, err := q.client.BRPop(ctx, timeout, keys...).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	// res is [key, value]
	var job Job
	if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (q *RedisQueue) Requeue(ctx context.Context, job *Job) error {
	return q.push(ctx, q.Key(job.Kind), job)
}

func (q *RedisQueue) DeadLetter(ctx context.Context, job *Job) error {
	return q.push(ctx, q.DeadLetterKey(), job)
}

// Len reports how many jobs of kind are waiting.
func (q *RedisQueue) Len(ctx context.Context, kind Kind) (int64, error) {
	return q.client.LLen(ctx, q.Key(kind)).Result()
}

var (
	_ Queue    = (*RedisQueue)(nil)
	_ Consumer = (*RedisQueue)(nil)
)
