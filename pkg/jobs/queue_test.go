package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisQueue(t *testing.T) (*RedisQueue, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisQueue(client, ""), mr
}

// queueContract covers what both queue backends must agree on.
func queueContract(t *testing.T, q interface {
	Queue
	Consumer
}) {
	ctx := context.Background()
	orgA, orgB := uuid.New(), uuid.New()

	require.NoError(t, DeleteScratchOrg(ctx, q, orgA))
	require.NoError(t, DeleteScratchOrg(ctx, q, orgB))
	require.NoError(t, CommitChanges(ctx, q, CommitChangesPayload{ScratchOrgID: orgA, CommitMessage: "wip"}))

	// FIFO within a kind
	job, err := q.Dequeue(ctx, []Kind{KindDeleteScratchOrg}, time.Second)
	require.NoError(t, err)
	require.NotNil(t, job)
	var p ScratchOrgPayload
	require.NoError(t, job.Decode(&p))
	assert.Equal(t, orgA, p.ScratchOrgID)
	assert.NotEmpty(t, job.ID)

	job, err = q.Dequeue(ctx, []Kind{KindDeleteScratchOrg}, time.Second)
	require.NoError(t, err)
	require.NoError(t, job.Decode(&p))
	assert.Equal(t, orgB, p.ScratchOrgID)

	// requeued jobs come back with their attempt count
	job.Attempt = 1
	require.NoError(t, q.Requeue(ctx, job))
	again, err := q.Dequeue(ctx, []Kind{KindDeleteScratchOrg}, time.Second)
	require.NoError(t, err)
	assert.Equal(t, job.ID, again.ID)
	assert.Equal(t, 1, again.Attempt)

	// commit job is only visible to consumers asking for it
	job, err = q.Dequeue(ctx, []Kind{KindCommitChanges}, time.Second)
	require.NoError(t, err)
	var cp CommitChangesPayload
	require.NoError(t, job.Decode(&cp))
	assert.Equal(t, "wip", cp.CommitMessage)
}

func TestMemoryQueueContract(t *testing.T) {
	queueContract(t, NewMemoryQueue())
}

func TestRedisQueueContract(t *testing.T) {
	q, _ := newRedisQueue(t)
	queueContract(t, q)
}

func TestRedisQueueUsesPerKindLists(t *testing.T) {
	q, mr := newRedisQueue(t)
	ctx := context.Background()

	require.NoError(t, RefreshRepositories(ctx, q, uuid.New()))
	require.NoError(t, GetUnsavedChanges(ctx, q, uuid.New()))

	assert.True(t, mr.Exists("metashare:jobs:refresh_github_repositories"))
	assert.True(t, mr.Exists("metashare:jobs:get_unsaved_changes"))

	n, err := q.Len(ctx, KindRefreshGitHubRepositories)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestRedisQueueDeadLetter(t *testing.T) {
	q, mr := newRedisQueue(t)
	job, err := NewJob(KindDeleteScratchOrg, ScratchOrgPayload{ScratchOrgID: uuid.New()})
	require.NoError(t, err)

	require.NoError(t, q.DeadLetter(context.Background(), job))

	list, err := mr.List("metashare:jobs:dead")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestMemoryQueueDequeueTimesOut(t *testing.T) {
	q := NewMemoryQueue()

	job, err := q.Dequeue(context.Background(), []Kind{KindDeleteScratchOrg}, 10*time.Millisecond)
	assert.NoError(t, err)
	assert.Nil(t, job)
}

func TestMemoryQueueDequeueWakesOnEnqueue(t *testing.T) {
	q := NewMemoryQueue()
	done := make(chan *Job, 1)

	go func() {
		job, _ := q.Dequeue(context.Background(), []Kind{KindProvisionScratchOrg}, 5*time.Second)
		done <- job
	}()

	require.NoError(t, ProvisionScratchOrg(context.Background(), q, uuid.New(), uuid.New()))

	select {
	case job := <-done:
		require.NotNil(t, job)
		assert.Equal(t, KindProvisionScratchOrg, job.Kind)
	case <-time.After(2 * time.Second):
		t.Fatal("dequeue did not wake up")
	}
}

func TestMemoryQueueRecordsHistory(t *testing.T) {
	q := NewMemoryQueue()
	ctx := context.Background()

	require.NoError(t, RefreshRepositories(ctx, q, uuid.New()))
	require.NoError(t, DeleteScratchOrg(ctx, q, uuid.New()))
	_, _ = q.Dequeue(ctx, []Kind{KindDeleteScratchOrg}, time.Millisecond)

	assert.Equal(t, []Kind{KindRefreshGitHubRepositories, KindDeleteScratchOrg}, q.EnqueuedKinds())
}

func TestNewJobRejectsUnencodablePayload(t *testing.T) {
	_, err := NewJob(KindCommitChanges, make(chan int))
	assert.Error(t, err)
}
