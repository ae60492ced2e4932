package scratchorgs

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/quatton/metashare/pkg/db/dbtest"
	"github.com/quatton/metashare/pkg/db/models"
	"github.com/quatton/metashare/pkg/jobs"
	"github.com/quatton/metashare/pkg/mserr"
	"github.com/quatton/metashare/pkg/mslog"
	"github.com/quatton/metashare/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errQueueDown = errors.New("redis unavailable")

// flakyQueue fails every enqueue while down is set.
type flakyQueue struct {
	*jobs.MemoryQueue
	down bool
}

func (q *flakyQueue) Enqueue(ctx context.Context, kind jobs.Kind, payload any) error {
	if q.down {
		return errQueueDown
	}
	return q.MemoryQueue.Enqueue(ctx, kind, payload)
}

type fixture struct {
	stores *store.Stores
	queue  *flakyQueue
	svc    *ScratchOrgService
	owner  *models.User
	task   *models.Task
}

func newFixture(t *testing.T) *fixture {
	ctx := context.Background()
	f := &fixture{
		stores: store.New(dbtest.New(t)),
		queue:  &flakyQueue{MemoryQueue: jobs.NewMemoryQueue()},
	}
	f.svc = NewScratchOrgService(f.stores.ScratchOrgs, f.stores.Tasks, f.queue, nil, mslog.NewDiscard())

	f.owner = &models.User{
		Username:        "alice",
		Email:           "alice@example.com",
		SfUsername:      "alice@sf.example.com",
		SfAccessToken:   "access",
		IsDevhubEnabled: true,
	}
	require.NoError(t, f.stores.Users.Insert(ctx, f.owner))

	repo := &models.Repository{Name: "Widgets", Slug: "widgets-" + uuid.NewString()[:8], RepoOwner: "acme", RepoName: "widgets"}
	require.NoError(t, f.stores.Repositories.Insert(ctx, repo))
	project := &models.Project{RepositoryID: repo.ID, Name: "Launch", Slug: "launch"}
	require.NoError(t, f.stores.Projects.Insert(ctx, project))
	f.task = &models.Task{ProjectID: project.ID, Name: "Build", Slug: "build"}
	require.NoError(t, f.stores.Tasks.Insert(ctx, f.task))
	return f
}

func TestCreateRemovesOrgWhenProvisionCannotBeQueued(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.queue.down = true

	o := &models.ScratchOrg{TaskID: f.task.ID, OrgType: models.OrgTypeDev}
	err := f.svc.Create(ctx, f.owner, o)
	require.ErrorIs(t, err, errQueueDown)

	_, err = f.stores.ScratchOrgs.GetByID(ctx, o.ID)
	assert.True(t, mserr.IsCode(err, mserr.CodeNotFound))
	assert.Empty(t, f.queue.Enqueued())
}

func TestCreateQueuesProvision(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	o := &models.ScratchOrg{TaskID: f.task.ID, OrgType: models.OrgTypeQA}
	require.NoError(t, f.svc.Create(ctx, f.owner, o))

	stored, err := f.stores.ScratchOrgs.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, f.owner.ID, stored.OwnerID)
	assert.Equal(t, []jobs.Kind{jobs.KindProvisionScratchOrg}, f.queue.EnqueuedKinds())
}

func TestDeleteClearsMarkWhenJobCannotBeQueued(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := &models.ScratchOrg{TaskID: f.task.ID, OrgType: models.OrgTypeDev, OwnerID: f.owner.ID, OwnerSfID: f.owner.SfUsername}
	require.NoError(t, f.stores.ScratchOrgs.Insert(ctx, o))
	f.queue.down = true

	err := f.svc.Delete(ctx, f.owner, o.ID)
	require.ErrorIs(t, err, errQueueDown)

	stored, err := f.stores.ScratchOrgs.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsDeleteQueued())

	// once the queue is back the same request goes through
	f.queue.down = false
	require.NoError(t, f.svc.Delete(ctx, f.owner, o.ID))
	stored, err = f.stores.ScratchOrgs.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsDeleteQueued())
	assert.Equal(t, []jobs.Kind{jobs.KindDeleteScratchOrg}, f.queue.EnqueuedKinds())
}
