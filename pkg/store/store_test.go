package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/quatton/metashare/pkg/db/dbtest"
	"github.com/quatton/metashare/pkg/db/models"
	"github.com/quatton/metashare/pkg/mserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStores(t *testing.T) *Stores {
	t.Helper()
	return New(dbtest.New(t))
}

func mustUser(t *testing.T, s *Stores, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com"}
	require.NoError(t, s.Users.Insert(context.Background(), u))
	return u
}

func int64p(v int64) *int64 { return &v }

func TestRepositoryVisibility(t *testing.T) {
	ctx := context.Background()
	s := newStores(t)
	alice := mustUser(t, s, "alice")

	member := &models.Repository{Name: "Widgets", Slug: "widgets", RepoOwner: "acme", RepoName: "widgets", RepoID: int64p(101)}
	other := &models.Repository{Name: "Gadgets", Slug: "gadgets", RepoOwner: "acme", RepoName: "gadgets", RepoID: int64p(202)}
	unresolved := &models.Repository{Name: "Sprockets", Slug: "sprockets", RepoOwner: "acme", RepoName: "sprockets"}
	for _, r := range []*models.Repository{member, other, unresolved} {
		require.NoError(t, s.Repositories.Insert(ctx, r))
	}

	require.NoError(t, s.Repositories.ReplaceMemberships(ctx, alice.ID, []*models.GitHubRepository{
		{RepoID: 101},
		{RepoID: 303},
	}))

	repos, err := s.Repositories.List(ctx, alice, RepositoryFilter{})
	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, member.ID, repos[0].ID)

	_, err = s.Repositories.Get(ctx, alice, other.ID)
	assert.True(t, mserr.IsCode(err, mserr.CodeNotFound))

	got, err := s.Repositories.Get(ctx, alice, member.ID)
	require.NoError(t, err)
	assert.Equal(t, "acme/widgets", got.FullName())
}

func TestRepositoryListNoMemberships(t *testing.T) {
	ctx := context.Background()
	s := newStores(t)
	bob := mustUser(t, s, "bob")
	require.NoError(t, s.Repositories.Insert(ctx, &models.Repository{Name: "A", Slug: "a", RepoOwner: "o", RepoName: "a", RepoID: int64p(1)}))

	repos, err := s.Repositories.List(ctx, bob, RepositoryFilter{})
	require.NoError(t, err)
	assert.Empty(t, repos)
}

func TestRepositoryResolution(t *testing.T) {
	ctx := context.Background()
	s := newStores(t)
	r := &models.Repository{Name: "A", Slug: "a", RepoOwner: "o", RepoName: "a"}
	require.NoError(t, s.Repositories.Insert(ctx, r))

	pending, err := s.Repositories.ListUnresolved(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, s.Repositories.SetRepoID(ctx, pending[0], 55))

	pending, err = s.Repositories.ListUnresolved(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestReplaceMembershipsSwapsRows(t *testing.T) {
	ctx := context.Background()
	s := newStores(t)
	alice := mustUser(t, s, "alice")

	require.NoError(t, s.Repositories.ReplaceMemberships(ctx, alice.ID, []*models.GitHubRepository{{RepoID: 1}, {RepoID: 2}}))
	require.NoError(t, s.Repositories.ReplaceMemberships(ctx, alice.ID, []*models.GitHubRepository{{RepoID: 3}}))

	ids, err := s.Repositories.MemberRepoIDs(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, ids)

	require.NoError(t, s.Repositories.ReplaceMemberships(ctx, alice.ID, nil))
	ids, err = s.Repositories.MemberRepoIDs(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func seedTask(t *testing.T, s *Stores) *models.Task {
	t.Helper()
	ctx := context.Background()
	repo := &models.Repository{Name: "Widgets", Slug: "widgets", RepoOwner: "acme", RepoName: "widgets"}
	require.NoError(t, s.Repositories.Insert(ctx, repo))
	project := &models.Project{RepositoryID: repo.ID, Name: "Launch", Slug: "launch"}
	require.NoError(t, s.Projects.Insert(ctx, project))
	task := &models.Task{ProjectID: project.ID, Name: "Build form", Slug: "build-form"}
	require.NoError(t, s.Tasks.Insert(ctx, task))
	return task
}

func TestProjectAndTaskFilters(t *testing.T) {
	ctx := context.Background()
	s := newStores(t)
	task := seedTask(t, s)

	projects, err := s.Projects.List(ctx, nil, ProjectFilter{Slug: "launch"})
	require.NoError(t, err)
	require.Len(t, projects, 1)

	projects, err = s.Projects.List(ctx, nil, ProjectFilter{Slug: "nope"})
	require.NoError(t, err)
	assert.Empty(t, projects)

	tasks, err := s.Tasks.List(ctx, nil, TaskFilter{Project: &task.ProjectID})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)

	other := uuid.New()
	tasks, err = s.Tasks.List(ctx, nil, TaskFilter{Project: &other})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestUpdateStampsAndMissingRow(t *testing.T) {
	ctx := context.Background()
	s := newStores(t)
	task := seedTask(t, s)
	before := task.UpdatedAt

	time.Sleep(2 * time.Millisecond)
	task.Description = "Make the form"
	require.NoError(t, s.Tasks.Update(ctx, task, "description"))
	assert.True(t, task.UpdatedAt.After(before))

	got, err := s.Tasks.Get(ctx, nil, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Make the form", got.Description)

	ghost := &models.Task{ID: uuid.New()}
	err = s.Tasks.Update(ctx, ghost, "description")
	assert.True(t, mserr.IsCode(err, mserr.CodeNotFound))
}

func TestScratchOrgLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newStores(t)
	task := seedTask(t, s)
	alice := mustUser(t, s, "alice")

	url := "https://dev.my.salesforce.com"
	org := &models.ScratchOrg{TaskID: task.ID, OrgType: models.OrgTypeDev, OwnerID: alice.ID, URL: &url}
	require.NoError(t, s.ScratchOrgs.Insert(ctx, org))

	orgs, err := s.ScratchOrgs.List(ctx, alice, ScratchOrgFilter{Task: &task.ID})
	require.NoError(t, err)
	require.Len(t, orgs, 1)
	assert.False(t, orgs[0].IsDeleteQueued())

	require.NoError(t, s.ScratchOrgs.SetRefreshing(ctx, org, true))
	require.NoError(t, s.ScratchOrgs.SaveUnsavedChanges(ctx, org, models.Changeset{"ApexClass": {"Foo"}}, 7))

	got, err := s.ScratchOrgs.GetByID(ctx, org.ID)
	require.NoError(t, err)
	assert.False(t, got.CurrentlyRefreshingChanges)
	assert.Equal(t, models.Changeset{"ApexClass": {"Foo"}}, got.UnsavedChanges)
	assert.EqualValues(t, 7, got.LatestRevision)

	require.NoError(t, s.ScratchOrgs.MarkDeleteQueued(ctx, got, time.Now()))
	got, err = s.ScratchOrgs.Get(ctx, alice, org.ID)
	require.NoError(t, err)
	assert.True(t, got.IsDeleteQueued())

	owned, err := s.ScratchOrgs.ListOwnedBy(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, owned, 1)

	require.NoError(t, s.ScratchOrgs.Delete(ctx, got))
	_, err = s.ScratchOrgs.GetByID(ctx, org.ID)
	assert.True(t, mserr.IsCode(err, mserr.CodeNotFound))
}

func TestUserLookup(t *testing.T) {
	ctx := context.Background()
	s := newStores(t)
	mustUser(t, s, "zed")
	alice := mustUser(t, s, "alice")

	got, err := s.Users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	users, err := s.Users.List(ctx, alice, UserFilter{})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)

	_, err = s.Users.GetByUsername(ctx, "nobody")
	assert.True(t, mserr.IsCode(err, mserr.CodeNotFound))
}
