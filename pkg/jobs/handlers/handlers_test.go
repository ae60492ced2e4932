package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/quatton/metashare/pkg/db/dbtest"
	"github.com/quatton/metashare/pkg/db/models"
	"github.com/quatton/metashare/pkg/ghclient"
	"github.com/quatton/metashare/pkg/jobs"
	"github.com/quatton/metashare/pkg/mserr"
	"github.com/quatton/metashare/pkg/mslog"
	"github.com/quatton/metashare/pkg/salesforce"
	"github.com/quatton/metashare/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakeGitHub struct {
	token string
	repos []ghclient.Repo
	err   error
}

func (f *fakeGitHub) ForToken(token string) ghclient.API {
	f.token = token
	return f
}

func (f *fakeGitHub) RepoID(context.Context, string, string) (int64, error) { return 0, f.err }

func (f *fakeGitHub) ListRepositories(context.Context) ([]ghclient.Repo, error) {
	return f.repos, f.err
}

type fakeSalesforce struct {
	changes   models.Changeset
	since     int64
	deleted   []string
	devhub    salesforce.Credentials
	changeErr error
	deleteErr error
	// onChanges runs inside UnsavedChanges, e.g. to simulate shutdown.
	onChanges func()
}

func (f *fakeSalesforce) UnsavedChanges(_ context.Context, _ salesforce.Credentials, since int64) (models.Changeset, int64, error) {
	f.since = since
	if f.onChanges != nil {
		f.onChanges()
	}
	return f.changes, since + 10, f.changeErr
}

func (f *fakeSalesforce) DeleteScratchOrg(_ context.Context, devhub salesforce.Credentials, orgID string) error {
	f.devhub = devhub
	f.deleted = append(f.deleted, orgID)
	return f.deleteErr
}

type fixture struct {
	stores *store.Stores
	gh     *fakeGitHub
	sf     *fakeSalesforce
	h      *Handlers
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		stores: store.New(dbtest.New(t)),
		gh:     &fakeGitHub{},
		sf:     &fakeSalesforce{},
	}
	f.h = New(Deps{Stores: f.stores, GitHub: f.gh, Salesforce: f.sf, Logger: mslog.NewDiscard()})
	return f
}

func (f *fixture) user(t *testing.T) *models.User {
	u := &models.User{
		Username:          "alice",
		Email:             "alice@example.com",
		GithubAccessToken: "gh-token",
		SfUsername:        "alice@sf.example.com",
		SfInstanceURL:     "https://devhub.my.salesforce.com",
		SfAccessToken:     "devhub-access",
	}
	require.NoError(t, f.stores.Users.Insert(context.Background(), u))
	return u
}

func (f *fixture) org(t *testing.T, owner *models.User, edit func(o *models.ScratchOrg)) *models.ScratchOrg {
	ctx := context.Background()
	repo := &models.Repository{Name: "Widgets", Slug: "widgets-" + uuid.NewString()[:8], RepoOwner: "acme", RepoName: "widgets"}
	require.NoError(t, f.stores.Repositories.Insert(ctx, repo))
	project := &models.Project{RepositoryID: repo.ID, Name: "Launch", Slug: "launch"}
	require.NoError(t, f.stores.Projects.Insert(ctx, project))
	task := &models.Task{ProjectID: project.ID, Name: "Build", Slug: "build"}
	require.NoError(t, f.stores.Tasks.Insert(ctx, task))

	url := "https://org.my.salesforce.com"
	o := &models.ScratchOrg{
		TaskID:                     task.ID,
		OrgType:                    models.OrgTypeDev,
		OwnerID:                    owner.ID,
		URL:                        &url,
		SfOrgID:                    "00DORG",
		SfAccessToken:              "org-access",
		LatestRevision:             5,
		CurrentlyRefreshingChanges: true,
	}
	if edit != nil {
		edit(o)
	}
	require.NoError(t, f.stores.ScratchOrgs.Insert(ctx, o))
	return o
}

func job(t *testing.T, kind jobs.Kind, payload any) *jobs.Job {
	j, err := jobs.NewJob(kind, payload)
	require.NoError(t, err)
	return j
}

func TestRefreshRepositoriesReplacesMemberships(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t)
	require.NoError(t, f.stores.Repositories.ReplaceMemberships(ctx, alice.ID, []*models.GitHubRepository{{RepoID: 1}}))
	f.gh.repos = []ghclient.Repo{
		{ID: 7, FullName: "acme/widgets", HTMLURL: "https://github.com/acme/widgets"},
		{ID: 8, FullName: "acme/gadgets", HTMLURL: "https://github.com/acme/gadgets"},
	}

	err := f.h.RefreshRepositories(ctx, job(t, jobs.KindRefreshGitHubRepositories, jobs.RefreshRepositoriesPayload{UserID: alice.ID}))
	require.NoError(t, err)

	assert.Equal(t, "gh-token", f.gh.token)
	ids, err := f.stores.Repositories.MemberRepoIDs(ctx, alice.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{7, 8}, ids)
}

func TestRefreshRepositoriesKeepsMembershipsOnFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t)
	require.NoError(t, f.stores.Repositories.ReplaceMemberships(ctx, alice.ID, []*models.GitHubRepository{{RepoID: 1}}))
	f.gh.err = mserr.Upstream("github", errors.New("rate limited"))

	err := f.h.RefreshRepositories(ctx, job(t, jobs.KindRefreshGitHubRepositories, jobs.RefreshRepositoriesPayload{UserID: alice.ID}))
	assert.True(t, mserr.IsCode(err, mserr.CodeUpstream))

	ids, err := f.stores.Repositories.MemberRepoIDs(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids)
}

func TestRefreshRepositoriesUnknownUser(t *testing.T) {
	f := newFixture(t)

	err := f.h.RefreshRepositories(context.Background(), job(t, jobs.KindRefreshGitHubRepositories, jobs.RefreshRepositoriesPayload{UserID: uuid.New()}))
	assert.NoError(t, err)
}

func TestDeleteScratchOrg(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t)
	org := f.org(t, alice, nil)

	err := f.h.DeleteScratchOrg(ctx, job(t, jobs.KindDeleteScratchOrg, jobs.ScratchOrgPayload{ScratchOrgID: org.ID}))
	require.NoError(t, err)

	assert.Equal(t, []string{"00DORG"}, f.sf.deleted)
	assert.Equal(t, "devhub-access", f.sf.devhub.AccessToken)
	_, err = f.stores.ScratchOrgs.GetByID(ctx, org.ID)
	assert.True(t, mserr.IsCode(err, mserr.CodeNotFound))
}

func TestDeleteScratchOrgSurvivesDevHubFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	org := f.org(t, f.user(t), nil)
	f.sf.deleteErr = errors.New("devhub down")

	err := f.h.DeleteScratchOrg(ctx, job(t, jobs.KindDeleteScratchOrg, jobs.ScratchOrgPayload{ScratchOrgID: org.ID}))
	require.NoError(t, err)

	_, err = f.stores.ScratchOrgs.GetByID(ctx, org.ID)
	assert.True(t, mserr.IsCode(err, mserr.CodeNotFound))
}

func TestDeleteUnprovisionedScratchOrgSkipsDevHub(t *testing.T) {
	f := newFixture(t)
	org := f.org(t, f.user(t), func(o *models.ScratchOrg) { o.SfOrgID = ""; o.URL = nil })

	err := f.h.DeleteScratchOrg(context.Background(), job(t, jobs.KindDeleteScratchOrg, jobs.ScratchOrgPayload{ScratchOrgID: org.ID}))
	require.NoError(t, err)
	assert.Empty(t, f.sf.deleted)
}

func TestGetUnsavedChanges(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	org := f.org(t, f.user(t), nil)
	f.sf.changes = models.Changeset{"ApexClass": {"WidgetController"}}

	err := f.h.GetUnsavedChanges(ctx, job(t, jobs.KindGetUnsavedChanges, jobs.ScratchOrgPayload{ScratchOrgID: org.ID}))
	require.NoError(t, err)

	assert.EqualValues(t, 5, f.sf.since)
	stored, err := f.stores.ScratchOrgs.GetByID(ctx, org.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Changeset{"ApexClass": {"WidgetController"}}, stored.UnsavedChanges)
	assert.False(t, stored.CurrentlyRefreshingChanges)
	assert.EqualValues(t, 5, stored.LatestRevision)
	assert.WithinDuration(t, time.Now(), stored.LastModifiedAt, time.Minute)
}

func TestGetUnsavedChangesClearsFlagOnFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	org := f.org(t, f.user(t), nil)
	f.sf.changeErr = errors.New("session expired")

	err := f.h.GetUnsavedChanges(ctx, job(t, jobs.KindGetUnsavedChanges, jobs.ScratchOrgPayload{ScratchOrgID: org.ID}))
	require.Error(t, err)

	stored, err := f.stores.ScratchOrgs.GetByID(ctx, org.ID)
	require.NoError(t, err)
	assert.False(t, stored.CurrentlyRefreshingChanges)
}

func TestGetUnsavedChangesClearsFlagWhenInterrupted(t *testing.T) {
	f := newFixture(t)
	org := f.org(t, f.user(t), nil)

	ctx, cancel := context.WithCancel(context.Background())
	f.sf.onChanges = cancel
	f.sf.changeErr = context.Canceled

	err := f.h.GetUnsavedChanges(ctx, job(t, jobs.KindGetUnsavedChanges, jobs.ScratchOrgPayload{ScratchOrgID: org.ID}))
	require.ErrorIs(t, err, context.Canceled)

	stored, err := f.stores.ScratchOrgs.GetByID(context.Background(), org.ID)
	require.NoError(t, err)
	assert.False(t, stored.CurrentlyRefreshingChanges)
}

func TestRegisteredKindsRunThroughWorker(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"))

	f := newFixture(t)
	org := f.org(t, f.user(t), nil)
	q := jobs.NewMemoryQueue()
	w := jobs.NewWorker(q, jobs.WorkerConfig{Concurrency: 1, PollTimeout: 10 * time.Millisecond}, mslog.NewDiscard())
	f.h.Register(w)

	assert.Equal(t, []jobs.Kind{
		jobs.KindDeleteScratchOrg,
		jobs.KindGetUnsavedChanges,
		jobs.KindRefreshGitHubRepositories,
	}, w.Kinds())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, jobs.DeleteScratchOrg(ctx, q, org.ID))
	assert.Eventually(t, func() bool {
		_, err := f.stores.ScratchOrgs.GetByID(context.Background(), org.ID)
		return mserr.IsCode(err, mserr.CodeNotFound)
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
