// Package handlers implements the background jobs the API queues.
package handlers

import (
	"context"
	"fmt"

	"github.com/quatton/metashare/pkg/db/models"
	"github.com/quatton/metashare/pkg/ghclient"
	"github.com/quatton/metashare/pkg/jobs"
	"github.com/quatton/metashare/pkg/mserr"
	"github.com/quatton/metashare/pkg/mslog"
	"github.com/quatton/metashare/pkg/salesforce"
	"github.com/quatton/metashare/pkg/store"
)

// Salesforce is the part of the Salesforce client the jobs use.
type Salesforce interface {
	UnsavedChanges(ctx context.Context, creds salesforce.Credentials, sinceRevision int64) (models.Changeset, int64, error)
	DeleteScratchOrg(ctx context.Context, devhub salesforce.Credentials, orgID string) error
}

var _ Salesforce = (*salesforce.Client)(nil)

type Deps struct {
	Stores     *store.Stores
	GitHub     ghclient.Provider
	Salesforce Salesforce
	Logger     *mslog.Logger
}

type Handlers struct {
	stores *store.Stores
	github ghclient.Provider
	sf     Salesforce
	logger *mslog.Logger
}

func New(d Deps) *Handlers {
	if d.Logger == nil {
		d.Logger = mslog.NewDefault()
	}
	return &Handlers{
		stores: d.Stores,
		github: d.GitHub,
		sf:     d.Salesforce,
		logger: d.Logger.With("component", "jobs"),
	}
}

// Register installs every handler on w. Provisioning and commits are left
// to whichever consumer owns those kinds.
func (h *Handlers) Register(w *jobs.Worker) {
	w.Handle(jobs.KindRefreshGitHubRepositories, h.RefreshRepositories)
	w.Handle(jobs.KindDeleteScratchOrg, h.DeleteScratchOrg)
	w.Handle(jobs.KindGetUnsavedChanges, h.GetUnsavedChanges)
}

// RefreshRepositories replaces the user's repository memberships with what
// GitHub currently reports.
func (h *Handlers) RefreshRepositories(ctx context.Context, job *jobs.Job) error {
	var p jobs.RefreshRepositoriesPayload
	if err := job.Decode(&p); err != nil {
		return err
	}
	u, err := h.stores.Users.GetByID(ctx, p.UserID)
	if mserr.IsCode(err, mserr.CodeNotFound) {
		h.logger.Warn("user is gone, dropping repository refresh", "user_id", p.UserID)
		return nil
	}
	if err != nil {
		return err
	}

	repos, err := h.github.ForToken(u.GithubAccessToken).ListRepositories(ctx)
	if err != nil {
		return fmt.Errorf("listing repositories for %s: %w", u.Username, err)
	}
	links := make([]*models.GitHubRepository, len(repos))
	for i, r := range repos {
		links[i] = &models.GitHubRepository{RepoID: r.ID, RepoURL: r.HTMLURL}
	}
	if err := h.stores.Repositories.ReplaceMemberships(ctx, u.ID, links); err != nil {
		return err
	}
	h.logger.Info("refreshed repositories", "user", u.Username, "count", len(links))
	return nil
}

// DeleteScratchOrg expires the org through its owner's devhub, then removes
// the row. A devhub failure is logged and the row is removed anyway.
func (h *Handlers) DeleteScratchOrg(ctx context.Context, job *jobs.Job) error {
	var p jobs.ScratchOrgPayload
	if err := job.Decode(&p); err != nil {
		return err
	}
	org, err := h.stores.ScratchOrgs.GetByID(ctx, p.ScratchOrgID)
	if mserr.IsCode(err, mserr.CodeNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	log := h.logger.With("scratch_org_id", org.ID)

	if org.SfOrgID != "" {
		owner, err := h.stores.Users.GetByID(ctx, org.OwnerID)
		switch {
		case mserr.IsCode(err, mserr.CodeNotFound):
			log.Warn("owner is gone, skipping devhub cleanup")
		case err != nil:
			return err
		default:
			if err := h.sf.DeleteScratchOrg(ctx, salesforce.UserCredentials(owner), org.SfOrgID); err != nil {
				log.Warn("devhub cleanup failed", "error", err)
			}
		}
	}

	if err := h.stores.ScratchOrgs.Delete(ctx, org); err != nil && !mserr.IsCode(err, mserr.CodeNotFound) {
		return err
	}
	log.Info("deleted scratch org")
	return nil
}

// GetUnsavedChanges stores the members changed in the org since its
// baseline revision and clears the refreshing flag.
func (h *Handlers) GetUnsavedChanges(ctx context.Context, job *jobs.Job) error {
	var p jobs.ScratchOrgPayload
	if err := job.Decode(&p); err != nil {
		return err
	}
	org, err := h.stores.ScratchOrgs.GetByID(ctx, p.ScratchOrgID)
	if mserr.IsCode(err, mserr.CodeNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if !org.HasURL() || org.IsDeleteQueued() {
		return h.stores.ScratchOrgs.SetRefreshing(ctx, org, false)
	}

	changes, _, err := h.sf.UnsavedChanges(ctx, salesforce.OrgCredentials(org), org.LatestRevision)
	if err != nil {
		cleanupCtx, cancel := jobs.Settle(ctx)
		defer cancel()
		if resetErr := h.stores.ScratchOrgs.SetRefreshing(cleanupCtx, org, false); resetErr != nil {
			h.logger.Error("could not clear refreshing flag", "scratch_org_id", org.ID, "error", resetErr)
		}
		return err
	}
	// the baseline only moves on commit
	return h.stores.ScratchOrgs.SaveUnsavedChanges(ctx, org, changes, org.LatestRevision)
}
