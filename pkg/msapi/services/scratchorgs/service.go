package scratchorgs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/quatton/metashare/pkg/db/models"
	"github.com/quatton/metashare/pkg/jobs"
	"github.com/quatton/metashare/pkg/msapi/guards"
	"github.com/quatton/metashare/pkg/msapi/resource"
	"github.com/quatton/metashare/pkg/mserr"
	"github.com/quatton/metashare/pkg/mslog"
	"github.com/quatton/metashare/pkg/salesforce"
	"github.com/quatton/metashare/pkg/store"
)

// LoginURLer builds a browser login link for a Salesforce session.
type LoginURLer interface {
	LoginURL(ctx context.Context, creds salesforce.Credentials) (string, error)
}

const MsgDeleteQueued = "Scratch org is queued for deletion."

// CommitRequest is what the caller asks to be committed from an org.
type CommitRequest struct {
	Changes         models.Changeset
	CommitMessage   string
	TargetDirectory string
}

// ScratchOrgService gates scratch-org mutations on the caller's Salesforce
// connection and hands slow work to the job queue.
type ScratchOrgService struct {
	*resource.Controller[models.ScratchOrg, store.ScratchOrgFilter]

	orgs   *store.ScratchOrgStore
	tasks  *store.TaskStore
	queue  jobs.Queue
	sf     LoginURLer
	logger *mslog.Logger
	now    func() time.Time
}

func NewScratchOrgService(orgs *store.ScratchOrgStore, tasks *store.TaskStore, queue jobs.Queue, sf LoginURLer, logger *mslog.Logger) *ScratchOrgService {
	if logger == nil {
		logger = mslog.NewDefault()
	}
	s := &ScratchOrgService{
		orgs:   orgs,
		tasks:  tasks,
		queue:  queue,
		sf:     sf,
		logger: logger.With("service", "scratch_orgs"),
		now:    time.Now,
	}
	s.Controller = resource.NewController[models.ScratchOrg, store.ScratchOrgFilter](orgs, resource.Hooks[models.ScratchOrg]{
		AfterList:     s.refreshListed,
		AfterRetrieve: s.maybeRefresh,
		BeforeCreate:  s.beforeCreate,
		AfterCreate:   s.afterCreate,
		Destroy:       s.queueDelete,
	})
	return s
}

// beforeCreate rejects callers without a devhub before anything is stored
// and stamps ownership from the caller.
func (s *ScratchOrgService) beforeCreate(ctx context.Context, caller *models.User, o *models.ScratchOrg) error {
	if err := guards.HasDevHub(caller); err != nil {
		return err
	}
	if _, err := s.tasks.GetByID(ctx, o.TaskID); err != nil {
		if mserr.IsCode(err, mserr.CodeNotFound) {
			return mserr.Validation(mserr.FieldError{Field: "task", Message: "task does not exist"})
		}
		return err
	}
	o.OwnerID = caller.ID
	o.OwnerSfID = caller.SfUsername
	o.OwnerGhUsername = caller.Username
	return nil
}

// afterCreate queues provisioning. An org without a provision job would
// never get a URL, so the row is removed again when the enqueue fails.
func (s *ScratchOrgService) afterCreate(ctx context.Context, caller *models.User, o *models.ScratchOrg) error {
	err := jobs.ProvisionScratchOrg(ctx, s.queue, o.ID, caller.ID)
	if err == nil {
		return nil
	}
	rbCtx, cancel := jobs.Settle(ctx)
	defer cancel()
	if rbErr := s.orgs.Delete(rbCtx, o); rbErr != nil {
		s.logger.Error("failed to remove unprovisioned scratch org", "scratch_org", o.ID.String(), "error", rbErr)
	}
	return err
}

// queueDelete marks the org as pending deletion and queues the job that
// removes it. The row stays readable until then.
func (s *ScratchOrgService) queueDelete(ctx context.Context, caller *models.User, o *models.ScratchOrg) error {
	if err := guards.SameSalesforceAccount(caller, o); err != nil {
		return err
	}
	if err := s.orgs.MarkDeleteQueued(ctx, o, s.now()); err != nil {
		return err
	}
	err := jobs.DeleteScratchOrg(ctx, s.queue, o.ID)
	if err == nil {
		return nil
	}
	rbCtx, cancel := jobs.Settle(ctx)
	defer cancel()
	if rbErr := s.orgs.ClearDeleteQueued(rbCtx, o); rbErr != nil {
		s.logger.Error("failed to clear delete mark", "scratch_org", o.ID.String(), "error", rbErr)
	}
	return err
}

func (s *ScratchOrgService) refreshListed(ctx context.Context, caller *models.User, orgs []*models.ScratchOrg) error {
	for _, o := range orgs {
		if err := s.maybeRefresh(ctx, caller, o); err != nil {
			return err
		}
	}
	return nil
}

// maybeRefresh queues a fetch of unsaved changes when the caller owns a
// live Dev org that is not already busy. Queue failures do not fail the
// read; the flag is released so a later read can try again.
func (s *ScratchOrgService) maybeRefresh(ctx context.Context, caller *models.User, o *models.ScratchOrg) error {
	if !o.ShouldFetchUnsavedChanges(caller.ID) {
		return nil
	}
	if err := s.orgs.SetRefreshing(ctx, o, true); err != nil {
		return err
	}
	if err := jobs.GetUnsavedChanges(ctx, s.queue, o.ID); err != nil {
		s.logger.Error("failed to queue unsaved changes refresh", "scratch_org", o.ID.String(), "error", err)
		if rbErr := s.orgs.SetRefreshing(ctx, o, false); rbErr != nil {
			s.logger.Error("failed to release refreshing flag", "scratch_org", o.ID.String(), "error", rbErr)
		}
	}
	return nil
}

// Commit queues a commit of changes from the org. The org itself is not
// modified here.
func (s *ScratchOrgService) Commit(ctx context.Context, caller *models.User, o *models.ScratchOrg, req CommitRequest) error {
	if err := guards.IsOwner(caller, o); err != nil {
		return err
	}
	if o.IsDeleteQueued() {
		return mserr.Conflict(MsgDeleteQueued)
	}
	return jobs.CommitChanges(ctx, s.queue, jobs.CommitChangesPayload{
		ScratchOrgID:    o.ID,
		UserID:          caller.ID,
		Changes:         req.Changes,
		CommitMessage:   req.CommitMessage,
		TargetDirectory: req.TargetDirectory,
	})
}

// LoginURL returns the frontdoor URL for an org the caller owns.
func (s *ScratchOrgService) LoginURL(ctx context.Context, caller *models.User, o *models.ScratchOrg) (string, error) {
	if err := guards.IsOwner(caller, o); err != nil {
		return "", err
	}
	u, err := s.sf.LoginURL(ctx, salesforce.OrgCredentials(o))
	if err != nil && mserr.CodeOf(err) == mserr.CodeUnknown {
		err = mserr.Upstream("salesforce", err)
	}
	return u, err
}

// Get loads an org without side effects, for the custom actions.
func (s *ScratchOrgService) Get(ctx context.Context, caller *models.User, id uuid.UUID) (*models.ScratchOrg, error) {
	return s.orgs.Get(ctx, caller, id)
}
