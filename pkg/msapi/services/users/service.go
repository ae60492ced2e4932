package users

import (
	"context"

	"github.com/quatton/metashare/pkg/db/models"
	"github.com/quatton/metashare/pkg/jobs"
	"github.com/quatton/metashare/pkg/msapi/resource"
	"github.com/quatton/metashare/pkg/salesforce"
	"github.com/quatton/metashare/pkg/store"
)

// DevHubChecker asks Salesforce whether an org can create scratch orgs.
type DevHubChecker interface {
	IsDevHubEnabled(ctx context.Context, creds salesforce.Credentials) (bool, error)
}

// UserService covers the caller's own record plus the read-only user
// directory.
type UserService struct {
	*resource.Controller[models.User, store.UserFilter]

	users *store.UserStore
	queue jobs.Queue
	sf    DevHubChecker
}

func NewUserService(users *store.UserStore, queue jobs.Queue, sf DevHubChecker) *UserService {
	return &UserService{
		Controller: resource.NewController[models.User, store.UserFilter](users, resource.Hooks[models.User]{}),
		users:      users,
		queue:      queue,
		sf:         sf,
	}
}

// QueueRepositoryRefresh asks the worker to re-read the caller's GitHub
// repositories. It returns once the job is queued.
func (s *UserService) QueueRepositoryRefresh(ctx context.Context, caller *models.User) error {
	return jobs.RefreshRepositories(ctx, s.queue, caller.ID)
}

// DisconnectSalesforce forgets the caller's Salesforce credentials.
func (s *UserService) DisconnectSalesforce(ctx context.Context, caller *models.User) (*models.User, error) {
	caller.InvalidateSalesforceCredentials()
	if err := s.users.Update(ctx, caller, models.SalesforceColumns...); err != nil {
		return nil, err
	}
	return caller, nil
}

// RefreshDevHub re-checks the devhub entitlement of the caller's connected
// org and stores the answer.
func (s *UserService) RefreshDevHub(ctx context.Context, caller *models.User) (*models.User, error) {
	enabled := false
	if caller.ValidTokenFor() != "" {
		var err error
		enabled, err = s.sf.IsDevHubEnabled(ctx, salesforce.UserCredentials(caller))
		if err != nil {
			return nil, err
		}
	}

	if enabled == caller.IsDevhubEnabled {
		return caller, nil
	}
	caller.IsDevhubEnabled = enabled
	if err := s.users.Update(ctx, caller, "is_devhub_enabled"); err != nil {
		return nil, err
	}
	return caller, nil
}
