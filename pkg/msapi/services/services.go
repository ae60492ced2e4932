package services

import (
	"github.com/quatton/metashare/pkg/ghclient"
	"github.com/quatton/metashare/pkg/jobs"
	"github.com/quatton/metashare/pkg/kv"
	"github.com/quatton/metashare/pkg/msapi/services/auth"
	"github.com/quatton/metashare/pkg/msapi/services/health"
	"github.com/quatton/metashare/pkg/msapi/services/iam"
	"github.com/quatton/metashare/pkg/msapi/services/projects"
	"github.com/quatton/metashare/pkg/msapi/services/repositories"
	"github.com/quatton/metashare/pkg/msapi/services/scratchorgs"
	"github.com/quatton/metashare/pkg/msapi/services/tasks"
	"github.com/quatton/metashare/pkg/msapi/services/users"
	"github.com/quatton/metashare/pkg/mslog"
	"github.com/quatton/metashare/pkg/salesforce"
	"github.com/quatton/metashare/pkg/store"
)

// Salesforce is the subset of the Salesforce client the services use.
type Salesforce interface {
	users.DevHubChecker
	scratchorgs.LoginURLer
}

// Deps are the collaborators NewServices wires together.
type Deps struct {
	Auth   auth.Config
	Stores *store.Stores
	KV     kv.Store
	Queue  jobs.Queue
	GitHub ghclient.Provider
	// GitHubApp is optional.
	GitHubApp  ghclient.API
	Salesforce Salesforce
	// HealthChecks back the readiness endpoint, keyed by name.
	HealthChecks map[string]health.Check
	Logger       *mslog.Logger
}

type Services struct {
	Auth         *auth.AuthService
	IAM          *iam.IAMService
	Users        *users.UserService
	Repositories *repositories.RepositoryService
	Projects     *projects.ProjectService
	Tasks        *tasks.TaskService
	ScratchOrgs  *scratchorgs.ScratchOrgService
	Health       *health.HealthService
}

func NewServices(d Deps) *Services {
	if d.Logger == nil {
		d.Logger = mslog.NewDefault()
	}
	s := d.Stores

	authSvc := auth.NewAuthService(d.Auth, s.Users, d.KV, d.Logger)
	return &Services{
		Auth:         authSvc,
		IAM:          iam.NewIAMService(authSvc, s.Users, d.Logger),
		Users:        users.NewUserService(s.Users, d.Queue, d.Salesforce),
		Repositories: repositories.NewRepositoryService(s.Repositories, d.GitHub, d.GitHubApp, d.Logger),
		Projects:     projects.NewProjectService(s.Projects, s.Repositories),
		Tasks:        tasks.NewTaskService(s.Tasks, s.Projects),
		ScratchOrgs:  scratchorgs.NewScratchOrgService(s.ScratchOrgs, s.Tasks, d.Queue, d.Salesforce, d.Logger),
		Health:       health.NewHealthService(d.HealthChecks),
	}
}

var _ Salesforce = (*salesforce.Client)(nil)
