package repositories

import (
	"context"

	"github.com/quatton/metashare/pkg/db/models"
	"github.com/quatton/metashare/pkg/ghclient"
	"github.com/quatton/metashare/pkg/msapi/guards"
	"github.com/quatton/metashare/pkg/msapi/resource"
	"github.com/quatton/metashare/pkg/mslog"
	"github.com/quatton/metashare/pkg/store"
)

// RepositoryService lists the repositories a caller is a member of. Before
// every read it tries once to resolve the GitHub id of each repository that
// is still missing one.
type RepositoryService struct {
	*resource.Controller[models.Repository, store.RepositoryFilter]

	repos  *store.RepositoryStore
	github ghclient.Provider
	// app, when set, resolves ids with the GitHub App installation instead
	// of the caller's token.
	app    ghclient.API
	logger *mslog.Logger
}

func NewRepositoryService(repos *store.RepositoryStore, github ghclient.Provider, app ghclient.API, logger *mslog.Logger) *RepositoryService {
	if logger == nil {
		logger = mslog.NewDefault()
	}
	s := &RepositoryService{
		repos:  repos,
		github: github,
		app:    app,
		logger: logger.With("service", "repositories"),
	}
	s.Controller = resource.NewController[models.Repository, store.RepositoryFilter](repos, resource.Hooks[models.Repository]{
		BeforeList:     s.resolveMissing,
		BeforeRetrieve: s.resolveMissing,
		BeforeCreate:   staffOnly,
		BeforeUpdate:   staffOnly,
		Destroy:        s.destroy,
	})
	return s
}

func staffOnly(_ context.Context, caller *models.User, _ *models.Repository) error {
	return guards.IsStaff(caller)
}

func (s *RepositoryService) destroy(ctx context.Context, caller *models.User, r *models.Repository) error {
	if err := guards.IsStaff(caller); err != nil {
		return err
	}
	return s.repos.Delete(ctx, r)
}

func (s *RepositoryService) resolver(caller *models.User) ghclient.API {
	if s.app != nil {
		return s.app
	}
	return s.github.ForToken(caller.GithubAccessToken)
}

// resolveMissing makes one lookup per unresolved repository. A failed
// lookup is logged and skipped so the read still succeeds.
func (s *RepositoryService) resolveMissing(ctx context.Context, caller *models.User) error {
	unresolved, err := s.repos.ListUnresolved(ctx)
	if err != nil {
		return err
	}
	if len(unresolved) == 0 {
		return nil
	}

	gh := s.resolver(caller)
	for _, r := range unresolved {
		id, err := gh.RepoID(ctx, r.RepoOwner, r.RepoName)
		if err != nil {
			s.logger.Warn("could not resolve repository", "repo", r.FullName(), "error", err)
			continue
		}
		if err := s.repos.SetRepoID(ctx, r, id); err != nil {
			s.logger.Warn("could not store repository id", "repo", r.FullName(), "repo_id", id, "error", err)
			continue
		}
		s.logger.Info("resolved repository", "repo", r.FullName(), "repo_id", id)
	}
	return nil
}
