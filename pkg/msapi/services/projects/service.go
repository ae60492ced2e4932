package projects

import (
	"context"

	"github.com/quatton/metashare/pkg/db/models"
	"github.com/quatton/metashare/pkg/msapi/resource"
	"github.com/quatton/metashare/pkg/mserr"
	"github.com/quatton/metashare/pkg/store"
)

type ProjectService struct {
	*resource.Controller[models.Project, store.ProjectFilter]
	repos *store.RepositoryStore
}

func NewProjectService(projects *store.ProjectStore, repos *store.RepositoryStore) *ProjectService {
	s := &ProjectService{repos: repos}
	s.Controller = resource.NewController[models.Project, store.ProjectFilter](projects, resource.Hooks[models.Project]{
		BeforeCreate: s.requireRepository,
	})
	return s
}

func (s *ProjectService) requireRepository(ctx context.Context, _ *models.User, p *models.Project) error {
	_, err := s.repos.GetByID(ctx, p.RepositoryID)
	if mserr.IsCode(err, mserr.CodeNotFound) {
		return mserr.Validation(mserr.FieldError{Field: "repository", Message: "repository does not exist"})
	}
	return err
}
