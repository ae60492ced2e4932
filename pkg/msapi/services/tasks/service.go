package tasks

import (
	"context"

	"github.com/quatton/metashare/pkg/db/models"
	"github.com/quatton/metashare/pkg/msapi/resource"
	"github.com/quatton/metashare/pkg/mserr"
	"github.com/quatton/metashare/pkg/store"
)

type TaskService struct {
	*resource.Controller[models.Task, store.TaskFilter]
	projects *store.ProjectStore
}

func NewTaskService(tasks *store.TaskStore, projects *store.ProjectStore) *TaskService {
	s := &TaskService{projects: projects}
	s.Controller = resource.NewController[models.Task, store.TaskFilter](tasks, resource.Hooks[models.Task]{
		BeforeCreate: s.requireProject,
	})
	return s
}

func (s *TaskService) requireProject(ctx context.Context, _ *models.User, t *models.Task) error {
	_, err := s.projects.GetByID(ctx, t.ProjectID)
	if mserr.IsCode(err, mserr.CodeNotFound) {
		return mserr.Validation(mserr.FieldError{Field: "project", Message: "project does not exist"})
	}
	return err
}
