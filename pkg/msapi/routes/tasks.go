package routes

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/quatton/metashare/pkg/db/models"
	"github.com/quatton/metashare/pkg/msapi/schemas"
	"github.com/quatton/metashare/pkg/msapi/services"
	"github.com/quatton/metashare/pkg/mslog"
	"github.com/quatton/metashare/pkg/store"
)

func RegisterTasks(api huma.API, svcs *services.Services, logger *mslog.Logger) {
	tags := []string{TagTasks.String()}

	huma.Register(api, huma.Operation{
		OperationID: "list-tasks",
		Method:      http.MethodGet,
		Path:        "/api/tasks",
		Summary:     "List tasks",
		Tags:        tags,
		Security:    BearerAuth,
	}, func(ctx context.Context, input *schemas.TaskListRequest) (*schemas.TaskListResponse, error) {
		caller, err := svcs.IAM.Caller(ctx)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		project, err := schemas.ParseOptionalID("project", input.Project)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		items, err := svcs.Tasks.List(ctx, caller, store.TaskFilter{Project: project, Slug: input.Slug})
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		out := &schemas.TaskListResponse{Body: make([]schemas.Task, len(items))}
		for i, t := range items {
			out.Body[i] = schemas.NewTask(t)
		}
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-task",
		Method:      http.MethodGet,
		Path:        "/api/tasks/{id}",
		Summary:     "Get task",
		Tags:        tags,
		Security:    BearerAuth,
	}, func(ctx context.Context, input *schemas.IDPath) (*schemas.TaskResponse, error) {
		caller, id, err := callerAndID(ctx, svcs, input.ID)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		p, err := svcs.Tasks.Retrieve(ctx, caller, id)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		return &schemas.TaskResponse{Body: schemas.NewTask(p)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-task",
		Method:        http.MethodPost,
		Path:          "/api/tasks",
		Summary:       "Create task",
		Tags:          tags,
		Security:      BearerAuth,
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *schemas.TaskCreateRequest) (*schemas.TaskResponse, error) {
		caller, err := svcs.IAM.Caller(ctx)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		p, err := input.Body.Model()
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		if err := svcs.Tasks.Create(ctx, caller, p); err != nil {
			return nil, toHTTP(logger, err)
		}
		return &schemas.TaskResponse{Body: schemas.NewTask(p)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-task",
		Method:      http.MethodPatch,
		Path:        "/api/tasks/{id}",
		Summary:     "Update task",
		Tags:        tags,
		Security:    BearerAuth,
	}, func(ctx context.Context, input *schemas.TaskPatchRequest) (*schemas.TaskResponse, error) {
		caller, id, err := callerAndID(ctx, svcs, input.ID)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		p, err := svcs.Tasks.Update(ctx, caller, id, func(p *models.Task) ([]string, error) {
			return input.Body.Apply(p)
		})
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		return &schemas.TaskResponse{Body: schemas.NewTask(p)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-task",
		Method:        http.MethodDelete,
		Path:          "/api/tasks/{id}",
		Summary:       "Delete task",
		Tags:          tags,
		Security:      BearerAuth,
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *schemas.IDPath) (*struct{}, error) {
		caller, id, err := callerAndID(ctx, svcs, input.ID)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		if err := svcs.Tasks.Delete(ctx, caller, id); err != nil {
			return nil, toHTTP(logger, err)
		}
		return nil, nil
	})
}
