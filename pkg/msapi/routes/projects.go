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

func RegisterProjects(api huma.API, svcs *services.Services, logger *mslog.Logger) {
	tags := []string{TagProjects.String()}

	huma.Register(api, huma.Operation{
		OperationID: "list-projects",
		Method:      http.MethodGet,
		Path:        "/api/projects",
		Summary:     "List projects",
		Tags:        tags,
		Security:    BearerAuth,
	}, func(ctx context.Context, input *schemas.ProjectListRequest) (*schemas.ProjectListResponse, error) {
		caller, err := svcs.IAM.Caller(ctx)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		repo, err := schemas.ParseOptionalID("repository", input.Repository)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		items, err := svcs.Projects.List(ctx, caller, store.ProjectFilter{Repository: repo, Slug: input.Slug})
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		out := &schemas.ProjectListResponse{Body: make([]schemas.Project, len(items))}
		for i, p := range items {
			out.Body[i] = schemas.NewProject(p)
		}
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-project",
		Method:      http.MethodGet,
		Path:        "/api/projects/{id}",
		Summary:     "Get project",
		Tags:        tags,
		Security:    BearerAuth,
	}, func(ctx context.Context, input *schemas.IDPath) (*schemas.ProjectResponse, error) {
		caller, id, err := callerAndID(ctx, svcs, input.ID)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		p, err := svcs.Projects.Retrieve(ctx, caller, id)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		return &schemas.ProjectResponse{Body: schemas.NewProject(p)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-project",
		Method:        http.MethodPost,
		Path:          "/api/projects",
		Summary:       "Create project",
		Tags:          tags,
		Security:      BearerAuth,
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *schemas.ProjectCreateRequest) (*schemas.ProjectResponse, error) {
		caller, err := svcs.IAM.Caller(ctx)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		p, err := input.Body.Model()
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		if err := svcs.Projects.Create(ctx, caller, p); err != nil {
			return nil, toHTTP(logger, err)
		}
		return &schemas.ProjectResponse{Body: schemas.NewProject(p)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-project",
		Method:      http.MethodPatch,
		Path:        "/api/projects/{id}",
		Summary:     "Update project",
		Tags:        tags,
		Security:    BearerAuth,
	}, func(ctx context.Context, input *schemas.ProjectPatchRequest) (*schemas.ProjectResponse, error) {
		caller, id, err := callerAndID(ctx, svcs, input.ID)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		p, err := svcs.Projects.Update(ctx, caller, id, func(p *models.Project) ([]string, error) {
			return input.Body.Apply(p)
		})
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		return &schemas.ProjectResponse{Body: schemas.NewProject(p)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-project",
		Method:        http.MethodDelete,
		Path:          "/api/projects/{id}",
		Summary:       "Delete project",
		Tags:          tags,
		Security:      BearerAuth,
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *schemas.IDPath) (*struct{}, error) {
		caller, id, err := callerAndID(ctx, svcs, input.ID)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		if err := svcs.Projects.Delete(ctx, caller, id); err != nil {
			return nil, toHTTP(logger, err)
		}
		return nil, nil
	})
}
