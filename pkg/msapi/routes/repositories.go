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

func RegisterRepositories(api huma.API, svcs *services.Services, logger *mslog.Logger) {
	tags := []string{TagRepositories.String()}

	huma.Register(api, huma.Operation{
		OperationID: "list-repositories",
		Method:      http.MethodGet,
		Path:        "/api/repositories",
		Summary:     "List repositories",
		Description: "Lists repositories the current user is a member of on GitHub.",
		Tags:        tags,
		Security:    BearerAuth,
	}, func(ctx context.Context, input *schemas.RepositoryListRequest) (*schemas.RepositoryListResponse, error) {
		caller, err := svcs.IAM.Caller(ctx)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		items, err := svcs.Repositories.List(ctx, caller, store.RepositoryFilter{Slug: input.Slug})
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		out := &schemas.RepositoryListResponse{Body: make([]schemas.Repository, len(items))}
		for i, r := range items {
			out.Body[i] = schemas.NewRepository(r)
		}
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-repository",
		Method:      http.MethodGet,
		Path:        "/api/repositories/{id}",
		Summary:     "Get repository",
		Tags:        tags,
		Security:    BearerAuth,
	}, func(ctx context.Context, input *schemas.IDPath) (*schemas.RepositoryResponse, error) {
		caller, id, err := callerAndID(ctx, svcs, input.ID)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		r, err := svcs.Repositories.Retrieve(ctx, caller, id)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		return &schemas.RepositoryResponse{Body: schemas.NewRepository(r)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-repository",
		Method:        http.MethodPost,
		Path:          "/api/repositories",
		Summary:       "Create repository",
		Description:   "Staff only.",
		Tags:          tags,
		Security:      BearerAuth,
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *schemas.RepositoryCreateRequest) (*schemas.RepositoryResponse, error) {
		caller, err := svcs.IAM.Caller(ctx)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		r := input.Body.Model()
		if err := svcs.Repositories.Create(ctx, caller, r); err != nil {
			return nil, toHTTP(logger, err)
		}
		return &schemas.RepositoryResponse{Body: schemas.NewRepository(r)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-repository",
		Method:      http.MethodPatch,
		Path:        "/api/repositories/{id}",
		Summary:     "Update repository",
		Description: "Staff only.",
		Tags:        tags,
		Security:    BearerAuth,
	}, func(ctx context.Context, input *schemas.RepositoryPatchRequest) (*schemas.RepositoryResponse, error) {
		caller, id, err := callerAndID(ctx, svcs, input.ID)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		r, err := svcs.Repositories.Update(ctx, caller, id, func(r *models.Repository) ([]string, error) {
			return input.Body.Apply(r)
		})
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		return &schemas.RepositoryResponse{Body: schemas.NewRepository(r)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-repository",
		Method:        http.MethodDelete,
		Path:          "/api/repositories/{id}",
		Summary:       "Delete repository",
		Description:   "Staff only.",
		Tags:          tags,
		Security:      BearerAuth,
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *schemas.IDPath) (*struct{}, error) {
		caller, id, err := callerAndID(ctx, svcs, input.ID)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		if err := svcs.Repositories.Delete(ctx, caller, id); err != nil {
			return nil, toHTTP(logger, err)
		}
		return nil, nil
	})
}
