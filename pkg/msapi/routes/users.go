package routes

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/quatton/metashare/pkg/msapi/schemas"
	"github.com/quatton/metashare/pkg/msapi/services"
	"github.com/quatton/metashare/pkg/mslog"
	"github.com/quatton/metashare/pkg/store"
)

func RegisterUsers(api huma.API, svcs *services.Services, logger *mslog.Logger) {
	tags := []string{TagUsers.String()}

	huma.Register(api, huma.Operation{
		OperationID: "get-current-user",
		Method:      http.MethodGet,
		Path:        "/api/user",
		Summary:     "Get current user",
		Tags:        tags,
		Security:    BearerAuth,
	}, func(ctx context.Context, input *struct{}) (*schemas.FullUserResponse, error) {
		caller, err := svcs.IAM.Caller(ctx)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		return &schemas.FullUserResponse{Body: schemas.NewFullUser(caller)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "refresh-current-user",
		Method:        http.MethodPost,
		Path:          "/api/user/refresh",
		Summary:       "Refresh GitHub repositories",
		Description:   "Queues a re-read of the repositories the current user can see on GitHub.",
		Tags:          tags,
		Security:      BearerAuth,
		DefaultStatus: http.StatusAccepted,
	}, func(ctx context.Context, input *struct{}) (*struct{}, error) {
		caller, err := svcs.IAM.Caller(ctx)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		if err := svcs.Users.QueueRepositoryRefresh(ctx, caller); err != nil {
			return nil, toHTTP(logger, err)
		}
		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "disconnect-salesforce",
		Method:      http.MethodPost,
		Path:        "/api/user/disconnect",
		Summary:     "Disconnect Salesforce",
		Description: "Forgets the current user's Salesforce credentials.",
		Tags:        tags,
		Security:    BearerAuth,
	}, func(ctx context.Context, input *struct{}) (*schemas.FullUserResponse, error) {
		caller, err := svcs.IAM.Caller(ctx)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		u, err := svcs.Users.DisconnectSalesforce(ctx, caller)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		return &schemas.FullUserResponse{Body: schemas.NewFullUser(u)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "refresh-devhub",
		Method:      http.MethodPost,
		Path:        "/api/user/refresh-devhub",
		Summary:     "Re-check DevHub access",
		Description: "Asks Salesforce whether the connected org can create scratch orgs.",
		Tags:        tags,
		Security:    BearerAuth,
	}, func(ctx context.Context, input *struct{}) (*schemas.FullUserResponse, error) {
		caller, err := svcs.IAM.Caller(ctx)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		u, err := svcs.Users.RefreshDevHub(ctx, caller)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		return &schemas.FullUserResponse{Body: schemas.NewFullUser(u)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-users",
		Method:      http.MethodGet,
		Path:        "/api/users",
		Summary:     "List users",
		Tags:        tags,
		Security:    BearerAuth,
	}, func(ctx context.Context, input *struct{}) (*schemas.UserListResponse, error) {
		caller, err := svcs.IAM.Caller(ctx)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		items, err := svcs.Users.List(ctx, caller, store.UserFilter{})
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		out := &schemas.UserListResponse{Body: make([]schemas.MinimalUser, len(items))}
		for i, u := range items {
			out.Body[i] = schemas.NewMinimalUser(u)
		}
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-user",
		Method:      http.MethodGet,
		Path:        "/api/users/{id}",
		Summary:     "Get user",
		Tags:        tags,
		Security:    BearerAuth,
	}, func(ctx context.Context, input *schemas.IDPath) (*schemas.MinimalUserResponse, error) {
		caller, err := svcs.IAM.Caller(ctx)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		id, err := schemas.ParseID("id", input.ID)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		u, err := svcs.Users.Retrieve(ctx, caller, id)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		return &schemas.MinimalUserResponse{Body: schemas.NewMinimalUser(u)}, nil
	})
}
