package routes

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/quatton/metashare/pkg/db/models"
	"github.com/quatton/metashare/pkg/msapi/schemas"
	"github.com/quatton/metashare/pkg/msapi/services"
	"github.com/quatton/metashare/pkg/msapi/services/scratchorgs"
	"github.com/quatton/metashare/pkg/mslog"
	"github.com/quatton/metashare/pkg/store"
)

func RegisterScratchOrgs(api huma.API, svcs *services.Services, logger *mslog.Logger) {
	tags := []string{TagScratchOrgs.String()}

	huma.Register(api, huma.Operation{
		OperationID: "list-scratch-orgs",
		Method:      http.MethodGet,
		Path:        "/api/scratch-orgs",
		Summary:     "List scratch orgs",
		Description: "Orgs that look stale have a refresh of their unsaved changes queued as a side effect.",
		Tags:        tags,
		Security:    BearerAuth,
	}, func(ctx context.Context, input *schemas.ScratchOrgListRequest) (*schemas.ScratchOrgListResponse, error) {
		caller, err := svcs.IAM.Caller(ctx)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		task, err := schemas.ParseOptionalID("task", input.Task)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		items, err := svcs.ScratchOrgs.List(ctx, caller, store.ScratchOrgFilter{Task: task})
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		out := &schemas.ScratchOrgListResponse{Body: make([]schemas.ScratchOrg, len(items))}
		for i, o := range items {
			out.Body[i] = schemas.NewScratchOrg(o)
		}
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-scratch-org",
		Method:      http.MethodGet,
		Path:        "/api/scratch-orgs/{id}",
		Summary:     "Get scratch org",
		Tags:        tags,
		Security:    BearerAuth,
	}, func(ctx context.Context, input *schemas.IDPath) (*schemas.ScratchOrgResponse, error) {
		caller, id, err := callerAndID(ctx, svcs, input.ID)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		o, err := svcs.ScratchOrgs.Retrieve(ctx, caller, id)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		return &schemas.ScratchOrgResponse{Body: schemas.NewScratchOrg(o)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-scratch-org",
		Method:        http.MethodPost,
		Path:          "/api/scratch-orgs",
		Summary:       "Create scratch org",
		Description:   "Requires a connection to a DevHub-enabled Salesforce org. Provisioning happens in the background.",
		Tags:          tags,
		Security:      BearerAuth,
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *schemas.ScratchOrgCreateRequest) (*schemas.ScratchOrgResponse, error) {
		caller, err := svcs.IAM.Caller(ctx)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		o, err := input.Body.Model()
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		if err := svcs.ScratchOrgs.Create(ctx, caller, o); err != nil {
			return nil, toHTTP(logger, err)
		}
		return &schemas.ScratchOrgResponse{Body: schemas.NewScratchOrg(o)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-scratch-org",
		Method:      http.MethodPatch,
		Path:        "/api/scratch-orgs/{id}",
		Summary:     "Update scratch org",
		Tags:        tags,
		Security:    BearerAuth,
	}, func(ctx context.Context, input *schemas.ScratchOrgPatchRequest) (*schemas.ScratchOrgResponse, error) {
		caller, id, err := callerAndID(ctx, svcs, input.ID)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		o, err := svcs.ScratchOrgs.Update(ctx, caller, id, func(o *models.ScratchOrg) ([]string, error) {
			return input.Body.Apply(o)
		})
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		return &schemas.ScratchOrgResponse{Body: schemas.NewScratchOrg(o)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-scratch-org",
		Method:        http.MethodDelete,
		Path:          "/api/scratch-orgs/{id}",
		Summary:       "Delete scratch org",
		Description:   "Marks the org as queued for deletion and removes it in the background.",
		Tags:          tags,
		Security:      BearerAuth,
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *schemas.IDPath) (*struct{}, error) {
		caller, id, err := callerAndID(ctx, svcs, input.ID)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		if err := svcs.ScratchOrgs.Delete(ctx, caller, id); err != nil {
			return nil, toHTTP(logger, err)
		}
		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "commit-scratch-org",
		Method:        http.MethodPost,
		Path:          "/api/scratch-orgs/{id}/commit",
		Summary:       "Commit changes",
		Description:   "Queues a commit of the selected changes. Only the org owner may commit.",
		Tags:          tags,
		Security:      BearerAuth,
		DefaultStatus: http.StatusAccepted,
	}, func(ctx context.Context, input *schemas.CommitRequest) (*schemas.ScratchOrgResponse, error) {
		caller, id, err := callerAndID(ctx, svcs, input.ID)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		o, err := svcs.ScratchOrgs.Get(ctx, caller, id)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		err = svcs.ScratchOrgs.Commit(ctx, caller, o, scratchorgs.CommitRequest{
			Changes:         models.Changeset(input.Body.Changes),
			CommitMessage:   input.Body.CommitMessage,
			TargetDirectory: input.Body.TargetDirectory,
		})
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		return &schemas.ScratchOrgResponse{Body: schemas.NewScratchOrg(o)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "redirect-scratch-org",
		Method:      http.MethodGet,
		Path:        "/api/scratch-orgs/{id}/redirect",
		Summary:     "Log in to scratch org",
		Description: "Redirects the owner into the org through Salesforce frontdoor.",
		Tags:        tags,
		Security:    BearerAuth,
		Responses: map[string]*huma.Response{
			"302": {Description: "Redirect to the org"},
		},
	}, func(ctx context.Context, input *schemas.IDPath) (*schemas.RedirectResponse, error) {
		caller, id, err := callerAndID(ctx, svcs, input.ID)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		o, err := svcs.ScratchOrgs.Get(ctx, caller, id)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		url, err := svcs.ScratchOrgs.LoginURL(ctx, caller, o)
		if err != nil {
			return nil, toHTTP(logger, err)
		}
		return &schemas.RedirectResponse{Status: http.StatusFound, Location: url}, nil
	})
}
