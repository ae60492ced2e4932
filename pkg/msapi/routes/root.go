package routes

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/quatton/metashare/pkg/db/models"
	"github.com/quatton/metashare/pkg/msapi/schemas"
	"github.com/quatton/metashare/pkg/msapi/services"
	"github.com/quatton/metashare/pkg/mslog"
)

// RegisterAPI registers every route. svcs may be nil when only the OpenAPI
// document is needed.
func RegisterAPI(api huma.API, svcs *services.Services, logger *mslog.Logger) {
	if svcs == nil {
		svcs = &services.Services{}
	}
	if logger == nil {
		logger = mslog.NewDefault()
	}

	RegisterHealth(api, svcs)
	RegisterAuth(api, svcs, logger)
	RegisterUsers(api, svcs, logger)
	RegisterRepositories(api, svcs, logger)
	RegisterProjects(api, svcs, logger)
	RegisterTasks(api, svcs, logger)
	RegisterScratchOrgs(api, svcs, logger)
}

// callerAndID authenticates the request and parses the {id} path value.
func callerAndID(ctx context.Context, svcs *services.Services, rawID string) (*models.User, uuid.UUID, error) {
	caller, err := svcs.IAM.Caller(ctx)
	if err != nil {
		return nil, uuid.Nil, err
	}
	id, err := schemas.ParseID("id", rawID)
	if err != nil {
		return nil, uuid.Nil, err
	}
	return caller, id, nil
}
