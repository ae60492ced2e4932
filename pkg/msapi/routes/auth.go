package routes

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/quatton/metashare/pkg/msapi/schemas"
	"github.com/quatton/metashare/pkg/msapi/services"
	"github.com/quatton/metashare/pkg/msapi/services/auth"
	"github.com/quatton/metashare/pkg/mslog"
)

func RegisterAuth(api huma.API, svcs *services.Services, logger *mslog.Logger) {
	huma.Register(api, huma.Operation{
		OperationID: "refresh-token",
		Method:      http.MethodPost,
		Path:        "/api/auth/refresh",
		Summary:     "Rotate tokens",
		Description: "Exchanges a refresh token for a new access token. The old refresh token stops working.",
		Tags:        []string{TagAuth.String()},
	}, func(ctx context.Context, input *schemas.RefreshTokenRequest) (*schemas.TokenResponse, error) {
		pair, err := svcs.Auth.RefreshTokens(ctx, input.Body.RefreshToken)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidRefreshToken) {
				return nil, huma.Error401Unauthorized("invalid refresh token")
			}
			return nil, toHTTP(logger, err)
		}
		return &schemas.TokenResponse{Body: pair}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "logout",
		Method:        http.MethodPost,
		Path:          "/api/auth/logout",
		Summary:       "Revoke a refresh token",
		Tags:          []string{TagAuth.String()},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *schemas.RefreshTokenRequest) (*struct{}, error) {
		if err := svcs.Auth.Revoke(ctx, input.Body.RefreshToken); err != nil {
			return nil, toHTTP(logger, err)
		}
		return nil, nil
	})
}
