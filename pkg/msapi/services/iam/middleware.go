package iam

import (
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// Middleware installs the token's claims as the request principal. Requests
// without a valid bearer token pass through anonymously; handlers decide
// whether that is acceptable.
func (s *IAMService) Middleware() func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		authHeader := ctx.Header("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				if claims, err := s.auth.ValidateToken(parts[1]); err == nil {
					s.logger.Debug("authenticated user", "username", claims.Username)
					ctx = huma.WithValue(ctx, principalKey, claims)
				} else {
					s.logger.Warn("invalid token", "error", err)
				}
			}
		}

		next(ctx)
	}
}
