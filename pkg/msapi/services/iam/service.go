package iam

import (
	"context"

	"github.com/google/uuid"
	"github.com/quatton/metashare/pkg/db/models"
	"github.com/quatton/metashare/pkg/msapi/services/auth"
	"github.com/quatton/metashare/pkg/msauth"
	"github.com/quatton/metashare/pkg/mserr"
	"github.com/quatton/metashare/pkg/mslog"
	"github.com/quatton/metashare/pkg/store"
)

type IAMService struct {
	auth   *auth.AuthService
	users  *store.UserStore
	logger *mslog.Logger
}

func NewIAMService(authSvc *auth.AuthService, users *store.UserStore, logger *mslog.Logger) *IAMService {
	if logger == nil {
		logger = mslog.NewDefault()
	}
	return &IAMService{auth: authSvc, users: users, logger: logger}
}

type ctxKey string

const principalKey ctxKey = "metashare.principal"

// WithPrincipal returns ctx carrying claims.
func WithPrincipal(ctx context.Context, claims *msauth.UserClaims) context.Context {
	return context.WithValue(ctx, principalKey, claims)
}

func (s *IAMService) Principal(ctx context.Context) (*msauth.UserClaims, bool) {
	p, ok := ctx.Value(principalKey).(*msauth.UserClaims)
	return p, ok && p != nil
}

// Caller loads the authenticated user. Requests without a valid token, or
// whose user no longer exists, get an unauthorized error.
func (s *IAMService) Caller(ctx context.Context) (*models.User, error) {
	p, ok := s.Principal(ctx)
	if !ok {
		return nil, mserr.Unauthorized("Authentication required")
	}
	id, err := uuid.Parse(p.ID)
	if err != nil {
		return nil, mserr.Unauthorized("Authentication required")
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if mserr.IsCode(err, mserr.CodeNotFound) {
			return nil, mserr.Unauthorized("Authentication required")
		}
		return nil, err
	}
	return u, nil
}
