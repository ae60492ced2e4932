// Package mssdk wraps the generated metashare client with credentials kept
// in the OS keyring and refreshed on demand.
package mssdk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/quatton/metashare/pkg/client"
	"github.com/quatton/metashare/pkg/msauth"
	"github.com/quatton/metashare/pkg/mserr"
)

// refreshSkew refreshes tokens that expire within this window.
const refreshSkew = 30 * time.Second

// Sdk is the generated client with auth baked in, so CLI commands don't
// wire keyring, client and headers themselves.
type Sdk struct {
	Client       *client.ClientWithResponses
	BaseURL      string
	Token        string
	RefreshToken string

	tokens TokenStore
}

// skipAuthEditorKey skips authRequestEditor so unauthenticated calls like
// the refresh itself don't recurse into token checks.
type skipAuthEditorKey struct{}

func withoutAuth(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipAuthEditorKey{}, true)
}

type options struct {
	doer   client.HttpRequestDoer
	tokens TokenStore
}

type Option func(*options)

func WithHTTPClient(doer client.HttpRequestDoer) Option {
	return func(o *options) { o.doer = doer }
}

func WithTokenStore(ts TokenStore) Option {
	return func(o *options) { o.tokens = ts }
}

// NewSdk loads any stored tokens for cfg.BaseURL.
func NewSdk(cfg *Config, opts ...Option) (*Sdk, error) {
	o := options{
		doer:   &http.Client{Timeout: 30 * time.Second},
		tokens: KeyringStore{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Sdk{BaseURL: cfg.BaseURL, tokens: o.tokens}
	s.Token, s.RefreshToken = s.tokens.Load(s.BaseURL)

	c, err := client.NewClientWithResponses(s.BaseURL,
		client.WithHTTPClient(o.doer),
		client.WithRequestEditorFn(s.authRequestEditor),
	)
	if err != nil {
		return nil, err
	}
	s.Client = c
	return s, nil
}

// Login stores a token pair issued out of band, e.g. by `metashare token issue`.
func (s *Sdk) Login(access, refresh string) error {
	if _, err := msauth.FromToken(access); err != nil {
		return mserr.New(mserr.CodeValidation, fmt.Errorf("not an access token: %w", err))
	}
	s.Token, s.RefreshToken = access, refresh
	return s.tokens.Save(s.BaseURL, access, refresh)
}

// Logout revokes the refresh token server-side, best effort, and forgets
// both tokens locally.
func (s *Sdk) Logout(ctx context.Context) error {
	if s.RefreshToken != "" {
		body := client.LogoutJSONRequestBody{RefreshToken: s.RefreshToken}
		_, _ = s.Client.LogoutWithResponse(withoutAuth(ctx), body)
	}
	return s.ClearCredentials()
}

// ClearCredentials removes cached tokens for the base URL.
func (s *Sdk) ClearCredentials() error {
	s.Token, s.RefreshToken = "", ""
	return s.tokens.Delete(s.BaseURL)
}

// HandleUnauthorized clears cached tokens when status is a 401 and reports
// whether it was.
func (s *Sdk) HandleUnauthorized(status int) bool {
	if status != http.StatusUnauthorized {
		return false
	}
	_ = s.ClearCredentials()
	return true
}

func (s *Sdk) Me(ctx context.Context) (*client.FullUser, error) {
	resp, err := s.Client.GetCurrentUserWithResponse(ctx)
	if err != nil {
		return nil, transportError(err)
	}
	if resp.JSON200 == nil {
		return nil, s.statusError(resp.StatusCode(), resp.ApplicationproblemJSONDefault)
	}
	return resp.JSON200, nil
}

// RefreshRepositories queues a re-sync of the caller's GitHub repositories.
func (s *Sdk) RefreshRepositories(ctx context.Context) error {
	resp, err := s.Client.RefreshCurrentUserWithResponse(ctx)
	if err != nil {
		return transportError(err)
	}
	if resp.StatusCode() != http.StatusAccepted {
		return s.statusError(resp.StatusCode(), resp.ApplicationproblemJSONDefault)
	}
	return nil
}

func (s *Sdk) Repositories(ctx context.Context) ([]client.Repository, error) {
	resp, err := s.Client.ListRepositoriesWithResponse(ctx)
	if err != nil {
		return nil, transportError(err)
	}
	if resp.JSON200 == nil {
		return nil, s.statusError(resp.StatusCode(), resp.ApplicationproblemJSONDefault)
	}
	return *resp.JSON200, nil
}

// ScratchOrgs lists orgs, optionally for one task.
func (s *Sdk) ScratchOrgs(ctx context.Context, task string) ([]client.ScratchOrg, error) {
	params := &client.ListScratchOrgsParams{}
	if task != "" {
		id, err := uuid.Parse(task)
		if err != nil {
			return nil, mserr.Validation(mserr.FieldError{Field: "task", Message: "must be a UUID"})
		}
		params.Task = &id
	}
	resp, err := s.Client.ListScratchOrgsWithResponse(ctx, params)
	if err != nil {
		return nil, transportError(err)
	}
	if resp.JSON200 == nil {
		return nil, s.statusError(resp.StatusCode(), resp.ApplicationproblemJSONDefault)
	}
	return *resp.JSON200, nil
}

func (s *Sdk) authRequestEditor(ctx context.Context, req *http.Request) error {
	if ctx.Value(skipAuthEditorKey{}) != nil {
		return nil
	}
	if err := s.ensureValidToken(ctx); err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.Token)
	return nil
}

func (s *Sdk) ensureValidToken(ctx context.Context) error {
	if s.Token == "" {
		if s.RefreshToken == "" {
			return mserr.Unauthorized("not logged in")
		}
		return s.refreshTokens(ctx)
	}
	expired, err := msauth.IsTokenExpired(s.Token, refreshSkew)
	if err != nil {
		return mserr.New(mserr.CodeUnknown, err)
	}
	if expired {
		return s.refreshTokens(ctx)
	}
	return nil
}

func (s *Sdk) refreshTokens(ctx context.Context) error {
	if s.RefreshToken == "" {
		return mserr.Unauthorized("session expired, log in again")
	}
	body := client.RefreshTokenJSONRequestBody{RefreshToken: s.RefreshToken}
	resp, err := s.Client.RefreshTokenWithResponse(withoutAuth(ctx), body)
	if err != nil {
		return transportError(err)
	}
	if resp.JSON200 == nil {
		return s.statusError(resp.StatusCode(), resp.ApplicationproblemJSONDefault)
	}
	s.Token, s.RefreshToken = resp.JSON200.AccessToken, resp.JSON200.RefreshToken
	return s.tokens.Save(s.BaseURL, s.Token, s.RefreshToken)
}

// transportError passes through errors raised by request editors and wraps
// everything else as a failure to reach the server.
func transportError(err error) error {
	var me *mserr.Error
	if errors.As(err, &me) {
		return err
	}
	return mserr.Upstream("metashare", err)
}

// statusError maps a non-success response onto an mserr code. A 401 also
// drops the stored credentials.
func (s *Sdk) statusError(status int, problem *client.ErrorModel) error {
	msg := http.StatusText(status)
	if problem != nil && problem.Detail != nil && *problem.Detail != "" {
		msg = *problem.Detail
	}

	switch status {
	case http.StatusUnauthorized:
		s.HandleUnauthorized(status)
		return mserr.Unauthorized(msg)
	case http.StatusForbidden:
		return mserr.PermissionDenied(msg)
	case http.StatusNotFound:
		return mserr.New(mserr.CodeNotFound, errors.New(msg))
	case http.StatusConflict:
		return mserr.Conflict(msg)
	case http.StatusUnprocessableEntity:
		return mserr.New(mserr.CodeValidation, errors.New(msg))
	default:
		return mserr.Upstream("metashare", fmt.Errorf("status %d: %s", status, msg))
	}
}
