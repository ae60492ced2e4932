// Package ghclient wraps go-github for the two lookups the API needs:
// resolving a repository's numeric id and listing the repositories a user
// can see.
package ghclient

import (
	"context"
	"errors"
	"net/http"
	"time"

	ghinstallation "github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v71/github"
	"github.com/quatton/metashare/pkg/mserr"
	"golang.org/x/oauth2"
)

// Repo is a repository as GitHub reports it.
type Repo struct {
	ID       int64
	Owner    string
	Name     string
	FullName string
	HTMLURL  string
}

// API is what callers depend on; tests substitute fakes.
type API interface {
	RepoID(ctx context.Context, owner, name string) (int64, error)
	ListRepositories(ctx context.Context) ([]Repo, error)
}

// Provider hands out an API bound to a user's OAuth token.
type Provider interface {
	ForToken(token string) API
}

type Client struct {
	gh *github.Client
}

var _ API = (*Client)(nil)

// NewTokenClient authenticates as a user through a static oauth2 token.
// enterpriseURL is optional and points the client at GitHub Enterprise or a
// test server.
func NewTokenClient(token string, enterpriseURL string) (*Client, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	hc := oauth2.NewClient(context.Background(), ts)
	hc.Timeout = 30 * time.Second
	return newClient(hc, enterpriseURL)
}

// NewInstallationClient authenticates as a GitHub App installation.
// privateKey is the PEM-encoded app key.
func NewInstallationClient(appID, installationID int64, privateKey []byte, enterpriseURL string) (*Client, error) {
	tr, err := ghinstallation.New(http.DefaultTransport, appID, installationID, privateKey)
	if err != nil {
		return nil, err
	}
	if enterpriseURL != "" {
		tr.BaseURL = enterpriseURL
	}
	return newClient(&http.Client{Transport: tr, Timeout: 30 * time.Second}, enterpriseURL)
}

func newClient(hc *http.Client, enterpriseURL string) (*Client, error) {
	gh := github.NewClient(hc)
	if enterpriseURL != "" {
		var err error
		gh, err = gh.WithEnterpriseURLs(enterpriseURL, enterpriseURL)
		if err != nil {
			return nil, err
		}
	}
	return &Client{gh: gh}, nil
}

func (c *Client) RepoID(ctx context.Context, owner, name string) (int64, error) {
	repo, _, err := c.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		return 0, translate(err, "github repository")
	}
	return repo.GetID(), nil
}

// ListRepositories pages through every repository the authenticated user
// owns, collaborates on or can reach through an organization.
func (c *Client) ListRepositories(ctx context.Context) ([]Repo, error) {
	opts := &github.RepositoryListByAuthenticatedUserOptions{
		Affiliation: "owner,collaborator,organization_member",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var out []Repo
	for {
		page, resp, err := c.gh.Repositories.ListByAuthenticatedUser(ctx, opts)
		if err != nil {
			return nil, translate(err, "github repositories")
		}
		for _, r := range page {
			out = append(out, Repo{
				ID:       r.GetID(),
				Owner:    r.GetOwner().GetLogin(),
				Name:     r.GetName(),
				FullName: r.GetFullName(),
				HTMLURL:  r.GetHTMLURL(),
			})
		}
		if resp.NextPage == 0 {
			return out, nil
		}
		opts.Page = resp.NextPage
	}
}

func translate(err error, kind string) error {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound {
		return mserr.NotFound(kind)
	}
	return mserr.Upstream("github", err)
}

// TokenProvider builds a fresh token client per call.
type TokenProvider struct {
	EnterpriseURL string
}

func (p TokenProvider) ForToken(token string) API {
	c, err := NewTokenClient(token, p.EnterpriseURL)
	if err != nil {
		return failing{err: err}
	}
	return c
}

// failing reports a construction error on every call so ForToken can keep
// a single return value.
type failing struct{ err error }

func (f failing) RepoID(context.Context, string, string) (int64, error) { return 0, f.err }
func (f failing) ListRepositories(context.Context) ([]Repo, error)      { return nil, f.err }
