// Package salesforce talks to the Salesforce REST and Tooling APIs on
// behalf of a connected user. Sessions are refreshed through the oauth2
// refresh-token flow.
package salesforce

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/quatton/metashare/pkg/db/models"
	"github.com/quatton/metashare/pkg/mserr"
	"golang.org/x/oauth2"
)

type Config struct {
	ClientID     string
	ClientSecret string
	// LoginURL is the OAuth host, e.g. https://login.salesforce.com.
	LoginURL   string
	APIVersion string
}

func (c Config) withDefaults() Config {
	if c.LoginURL == "" {
		c.LoginURL = "https://login.salesforce.com"
	}
	if c.APIVersion == "" {
		c.APIVersion = "57.0"
	}
	c.LoginURL = strings.TrimRight(c.LoginURL, "/")
	return c
}

// Credentials identify one Salesforce session.
type Credentials struct {
	InstanceURL  string
	AccessToken  string
	RefreshToken string
}

// UserCredentials returns the devhub session stored on a user.
func UserCredentials(u *models.User) Credentials {
	return Credentials{InstanceURL: u.SfInstanceURL, AccessToken: u.SfAccessToken, RefreshToken: u.SfRefreshToken}
}

// OrgCredentials returns the session stored on a scratch org.
func OrgCredentials(o *models.ScratchOrg) Credentials {
	creds := Credentials{AccessToken: o.SfAccessToken, RefreshToken: o.SfRefreshToken}
	if o.URL != nil {
		creds.InstanceURL = *o.URL
	}
	return creds
}

// ErrNoCredentials is returned when neither an access nor a refresh token
// is available.
var ErrNoCredentials = errors.New("salesforce: no credentials")

type Client struct {
	cfg  Config
	http *http.Client
}

// New builds a client. httpClient may be nil.
func New(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{cfg: cfg.withDefaults(), http: httpClient}
}

func (c *Client) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:   c.cfg.LoginURL + "/services/oauth2/authorize",
			TokenURL:  c.cfg.LoginURL + "/services/oauth2/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// Refresh exchanges the refresh token for a new access token. Without a
// refresh token the stored access token is returned unchanged.
func (c *Client) Refresh(ctx context.Context, creds Credentials) (Credentials, error) {
	if creds.RefreshToken == "" {
		if creds.AccessToken == "" {
			return creds, ErrNoCredentials
		}
		return creds, nil
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	tok, err := c.oauthConfig().TokenSource(ctx, &oauth2.Token{RefreshToken: creds.RefreshToken}).Token()
	if err != nil {
		return creds, mserr.Upstream("salesforce", err)
	}

	out := creds
	out.AccessToken = tok.AccessToken
	if tok.RefreshToken != "" {
		out.RefreshToken = tok.RefreshToken
	}
	if inst, ok := tok.Extra("instance_url").(string); ok && inst != "" {
		out.InstanceURL = inst
	}
	return out, nil
}

// LoginURL returns a frontdoor URL that logs the browser straight into the
// org.
func (c *Client) LoginURL(ctx context.Context, creds Credentials) (string, error) {
	fresh, err := c.Refresh(ctx, creds)
	if err != nil {
		return "", err
	}
	if fresh.InstanceURL == "" {
		return "", mserr.Upstream("salesforce", errors.New("no instance url"))
	}
	return strings.TrimRight(fresh.InstanceURL, "/") + "/secur/frontdoor.jsp?sid=" + fresh.AccessToken, nil
}

type apiError struct {
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode"`
}

// APIError is a non-2xx answer from Salesforce.
type APIError struct {
	Status int
	Code   string
	Msg    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("salesforce %d %s: %s", e.Status, e.Code, e.Msg)
}

func (c *Client) do(ctx context.Context, creds Credentials, method, path string, query url.Values, out any) error {
	if creds.AccessToken == "" {
		return ErrNoCredentials
	}
	u := strings.TrimRight(creds.InstanceURL, "/") + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+creds.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Msg: strings.TrimSpace(string(body))}
		var list []apiError
		if json.Unmarshal(body, &list) == nil && len(list) > 0 {
			apiErr.Code, apiErr.Msg = list[0].ErrorCode, list[0].Message
		}
		return apiErr
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func (c *Client) dataPath(suffix string) string {
	return "/services/data/v" + c.cfg.APIVersion + suffix
}

type record struct {
	ID string `json:"Id"`
}

type queryResult[R any] struct {
	TotalSize int  `json:"totalSize"`
	Done      bool `json:"done"`
	Records   []R  `json:"records"`
}

func query[R any](ctx context.Context, c *Client, creds Credentials, path, soql string) ([]R, error) {
	var res queryResult[R]
	if err := c.do(ctx, creds, http.MethodGet, path, url.Values{"q": {soql}}, &res); err != nil {
		return nil, err
	}
	return res.Records, nil
}

// IsDevHubEnabled reports whether the org behind creds can create scratch
// orgs. Orgs without the entitlement reject ScratchOrgInfo as an unknown
// type.
func (c *Client) IsDevHubEnabled(ctx context.Context, creds Credentials) (bool, error) {
	fresh, err := c.Refresh(ctx, creds)
	if err != nil {
		return false, err
	}
	_, err = query[record](ctx, c, fresh, c.dataPath("/query"), "SELECT Id FROM ScratchOrgInfo LIMIT 1")
	if err == nil {
		return true, nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && (apiErr.Code == "INVALID_TYPE" || apiErr.Status == http.StatusForbidden) {
		return false, nil
	}
	return false, mserr.Upstream("salesforce", err)
}

type sourceMember struct {
	MemberName      string
	MemberType      string
	RevisionCounter int64
}

// UnsavedChanges lists source-tracked members changed after sinceRevision,
// grouped by metadata type, and the highest revision seen.
func (c *Client) UnsavedChanges(ctx context.Context, creds Credentials, sinceRevision int64) (models.Changeset, int64, error) {
	fresh, err := c.Refresh(ctx, creds)
	if err != nil {
		return nil, sinceRevision, err
	}
	soql := fmt.Sprintf("SELECT MemberName, MemberType, RevisionCounter FROM SourceMember WHERE RevisionCounter > %d", sinceRevision)
	members, err := query[sourceMember](ctx, c, fresh, c.dataPath("/tooling/query"), soql)
	if err != nil {
		return nil, sinceRevision, mserr.Upstream("salesforce", err)
	}

	changes := models.Changeset{}
	latest := sinceRevision
	for _, m := range members {
		changes[m.MemberType] = append(changes[m.MemberType], m.MemberName)
		if m.RevisionCounter > latest {
			latest = m.RevisionCounter
		}
	}
	return changes, latest, nil
}

// DeleteScratchOrg removes the ActiveScratchOrg record for orgID from the
// devhub, which expires the org. A missing record is not an error.
func (c *Client) DeleteScratchOrg(ctx context.Context, devhub Credentials, orgID string) error {
	fresh, err := c.Refresh(ctx, devhub)
	if err != nil {
		return err
	}
	soql := fmt.Sprintf("SELECT Id FROM ActiveScratchOrg WHERE ScratchOrg = '%s'", escapeSOQL(orgID))
	rows, err := query[record](ctx, c, fresh, c.dataPath("/query"), soql)
	if err != nil {
		return mserr.Upstream("salesforce", err)
	}
	for _, r := range rows {
		err := c.do(ctx, fresh, http.MethodDelete, c.dataPath("/sobjects/ActiveScratchOrg/"+r.ID), nil, nil)
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			continue
		}
		if err != nil {
			return mserr.Upstream("salesforce", err)
		}
	}
	return nil
}

func escapeSOQL(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}
