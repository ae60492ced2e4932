package ghclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/quatton/metashare/pkg/mserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v3/repos/acme/widgets", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer gho_test", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"id": 42, "name": "widgets", "full_name": "acme/widgets"}`)
	})
	mux.HandleFunc("/api/v3/repos/acme/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Not Found"}`)
	})
	mux.HandleFunc("/api/v3/user/repos", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `[{"id": 2, "name": "gadgets", "full_name": "acme/gadgets", "owner": {"login": "acme"}}]`)
			return
		}
		w.Header().Set("Link", fmt.Sprintf(`<%s/api/v3/user/repos?page=2>; rel="next"`, "http://"+r.Host))
		fmt.Fprint(w, `[{"id": 1, "name": "widgets", "full_name": "acme/widgets", "owner": {"login": "acme"}, "html_url": "https://github.com/acme/widgets"}]`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRepoID(t *testing.T) {
	srv := newTestServer(t)
	c, err := NewTokenClient("gho_test", srv.URL)
	require.NoError(t, err)

	id, err := c.RepoID(context.Background(), "acme", "widgets")
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)
}

func TestRepoIDNotFound(t *testing.T) {
	srv := newTestServer(t)
	c, err := NewTokenClient("gho_test", srv.URL)
	require.NoError(t, err)

	_, err = c.RepoID(context.Background(), "acme", "missing")
	assert.True(t, mserr.IsCode(err, mserr.CodeNotFound))
}

func TestListRepositoriesPaginates(t *testing.T) {
	srv := newTestServer(t)
	c := TokenProvider{EnterpriseURL: srv.URL}.ForToken("gho_test")

	repos, err := c.ListRepositories(context.Background())
	require.NoError(t, err)
	require.Len(t, repos, 2)
	assert.Equal(t, Repo{ID: 1, Owner: "acme", Name: "widgets", FullName: "acme/widgets", HTMLURL: "https://github.com/acme/widgets"}, repos[0])
	assert.EqualValues(t, 2, repos[1].ID)
}

func TestInstallationClientRejectsBadKey(t *testing.T) {
	_, err := NewInstallationClient(1, 2, []byte("not a pem"), "")
	assert.Error(t, err)
}
