package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/quatton/metashare/pkg/msapi/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func fakeServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(schemas.FullUser{ID: "u1", Username: "alice", Email: "alice@example.com"})
	})
	mux.HandleFunc("GET /api/repositories", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]schemas.Repository{{ID: "r1", Slug: "widgets", RepoOwner: "acme", RepoName: "widgets"}})
	})
	mux.HandleFunc("GET /api/scratch-orgs", func(w http.ResponseWriter, r *http.Request) {
		url := "https://org.my.salesforce.com"
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]schemas.ScratchOrg{{ID: "o1", OrgType: "Dev", OwnerGhUsername: "alice", URL: &url, Task: r.URL.Query().Get("task")}})
	})
	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientCommands(t *testing.T) {
	keyring.MockInit()
	t.Chdir(t.TempDir())
	srv := fakeServer(t)
	tok := signed(t, time.Now().Add(time.Hour))

	out := runRoot(t, "", "--base-url", srv.URL, "auth", "login", "--token", tok, "--refresh-token", "r")
	assert.Contains(t, out, "Credentials saved for "+srv.URL)

	out = runRoot(t, "", "--base-url", srv.URL, "me")
	assert.Contains(t, out, "Logged in: @alice")
	assert.Contains(t, out, "Email: alice@example.com")

	out = runRoot(t, "", "--base-url", srv.URL, "repos")
	assert.Contains(t, out, "widgets")
	assert.Contains(t, out, "acme/widgets")

	out = runRoot(t, "", "--base-url", srv.URL, "orgs", "--task", "0e7f9a52-6c1d-4b8e-8a3f-2d9b5c1e7a60")
	assert.Contains(t, out, "https://org.my.salesforce.com")

	out = runRoot(t, "", "--base-url", srv.URL, "auth", "logout")
	assert.Contains(t, out, "Logged out")

	rootCmd.SetArgs([]string{"--base-url", srv.URL, "me"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metashare auth login")
}
