package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetOpenAPIFlags(t *testing.T) {
	t.Cleanup(func() {
		openapiOutput = ""
		openapiDowngrade = true
		openapiFormat = "json"
		openapiCheck = false
	})
}

func TestOpenAPICoversClientOperations(t *testing.T) {
	spec, err := renderOpenAPI("json", true)
	require.NoError(t, err)

	type operation struct {
		OperationID string `json:"operationId"`
	}
	var doc struct {
		OpenAPI string                          `json:"openapi"`
		Paths   map[string]map[string]operation `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(spec, &doc))
	assert.Regexp(t, `^3\.0\.`, doc.OpenAPI)

	ops := map[string]bool{}
	for _, methods := range doc.Paths {
		for _, op := range methods {
			ops[op.OperationID] = true
		}
	}
	for _, id := range []string{
		"get-current-user",
		"refresh-current-user",
		"list-repositories",
		"list-scratch-orgs",
		"refresh-token",
		"logout",
		"readiness-check",
	} {
		assert.True(t, ops[id], id)
	}
}

func TestOpenAPIRejectsUnknownFormat(t *testing.T) {
	_, err := renderOpenAPI("toml", true)
	assert.ErrorContains(t, err, `unknown format "toml"`)
}

func TestOpenAPICheckDetectsDrift(t *testing.T) {
	resetOpenAPIFlags(t)
	path := filepath.Join(t.TempDir(), "openapi.json")

	runRoot(t, "", "openapi", "-o", path)
	out := runRoot(t, "", "openapi", "-o", path, "--check")
	assert.Contains(t, out, "is up to date")

	require.NoError(t, os.WriteFile(path, []byte(`{"openapi":"3.0.3","paths":{}}`), 0644))
	rootCmd.SetArgs([]string{"openapi", "-o", path, "--check"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "go generate ./pkg/client")
}

func TestOpenAPIYAML(t *testing.T) {
	spec, err := renderOpenAPI("yaml", false)
	require.NoError(t, err)
	assert.Contains(t, string(spec), "openapi: 3.1")
	assert.Contains(t, string(spec), "operationId: list-scratch-orgs")
}
