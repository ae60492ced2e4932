package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/quatton/metashare/pkg/msauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	mc := msauth.ToClaims(&msauth.UserClaims{
		ID:       "2b1f8a7e-5c1d-4c55-9a8e-0f4f4b1d2c3a",
		Username: "alice",
		IsStaff:  true,
		Iss:      msauth.Issuer,
		Aud:      msauth.Audience,
		Iat:      exp.Add(-time.Hour).Unix(),
		Exp:      exp.Unix(),
	})
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString([]byte("irrelevant"))
	require.NoError(t, err)
	return tok
}

func runRoot(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(bytes.NewBufferString(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestTokenInspect(t *testing.T) {
	out := runRoot(t, "", "token", "inspect", signed(t, time.Now().Add(time.Hour)))

	assert.Contains(t, out, "username:  alice")
	assert.Contains(t, out, "staff:     true")
	assert.Contains(t, out, "issuer:    metashare")
	assert.NotContains(t, out, "(expired)")
}

func TestTokenInspectFromStdin(t *testing.T) {
	out := runRoot(t, "Bearer "+signed(t, time.Now().Add(-time.Hour))+"\n", "token", "inspect")

	assert.Contains(t, out, "user id:   2b1f8a7e-5c1d-4c55-9a8e-0f4f4b1d2c3a")
	assert.Contains(t, out, "(expired)")
}
