package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/quatton/metashare/pkg/msapi/services/auth"
	"github.com/quatton/metashare/pkg/msauth"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue and inspect API tokens",
}

var tokenIssueCmd = &cobra.Command{
	Use:   "issue <username>",
	Short: "Issue an access and refresh token for a user",
	Long:  `Looks the user up in the database and prints a fresh token pair. Useful for local development and scripted access.`,
	Args:  cobra.ExactArgs(1),
	RunE:  issueToken,
}

var tokenInspectCmd = &cobra.Command{
	Use:   "inspect [token]",
	Short: "Decode a token without verifying it",
	Long:  `Prints the claims of an access token. The token is read from stdin when no argument is given.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  inspectToken,
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenIssueCmd)
	tokenCmd.AddCommand(tokenInspectCmd)
}

func issueToken(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	u, err := rt.stores.Users.GetByUsername(ctx, args[0])
	if err != nil {
		return fmt.Errorf("looking up %s: %w", args[0], err)
	}

	svc := auth.NewAuthService(auth.Config{
		Secret:     rt.cfg.AuthSecret,
		AccessTTL:  rt.cfg.AccessTTL(),
		RefreshTTL: rt.cfg.RefreshTTL(),
	}, rt.stores.Users, rt.kv, rt.logger)
	pair, err := svc.IssueTokensWithRefresh(ctx, u)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "access_token:  %s\n", pair.AccessToken)
	fmt.Fprintf(out, "refresh_token: %s\n", pair.RefreshToken)
	fmt.Fprintf(out, "expires_in:    %ds\n", pair.ExpiresIn)
	return nil
}

func inspectToken(cmd *cobra.Command, args []string) error {
	var raw string
	if len(args) == 1 {
		raw = args[0]
	} else {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return err
		}
		raw = string(b)
	}
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "Bearer "))

	claims, err := msauth.FromToken(raw)
	if err != nil {
		return fmt.Errorf("decoding token: %w", err)
	}
	expired, err := msauth.IsTokenExpired(raw, 0)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "user id:   %s\n", claims.ID)
	fmt.Fprintf(out, "username:  %s\n", claims.Username)
	fmt.Fprintf(out, "staff:     %t\n", claims.IsStaff)
	fmt.Fprintf(out, "issuer:    %s\n", claims.Iss)
	fmt.Fprintf(out, "issued at: %s\n", time.Unix(claims.Iat, 0).UTC().Format(time.RFC3339))
	fmt.Fprintf(out, "expires:   %s", time.Unix(claims.Exp, 0).UTC().Format(time.RFC3339))
	if expired {
		fmt.Fprint(out, " (expired)")
	}
	fmt.Fprintln(out)
	return nil
}
