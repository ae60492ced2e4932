package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/quatton/metashare/pkg/mserr"
	"github.com/quatton/metashare/pkg/mssdk"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	baseURL string
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage credentials for a MetaShare server",
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a token pair for the configured server",
	Long: `Stores an access token and refresh token in the OS keyring, keyed by the
server's base URL. Obtain a pair with 'metashare token issue <username>'.

Examples:
	metashare auth login --token <ACCESS> --refresh-token <REFRESH>
	metashare --base-url https://metashare.example.com auth login --token <ACCESS>`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		access, _ := cmd.Flags().GetString("token")
		refresh, _ := cmd.Flags().GetString("refresh-token")
		if access == "" {
			return errors.New("--token is required")
		}
		sdk, err := newSdk()
		if err != nil {
			return err
		}
		if err := sdk.Login(access, refresh); err != nil {
			return clientError(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Credentials saved for %s\n", sdk.BaseURL)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke the refresh token and forget stored credentials",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sdk, err := newSdk()
		if err != nil {
			return err
		}
		if err := sdk.Logout(cmd.Context()); err != nil {
			return clientError(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	},
}

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the authenticated user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sdk, err := newSdk()
		if err != nil {
			return err
		}
		u, err := sdk.Me(cmd.Context())
		if err != nil {
			return clientError(err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Logged in: @%s\n", u.Username)
		fmt.Fprintf(out, "Email: %s\n", u.Email)
		fmt.Fprintf(out, "ID: %s\n", u.Id)
		if u.SfUsername != nil && *u.SfUsername != "" {
			fmt.Fprintf(out, "Salesforce: %s (devhub: %t)\n", *u.SfUsername, u.IsDevhubEnabled)
		}
		return nil
	},
}

var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "List repositories you can see",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sdk, err := newSdk()
		if err != nil {
			return err
		}
		if refresh, _ := cmd.Flags().GetBool("refresh"); refresh {
			if err := sdk.RefreshRepositories(cmd.Context()); err != nil {
				return clientError(err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "Repository refresh queued")
		}
		repos, err := sdk.Repositories(cmd.Context())
		if err != nil {
			return clientError(err)
		}
		tw := table(cmd.OutOrStdout())
		fmt.Fprintln(tw, "SLUG\tGITHUB\tID")
		for _, r := range repos {
			fmt.Fprintf(tw, "%s\t%s/%s\t%s\n", r.Slug, r.RepoOwner, r.RepoName, r.Id)
		}
		return tw.Flush()
	},
}

var orgsCmd = &cobra.Command{
	Use:   "orgs",
	Short: "List scratch orgs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sdk, err := newSdk()
		if err != nil {
			return err
		}
		task, _ := cmd.Flags().GetString("task")
		orgs, err := sdk.ScratchOrgs(cmd.Context(), task)
		if err != nil {
			return clientError(err)
		}
		tw := table(cmd.OutOrStdout())
		fmt.Fprintln(tw, "ID\tTYPE\tOWNER\tURL\tUNSAVED")
		for _, o := range orgs {
			url := "-"
			if o.Url != nil {
				url = *o.Url
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\n", o.Id, o.OrgType, o.OwnerGhUsername, url, o.HasUnsavedChanges)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "client config file (YAML). Searches: metashare.yaml, .metashare/config.yaml")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "MetaShare server URL (overrides config)")

	loginCmd.Flags().String("token", "", "access token")
	loginCmd.Flags().String("refresh-token", "", "refresh token, enables automatic renewal")
	reposCmd.Flags().Bool("refresh", false, "re-sync GitHub memberships first")
	orgsCmd.Flags().String("task", "", "only orgs for this task ID")

	authCmd.AddCommand(loginCmd, logoutCmd)
	rootCmd.AddCommand(authCmd, meCmd, reposCmd, orgsCmd)
}

func newSdk() (*mssdk.Sdk, error) {
	cfg, err := mssdk.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return mssdk.NewSdk(cfg)
}

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// clientError adds a next step to errors the user can act on.
func clientError(err error) error {
	switch {
	case mserr.IsCode(err, mserr.CodeUnauthorized):
		return fmt.Errorf("authentication required, run 'metashare auth login' (%w)", err)
	case mserr.IsCode(err, mserr.CodePermissionDenied):
		return fmt.Errorf("not allowed: %w", err)
	default:
		return err
	}
}
