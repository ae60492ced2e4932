package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/quatton/metashare/pkg/msapi"
	"github.com/quatton/metashare/pkg/msapi/routes"
	"github.com/quatton/metashare/pkg/mslog"
	"github.com/spf13/cobra"
)

var openapiCmd = &cobra.Command{
	Use:     "openapi",
	Aliases: []string{"spec"},
	Short:   "Generate the OpenAPI document",
	Long: `Outputs the OpenAPI document for the MetaShare API without connecting to
the database or redis. pkg/client is generated from this output.

Examples:
	metashare openapi -o pkg/client/openapi.json
	metashare openapi --format yaml --downgrade=false
	metashare openapi -o pkg/client/openapi.json --check`,
	Args: cobra.NoArgs,
	RunE: generateOpenAPI,
}

var (
	openapiOutput    string
	openapiDowngrade bool
	openapiFormat    string
	openapiCheck     bool
)

func init() {
	rootCmd.AddCommand(openapiCmd)
	openapiCmd.Flags().StringVarP(&openapiOutput, "output", "o", "", "Write output to file (default stdout)")
	openapiCmd.Flags().BoolVar(&openapiDowngrade, "downgrade", true, "Downgrade OpenAPI to 3.0, which oapi-codegen requires")
	openapiCmd.Flags().StringVar(&openapiFormat, "format", "json", "Output format: json or yaml")
	openapiCmd.Flags().BoolVar(&openapiCheck, "check", false, "Fail if --output differs from the current routes instead of writing it")
}

// renderOpenAPI registers every route against a service-less API and
// serializes the resulting document.
func renderOpenAPI(format string, downgrade bool) ([]byte, error) {
	api := msapi.NewApi(msapi.Options{Logger: mslog.NewQuiet()})
	routes.RegisterAPI(api.Api, nil, mslog.NewQuiet())
	doc := api.Api.OpenAPI()

	switch format {
	case "json":
		if downgrade {
			return doc.Downgrade()
		}
		return json.MarshalIndent(doc, "", "  ")
	case "yaml":
		if downgrade {
			return doc.DowngradeYAML()
		}
		return doc.YAML()
	default:
		return nil, fmt.Errorf("unknown format %q, want json or yaml", format)
	}
}

func generateOpenAPI(cmd *cobra.Command, args []string) error {
	spec, err := renderOpenAPI(openapiFormat, openapiDowngrade)
	if err != nil {
		return fmt.Errorf("failed to generate OpenAPI spec: %w", err)
	}

	if openapiCheck {
		if openapiOutput == "" {
			return errors.New("--check needs --output")
		}
		current, err := os.ReadFile(openapiOutput)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", openapiOutput, err)
		}
		if !bytes.Equal(bytes.TrimSpace(current), bytes.TrimSpace(spec)) {
			return fmt.Errorf("%s is out of date, run 'go generate ./pkg/client'", openapiOutput)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is up to date\n", openapiOutput)
		return nil
	}

	if openapiOutput == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(spec))
		return nil
	}
	if err := os.WriteFile(openapiOutput, append(spec, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write OpenAPI spec to %s: %w", openapiOutput, err)
	}
	return nil
}
