package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"unbelong/internal/api"
)

type rootOptions struct {
	apiURL string
	asJSON bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "unbelong",
		Short:        "Inspect the unbelong gallery API",
		Long:         "Read illustrations and works from the gallery API and build image URLs",
		SilenceUsage: true,
	}

	defaultAPI := os.Getenv("UNBELONG_API_URL")
	if defaultAPI == "" {
		defaultAPI = api.DefaultBaseURL
	}
	cmd.PersistentFlags().StringVar(&opts.apiURL, "api", defaultAPI, "API base URL")
	cmd.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "print raw JSON instead of a table")

	cmd.AddCommand(newIllustrationsCmd(opts))
	cmd.AddCommand(newWorksCmd(opts))
	cmd.AddCommand(newImageURLCmd(opts))
	cmd.AddCommand(newExportCmd(opts))
	cmd.AddCommand(newSnapshotCmd(opts))
	return cmd
}

func (o *rootOptions) client() (*api.Client, error) {
	c, err := api.NewClient(o.apiURL)
	if err != nil {
		return nil, fmt.Errorf("api client: %w", err)
	}
	return c, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
