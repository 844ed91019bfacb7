package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/hrsearch/internal/version"
	hrsearch "github.com/kailas-cloud/hrsearch/pkg/sdk"
)

const app = "hrsearchctl"

type rootOptions struct {
	addr    string
	apiKey  string
	timeout time.Duration
	json    bool
}

func (o *rootOptions) client() (*hrsearch.Client, error) {
	return hrsearch.New(o.addr,
		hrsearch.WithAPIKey(o.apiKey),
		hrsearch.WithTimeout(o.timeout),
	)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           app,
		Short:         "hrsearchctl talks to an hrsearch server: search employees, manage profile vectors",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.addr, "addr", envOr("HRSEARCH_ADDR", "http://localhost:8080"), "server base URL")
	root.PersistentFlags().StringVar(&opts.apiKey, "api-key", os.Getenv("HRSEARCH_API_KEY"), "Bearer API key")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 60*time.Second, "per-request timeout")
	root.PersistentFlags().BoolVarP(&opts.json, "json", "j", false, "print raw JSON")

	root.AddCommand(
		newSearchCmd(opts),
		newRebuildCmd(opts),
		newDeleteCmd(opts),
		newReindexCmd(opts),
		newUsageCmd(opts),
		newHealthCmd(opts),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", app, version.String())
		},
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := jsonEncoder(cmd)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	return nil
}
