// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/portfolio/internal/config"
	"github.com/naka-gawa/portfolio/internal/dataset"
	"github.com/naka-gawa/portfolio/internal/gateway"
	"github.com/naka-gawa/portfolio/internal/usecase"
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "A CLI tool to generate the data of a personal portfolio site.",
	Long: `portfolio fetches a user's GitHub repositories, keeps those tagged with
the "portfolio" topic, links them to curated blog posts and writes the data
the projects and timeline pages render as JSON.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolP(config.KeyVerbose, "v", false, "Enable verbose/debug logging")
	flags.StringP(config.KeyUser, "u", config.DefaultUser, "GitHub user whose repositories are listed")
	flags.String(config.KeyAPI, config.APIREST, `Listing API: "rest" or "graphql"`)
	flags.String(config.KeyAPIURL, "", "REST API base URL (default https://api.github.com/)")
	flags.String(config.KeyGraphQLURL, "", "GraphQL endpoint (default https://api.github.com/graphql)")
	flags.String(config.KeyDataDir, "", "Directory holding projects.json and timeline.json (default: bundled data)")
	flags.Bool(config.KeyWaitRateLimit, false, "Sleep through GitHub secondary rate limits instead of failing")
}

// loadConfig resolves the settings of the running command.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := config.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}
	return config.Load(v)
}

// newLogger logs warnings and errors to standard error, and everything with --verbose.
func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	if cfg.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// newIngestor injects the dependencies of the projects use case.
func newIngestor(cfg *config.Config, logger logrus.FieldLogger) (*usecase.ProjectIngestor, error) {
	httpClient, err := gateway.NewHTTPClient(gateway.ClientOptions{
		Token:         cfg.Token,
		WaitRateLimit: cfg.WaitRateLimit,
	})
	if err != nil {
		return nil, err
	}

	var fetcher gateway.Fetcher
	switch cfg.API {
	case config.APIGraphQL:
		fetcher = gateway.NewGraphQLGateway(httpClient, cfg.GraphQLURL, logger)
	default:
		fetcher, err = gateway.NewGitHubGateway(httpClient, cfg.APIURL, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create GitHub gateway: %w", err)
		}
	}
	return usecase.NewProjectIngestor(fetcher, dataset.NewLoader(cfg.DataDir), logger), nil
}

// writeJSON writes v as pretty-printed JSON.
func writeJSON(w io.Writer, v interface{}) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results to JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonData))
	return err
}
