package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/portfolio/internal/config"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Writes the data of every page into an output directory",
	Long: `Builds the projects and timeline pages concurrently and writes them as
projects.json and timeline.json into the output directory. A failed repository
listing does not fail the build: the projects page falls back instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		out, _ := cmd.Flags().GetString("out")
		return buildSite(cmd.Context(), cfg, out)
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringP("out", "o", "out", "Output directory")
}

func buildSite(ctx context.Context, cfg *config.Config, out string) error {
	logger := newLogger(cfg)
	if err := os.MkdirAll(out, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		page, err := buildProjectsPage(egCtx, cfg, logger)
		if err != nil {
			return err
		}
		return writeJSONFile(filepath.Join(out, "projects.json"), page)
	})

	eg.Go(func() error {
		page, err := buildTimelinePage(cfg)
		if err != nil {
			return err
		}
		return writeJSONFile(filepath.Join(out, "timeline.json"), page)
	})

	if err := eg.Wait(); err != nil {
		return err
	}
	logger.Debugf("Wrote pages to %s", out)
	return nil
}

func writeJSONFile(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := writeJSON(f, v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
