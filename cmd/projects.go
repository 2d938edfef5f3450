package cmd

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/portfolio/internal/config"
	"github.com/naka-gawa/portfolio/internal/pages"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Fetches portfolio projects and outputs the projects page as JSON",
	Long: `Lists the user's repositories, keeps the non-archived ones tagged with the
"portfolio" topic, links curated blog posts and prints the projects page data.
When the listing fails the page falls back to its "nothing here" state.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(cfg)

		page, err := buildProjectsPage(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), page)
	},
}

func init() {
	rootCmd.AddCommand(projectsCmd)
}

// buildProjectsPage only fails on setup errors; a failed fetch becomes the fallback page.
func buildProjectsPage(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (pages.ProjectsPage, error) {
	ingestor, err := newIngestor(cfg, logger)
	if err != nil {
		return pages.ProjectsPage{}, err
	}
	projects, err := ingestor.FetchProjects(ctx, cfg.User)
	return pages.NewProjectsPage(projects, err), nil
}
