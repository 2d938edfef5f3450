package cmd

import (
	"github.com/spf13/cobra"

	"github.com/naka-gawa/portfolio/internal/config"
	"github.com/naka-gawa/portfolio/internal/dataset"
	"github.com/naka-gawa/portfolio/internal/pages"
	"github.com/naka-gawa/portfolio/internal/usecase"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Outputs the timeline page, newest event first, as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		page, err := buildTimelinePage(cfg)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), page)
	},
}

func init() {
	rootCmd.AddCommand(timelineCmd)
}

func buildTimelinePage(cfg *config.Config) (pages.TimelinePage, error) {
	events, err := dataset.NewLoader(cfg.DataDir).LoadTimeline()
	if err != nil {
		return pages.TimelinePage{}, err
	}
	entries, err := usecase.SortTimeline(events)
	if err != nil {
		return pages.TimelinePage{}, err
	}
	return pages.NewTimelinePage(entries), nil
}
