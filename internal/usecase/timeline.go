package usecase

import (
	"fmt"
	"sort"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/naka-gawa/portfolio/internal/domain"
)

// TimelineDateLayout is the date format used by the timeline dataset.
const TimelineDateLayout = "01-02-2006"

// SortTimeline resolves the event dates and orders the events newest first.
// Events sharing a date keep their dataset order.
func SortTimeline(events []domain.TimelineEvent) ([]domain.TimelineEntry, error) {
	entries := make([]domain.TimelineEntry, 0, len(events))
	for _, event := range events {
		t, err := time.Parse(TimelineDateLayout, event.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q for timeline event %q: %w", event.Date, event.Title, err)
		}
		entries = append(entries, domain.TimelineEntry{
			TimelineEvent: event,
			Time:          t,
			DisplayDate:   DisplayDate(t),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Time.After(entries[j].Time)
	})
	return entries, nil
}

// DisplayDate renders t in the long form, e.g. "March 1st, 2021".
func DisplayDate(t time.Time) string {
	return fmt.Sprintf("%s %s, %d", t.Month(), humanize.Ordinal(t.Day()), t.Year())
}
