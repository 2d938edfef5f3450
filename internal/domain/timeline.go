package domain

import "time"

// TimelineLink is the optional call to action under a timeline event.
type TimelineLink struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// TimelineEvent is one entry of the bundled timeline dataset.
// Date uses the MM-DD-YYYY form.
type TimelineEvent struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Date        string        `json:"date"`
	Icon        string        `json:"icon"`
	Link        *TimelineLink `json:"link,omitempty"`
}

// TimelineEntry is a TimelineEvent with its date resolved for display.
type TimelineEntry struct {
	TimelineEvent
	Time        time.Time `json:"time"`
	DisplayDate string    `json:"display_date"`
}
