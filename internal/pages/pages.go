// Package pages builds the data each static page renders.
package pages

import "github.com/naka-gawa/portfolio/internal/domain"

// ErrorPage is rendered in place of a page that has nothing to show.
type ErrorPage struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

const emptyTitle = "There's nothing here"

var (
	noProjects = ErrorPage{
		Title:   emptyTitle,
		Message: "Sorry, there are no projects for now. Check back later!",
	}
	noTimeline = ErrorPage{
		Title:   emptyTitle,
		Message: "Sorry, there are no timeline events for now. Check back later!",
	}
)

// ProjectsPage is the data of the projects page. Exactly one of Projects and Error is set.
type ProjectsPage struct {
	Projects []domain.Project `json:"projects,omitempty"`
	Error    *ErrorPage       `json:"error,omitempty"`
}

// NewProjectsPage shows the fallback when fetching failed or nothing qualified.
func NewProjectsPage(projects []domain.Project, err error) ProjectsPage {
	if err != nil || len(projects) == 0 {
		fallback := noProjects
		return ProjectsPage{Error: &fallback}
	}
	return ProjectsPage{Projects: projects}
}

// TimelinePage is the data of the timeline page. Exactly one of Timeline and Error is set.
type TimelinePage struct {
	Timeline []domain.TimelineEntry `json:"timeline,omitempty"`
	Error    *ErrorPage             `json:"error,omitempty"`
}

// NewTimelinePage shows the fallback when there are no events.
func NewTimelinePage(entries []domain.TimelineEntry) TimelinePage {
	if len(entries) == 0 {
		fallback := noTimeline
		return TimelinePage{Error: &fallback}
	}
	return TimelinePage{Timeline: entries}
}
