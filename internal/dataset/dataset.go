// Package dataset loads the curated JSON files bundled with the site.
package dataset

import (
	"embed"
	"encoding/json"
	"io/fs"
	"os"

	"emperror.dev/errors"

	"github.com/naka-gawa/portfolio/internal/domain"
)

const (
	// PostsFile holds the repository to blog post associations.
	PostsFile = "projects.json"
	// TimelineFile holds the timeline events.
	TimelineFile = "timeline.json"
)

//go:embed data/*.json
var bundled embed.FS

// Loader reads the datasets from Dir, or from the bundled copies when Dir is empty.
type Loader struct {
	Dir string
}

// NewLoader creates a Loader rooted at dir.
func NewLoader(dir string) *Loader {
	return &Loader{Dir: dir}
}

// LoadPosts reads the curated posts.
func (l *Loader) LoadPosts() ([]domain.CuratedPost, error) {
	var posts []domain.CuratedPost
	if err := l.decode(PostsFile, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// LoadTimeline reads the timeline events in dataset order.
func (l *Loader) LoadTimeline() ([]domain.TimelineEvent, error) {
	var events []domain.TimelineEvent
	if err := l.decode(TimelineFile, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (l *Loader) fsys() (fs.FS, error) {
	if l.Dir == "" {
		return fs.Sub(bundled, "data")
	}
	return os.DirFS(l.Dir), nil
}

func (l *Loader) decode(name string, v interface{}) error {
	fsys, err := l.fsys()
	if err != nil {
		return errors.Wrap(err, "failed to open dataset directory")
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", name)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrapf(err, "failed to parse %s", name)
	}
	return nil
}
