// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"
	"strings"

	"emperror.dev/errors"
	"github.com/sirupsen/logrus"

	"github.com/naka-gawa/portfolio/internal/domain"
	"github.com/naka-gawa/portfolio/internal/gateway"
)

// PortfolioTopic marks a repository for display on the projects page.
const PortfolioTopic = "portfolio"

// ErrFetchFailed is returned by FetchProjects when the repository listing fails.
const ErrFetchFailed = errors.Sentinel("failed to fetch projects")

// PostLoader loads the curated repository to blog post associations.
type PostLoader interface {
	LoadPosts() ([]domain.CuratedPost, error)
}

// ProjectIngestor is the use case for building the projects page.
// It merges the listed repositories with the curated blog posts.
type ProjectIngestor struct {
	fetcher gateway.Fetcher
	posts   PostLoader
	logger  logrus.FieldLogger
}

// NewProjectIngestor creates a new ProjectIngestor instance.
func NewProjectIngestor(fetcher gateway.Fetcher, posts PostLoader, logger logrus.FieldLogger) *ProjectIngestor {
	return &ProjectIngestor{
		fetcher: fetcher,
		posts:   posts,
		logger:  logger,
	}
}

// FetchProjects lists every repository of user and keeps the non-archived
// ones labelled with the portfolio topic, in listing order.
// A failed listing yields no projects at all and an error matching ErrFetchFailed.
func (i *ProjectIngestor) FetchProjects(ctx context.Context, user string) ([]domain.Project, error) {
	i.logger.Debugln("Usecase: Fetching projects...")

	repos, err := i.fetcher.FetchRepositories(ctx, user)
	if err != nil {
		i.logFetchError(err)
		return nil, errors.WithDetails(fmt.Errorf("%w: %w", ErrFetchFailed, err), "user", user)
	}

	posts, err := i.posts.LoadPosts()
	if err != nil {
		return nil, errors.WrapIf(err, "failed to load curated posts")
	}

	projects := make([]domain.Project, 0, len(repos))
	for _, repo := range repos {
		if !repo.HasTopic(PortfolioTopic) || repo.Archived {
			continue
		}
		projects = append(projects, newProject(repo, posts))
	}

	i.logger.Debugf("Usecase: %d of %d repositories kept.", len(projects), len(repos))
	return projects, nil
}

func newProject(repo domain.RemoteRepository, posts []domain.CuratedPost) domain.Project {
	project := domain.Project{
		Name:     repo.Name,
		Homepage: repo.Homepage,
		URL:      strings.ToLower(repo.HTMLURL),
		Template: false,
	}

	if repo.Description != nil && *repo.Description != "" {
		icon, description := SplitIcon(*repo.Description)
		if icon != "" {
			project.Icon = &icon
		}
		if description != "" {
			project.Description = &description
		}
	}

	if post, ok := findPost(posts, repo.FullName); ok {
		path := "/blog/" + post.Post
		project.Post = &path
	}

	return project
}

func findPost(posts []domain.CuratedPost, fullName string) (domain.CuratedPost, bool) {
	for _, post := range posts {
		if strings.EqualFold(post.Repository, fullName) {
			return post, true
		}
	}
	return domain.CuratedPost{}, false
}

func (i *ProjectIngestor) logFetchError(err error) {
	fields := logrus.Fields{logrus.ErrorKey: err}
	var fe *gateway.FetchError
	if errors.As(err, &fe) {
		fields["page"] = fe.Page
		fields["status"] = fe.StatusCode
		fields["message"] = fe.Message
		fields["documentation_url"] = fe.DocumentationURL
	}
	i.logger.WithFields(fields).Error("Failed to fetch projects")
}
