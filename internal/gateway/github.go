// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/google/go-github/v62/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/naka-gawa/portfolio/internal/domain"
)

// PageSize is the number of repositories requested per listing page.
const PageSize = 100

// Fetcher defines the behavior of a gateway for listing a user's repositories.
type Fetcher interface {
	FetchRepositories(ctx context.Context, user string) ([]domain.RemoteRepository, error)
}

// FetchError is returned when the host refuses to serve a listing page.
// No repositories are returned alongside it.
type FetchError struct {
	Page             int
	StatusCode       int
	Message          string
	DocumentationURL string
	Err              error
}

func (e *FetchError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("failed to list repositories (page %d): %s", e.Page, e.Message)
	}
	return fmt.Sprintf("failed to list repositories (page %d, status %d): %s", e.Page, e.StatusCode, e.Message)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ClientOptions controls how the HTTP client used by the gateways is built.
type ClientOptions struct {
	// Token is attached to every request when set. Anonymous requests are
	// allowed by the REST API, subject to its lower rate limit.
	Token string
	// WaitRateLimit sleeps through GitHub secondary rate limits instead of
	// failing the page.
	WaitRateLimit bool
}

// NewHTTPClient builds the authenticated transport chain shared by both gateways.
func NewHTTPClient(opts ClientOptions) (*http.Client, error) {
	var base http.RoundTripper = http.DefaultTransport
	if opts.WaitRateLimit {
		rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
		if err != nil {
			return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
		}
		base = rateLimitWaiter
	}
	if opts.Token == "" {
		return &http.Client{Transport: base}, nil
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
	return &http.Client{
		Transport: &oauth2.Transport{
			Base:   base,
			Source: ts,
		},
	}, nil
}

// GitHubGateway lists repositories through the REST API.
type GitHubGateway struct {
	restClient *github.Client
	logger     logrus.FieldLogger
}

// NewGitHubGateway creates a REST gateway. An empty baseURL keeps the public API.
func NewGitHubGateway(httpClient *http.Client, baseURL string, logger logrus.FieldLogger) (*GitHubGateway, error) {
	restClient := github.NewClient(httpClient)
	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid API URL %q: %w", baseURL, err)
		}
		restClient.BaseURL = u
	}
	return &GitHubGateway{
		restClient: restClient,
		logger:     logger,
	}, nil
}

// FetchRepositories pages through the user's repositories one page at a time
// until the host returns an empty page. The first failing page aborts the
// whole listing.
func (g *GitHubGateway) FetchRepositories(ctx context.Context, user string) ([]domain.RemoteRepository, error) {
	g.logger.Debugf("Fetching repositories of %s using REST API...", user)
	opts := &github.RepositoryListByUserOptions{ListOptions: github.ListOptions{PerPage: PageSize}}
	var repos []domain.RemoteRepository
	for page := 1; ; page++ {
		opts.Page = page
		result, _, err := g.restClient.Repositories.ListByUser(ctx, user, opts)
		if err != nil {
			return nil, newFetchError(page, err)
		}
		if len(result) == 0 {
			break
		}
		for _, repo := range result {
			repos = append(repos, fromRESTRepository(repo))
		}
		g.logger.Debugf("  Fetched page %d (%d repositories)", page, len(result))
	}
	g.logger.Debugf("Completed fetching %d repositories.", len(repos))
	return repos, nil
}

func fromRESTRepository(repo *github.Repository) domain.RemoteRepository {
	return domain.RemoteRepository{
		Name:        repo.GetName(),
		FullName:    repo.GetFullName(),
		Description: repo.Description,
		Homepage:    repo.Homepage,
		HTMLURL:     repo.GetHTMLURL(),
		Archived:    repo.GetArchived(),
		Topics:      repo.Topics,
	}
}

// newFetchError extracts the status and error payload go-github decoded for a failed page.
func newFetchError(page int, err error) *FetchError {
	fe := &FetchError{Page: page, Message: err.Error(), Err: err}

	var errResp *github.ErrorResponse
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	switch {
	case errors.As(err, &errResp):
		fe.Message = errResp.Message
		fe.DocumentationURL = errResp.DocumentationURL
		fe.StatusCode = statusCode(errResp.Response)
	case errors.As(err, &rateErr):
		fe.Message = rateErr.Message
		fe.StatusCode = statusCode(rateErr.Response)
	case errors.As(err, &abuseErr):
		fe.Message = abuseErr.Message
		fe.StatusCode = statusCode(abuseErr.Response)
	}
	return fe
}

func statusCode(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}
