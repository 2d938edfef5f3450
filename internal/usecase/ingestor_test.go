package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/portfolio/internal/domain"
	"github.com/naka-gawa/portfolio/internal/gateway"
)

// mockFetcher is a mock implementation of the gateway.Fetcher interface.
// It allows us to simulate the behavior of the GitHub gateway without making real API calls.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchRepositories(ctx context.Context, user string) ([]domain.RemoteRepository, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RemoteRepository), args.Error(1)
}

type mockPostLoader struct {
	mock.Mock
}

func (m *mockPostLoader) LoadPosts() ([]domain.CuratedPost, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CuratedPost), args.Error(1)
}

func strPtr(s string) *string { return &s }

func repo(name string, topics ...string) domain.RemoteRepository {
	return domain.RemoteRepository{
		Name:     name,
		FullName: "nurodev/" + name,
		HTMLURL:  "https://github.com/nurodev/" + name,
		Topics:   topics,
	}
}

func TestProjectIngestor_FetchProjects(t *testing.T) {
	archived := repo("old", PortfolioTopic)
	archived.Archived = true

	withEmoji := repo("rocket", PortfolioTopic)
	withEmoji.Description = strPtr("🚀 Fast build tool")
	withEmoji.Homepage = strPtr("https://Rocket.dev")

	plain := repo("plain", PortfolioTopic, "go")
	plain.Description = strPtr("Fast build tool")

	mixedCase := domain.RemoteRepository{
		Name:     "Foo",
		FullName: "nurodev/Foo",
		HTMLURL:  "https://github.com/NuroDev/Foo",
		Topics:   []string{PortfolioTopic},
	}

	emptyDescription := repo("empty", PortfolioTopic)
	emptyDescription.Description = strPtr("")

	testCases := []struct {
		name           string
		repos          []domain.RemoteRepository
		posts          []domain.CuratedPost
		expectedResult []domain.Project
	}{
		{
			name:           "archived repositories are dropped regardless of topics",
			repos:          []domain.RemoteRepository{archived},
			expectedResult: []domain.Project{},
		},
		{
			name:           "repositories without the portfolio topic are dropped",
			repos:          []domain.RemoteRepository{repo("dotfiles", "go"), repo("untagged")},
			expectedResult: []domain.Project{},
		},
		{
			name:  "leading emoji becomes the icon",
			repos: []domain.RemoteRepository{withEmoji},
			expectedResult: []domain.Project{
				{
					Name:        "rocket",
					Description: strPtr("Fast build tool"),
					Icon:        strPtr("🚀"),
					Homepage:    strPtr("https://Rocket.dev"),
					URL:         "https://github.com/nurodev/rocket",
				},
			},
		},
		{
			name:  "description without emoji is kept",
			repos: []domain.RemoteRepository{plain},
			expectedResult: []domain.Project{
				{
					Name:        "plain",
					Description: strPtr("Fast build tool"),
					URL:         "https://github.com/nurodev/plain",
				},
			},
		},
		{
			name:  "curated post matches full name case-insensitively and url is lower-cased",
			repos: []domain.RemoteRepository{mixedCase},
			posts: []domain.CuratedPost{
				{Repository: "nurodev/other", Post: "other-post"},
				{Repository: "NuroDev/foo", Post: "my-post"},
			},
			expectedResult: []domain.Project{
				{
					Name: "Foo",
					URL:  "https://github.com/nurodev/foo",
					Post: strPtr("/blog/my-post"),
				},
			},
		},
		{
			name:  "empty description stays absent",
			repos: []domain.RemoteRepository{emptyDescription},
			expectedResult: []domain.Project{
				{Name: "empty", URL: "https://github.com/nurodev/empty"},
			},
		},
		{
			name:  "listing order is kept",
			repos: []domain.RemoteRepository{repo("b", PortfolioTopic), archived, repo("a", PortfolioTopic)},
			expectedResult: []domain.Project{
				{Name: "b", URL: "https://github.com/nurodev/b"},
				{Name: "a", URL: "https://github.com/nurodev/a"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange ---
			ctx := context.Background()
			logger, _ := test.NewNullLogger()
			fetcher := new(mockFetcher)
			posts := new(mockPostLoader)
			fetcher.On("FetchRepositories", mock.Anything, "nurodev").Return(tc.repos, nil)
			posts.On("LoadPosts").Return(tc.posts, nil).Once()

			ingestor := NewProjectIngestor(fetcher, posts, logger)

			// --- Act ---
			results, err := ingestor.FetchProjects(ctx, "nurodev")

			// --- Assert ---
			require.NoError(t, err)
			assert.Equal(t, tc.expectedResult, results)
			fetcher.AssertExpectations(t)
			posts.AssertExpectations(t)
		})
	}
}

func TestProjectIngestor_FetchProjects_FetchFailure(t *testing.T) {
	ctx := context.Background()
	logger, hook := test.NewNullLogger()
	fetcher := new(mockFetcher)
	posts := new(mockPostLoader)
	fetchErr := &gateway.FetchError{
		Page:             3,
		StatusCode:       403,
		Message:          "API rate limit exceeded",
		DocumentationURL: "https://docs.github.com/rest/overview/resources-in-the-rest-api#rate-limiting",
	}
	fetcher.On("FetchRepositories", mock.Anything, "nurodev").Return(nil, fetchErr)

	ingestor := NewProjectIngestor(fetcher, posts, logger)
	results, err := ingestor.FetchProjects(ctx, "nurodev")

	assert.Nil(t, results)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFetchFailed))
	var fe *gateway.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, 3, fe.Page)

	// The curated dataset is not loaded once the listing failed.
	posts.AssertNotCalled(t, "LoadPosts")

	require.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "Failed to fetch projects", entry.Message)
	assert.Equal(t, 403, entry.Data["status"])
	assert.Equal(t, "API rate limit exceeded", entry.Data["message"])
	assert.Equal(t, fetchErr.DocumentationURL, entry.Data["documentation_url"])
}

func TestProjectIngestor_FetchProjects_PostLoadFailure(t *testing.T) {
	logger, _ := test.NewNullLogger()
	fetcher := new(mockFetcher)
	posts := new(mockPostLoader)
	fetcher.On("FetchRepositories", mock.Anything, "nurodev").Return([]domain.RemoteRepository{repo("a", PortfolioTopic)}, nil)
	posts.On("LoadPosts").Return(nil, errors.New("broken dataset"))

	ingestor := NewProjectIngestor(fetcher, posts, logger)
	results, err := ingestor.FetchProjects(context.Background(), "nurodev")

	assert.Nil(t, results)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrFetchFailed))
	assert.Contains(t, err.Error(), "broken dataset")
}
