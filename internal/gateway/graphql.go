package gateway

import (
	"context"
	"net/http"

	"github.com/shurcooL/githubv4"
	"github.com/sirupsen/logrus"

	"github.com/naka-gawa/portfolio/internal/domain"
)

// userRepositoriesQuery selects only the fields a Project is built from.
type userRepositoriesQuery struct {
	User struct {
		Repositories struct {
			PageInfo struct {
				HasNextPage bool
				EndCursor   githubv4.String
			}
			Nodes []struct {
				Name             string
				NameWithOwner    string
				Description      *string
				HomepageURL      *string `graphql:"homepageUrl"`
				URL              string  `graphql:"url"`
				IsArchived       bool
				RepositoryTopics struct {
					Nodes []struct {
						Topic struct {
							Name string
						}
					}
				} `graphql:"repositoryTopics(first: 20)"`
			}
		} `graphql:"repositories(first: 100, after: $cursor, ownerAffiliations: [OWNER])"`
	} `graphql:"user(login: $login)"`
}

// GraphQLGateway lists repositories through the GraphQL API. GitHub rejects
// anonymous GraphQL requests, so the HTTP client must carry a token.
type GraphQLGateway struct {
	graphqlClient *githubv4.Client
	logger        logrus.FieldLogger
}

// NewGraphQLGateway creates a GraphQL gateway. An empty endpoint keeps the public API.
func NewGraphQLGateway(httpClient *http.Client, endpoint string, logger logrus.FieldLogger) *GraphQLGateway {
	client := githubv4.NewClient(httpClient)
	if endpoint != "" {
		client = githubv4.NewEnterpriseClient(endpoint, httpClient)
	}
	return &GraphQLGateway{
		graphqlClient: client,
		logger:        logger,
	}
}

// FetchRepositories follows the repositories cursor until the last page.
// Pages are numbered from 1 in errors to match the REST gateway.
func (g *GraphQLGateway) FetchRepositories(ctx context.Context, user string) ([]domain.RemoteRepository, error) {
	g.logger.Debugf("Fetching repositories of %s using GraphQL API...", user)
	variables := map[string]interface{}{
		"login":  githubv4.String(user),
		"cursor": (*githubv4.String)(nil),
	}

	var repos []domain.RemoteRepository
	for page := 1; ; page++ {
		var q userRepositoriesQuery
		if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
			return nil, &FetchError{Page: page, Message: err.Error(), Err: err}
		}

		for _, node := range q.User.Repositories.Nodes {
			topics := make([]string, 0, len(node.RepositoryTopics.Nodes))
			for _, t := range node.RepositoryTopics.Nodes {
				topics = append(topics, t.Topic.Name)
			}
			repos = append(repos, domain.RemoteRepository{
				Name:        node.Name,
				FullName:    node.NameWithOwner,
				Description: node.Description,
				Homepage:    node.HomepageURL,
				HTMLURL:     node.URL,
				Archived:    node.IsArchived,
				Topics:      topics,
			})
		}

		if !q.User.Repositories.PageInfo.HasNextPage {
			break
		}
		variables["cursor"] = githubv4.NewString(q.User.Repositories.PageInfo.EndCursor)
		g.logger.Debugln("  Fetching next page of repositories...")
	}
	g.logger.Debugf("Completed fetching %d repositories.", len(repos))
	return repos, nil
}
