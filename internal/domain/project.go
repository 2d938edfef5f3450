// Package domain contains the core data structures and domain logic for the application.
package domain

// RemoteRepository is one repository as listed by the hosting API.
// Optional fields are nil when the host omits them or sends null.
type RemoteRepository struct {
	Name        string   `json:"name"`
	FullName    string   `json:"full_name"`
	Description *string  `json:"description,omitempty"`
	Homepage    *string  `json:"homepage,omitempty"`
	HTMLURL     string   `json:"html_url"`
	Archived    bool     `json:"archived"`
	Topics      []string `json:"topics"`
}

// HasTopic reports whether the repository is labelled with topic.
func (r RemoteRepository) HasTopic(topic string) bool {
	for _, t := range r.Topics {
		if t == topic {
			return true
		}
	}
	return false
}

// CuratedPost links a repository to a blog post slug.
type CuratedPost struct {
	Repository string `json:"repository"`
	Post       string `json:"post"`
}

// Project is a repository as shown on the projects page.
// It is the core domain entity of this application.
type Project struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Homepage    *string `json:"homepage,omitempty"`
	URL         string  `json:"url"`
	Post        *string `json:"post,omitempty"`
	Template    bool    `json:"template"`
}
