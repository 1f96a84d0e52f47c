package gh

import (
	"context"

	"emperror.dev/errors"
	"github.com/shurcooL/githubv4"
)

type Viewer struct {
	Name  string `graphql:"name"`
	Login string `graphql:"login"`
}

func (c *Client) Viewer(ctx context.Context) (*Viewer, error) {
	var query struct {
		Viewer Viewer `graphql:"viewer"`
	}
	err := c.query(ctx, &query, nil)
	if err != nil {
		return nil, err
	}
	return &query.Viewer, nil
}

// ViewerRepositories lists the full names (owner/name) of every repository the
// authenticated user owns, collaborates on or can access through an
// organization.
func (c *Client) ViewerRepositories(ctx context.Context) ([]string, error) {
	type repositoriesQuery struct {
		Viewer struct {
			Repositories struct {
				Nodes []struct {
					NameWithOwner string
				}
				PageInfo struct {
					EndCursor   githubv4.String
					HasNextPage bool
				}
			} `graphql:"repositories(first: 100, after: $cursor, ownerAffiliations: [OWNER, COLLABORATOR, ORGANIZATION_MEMBER])"`
		}
	}
	variables := map[string]any{
		"cursor": (*githubv4.String)(nil),
	}

	var names []string
	for {
		var query repositoriesQuery
		if err := c.query(ctx, &query, variables); err != nil {
			return nil, errors.Wrap(err, "failed to list repositories of the authenticated user")
		}
		for _, node := range query.Viewer.Repositories.Nodes {
			names = append(names, node.NameWithOwner)
		}
		if !query.Viewer.Repositories.PageInfo.HasNextPage {
			return names, nil
		}
		variables["cursor"] = githubv4.NewString(query.Viewer.Repositories.PageInfo.EndCursor)
	}
}
