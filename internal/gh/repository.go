package gh

import (
	"context"
	"net/url"
	"strings"

	"emperror.dev/errors"
	giturls "github.com/chainguard-dev/git-urls"
	"github.com/shurcooL/githubv4"
)

// Repo identifies a repository by owner and name.
type Repo struct {
	Owner string
	Name  string
}

func (r Repo) String() string {
	return r.Owner + "/" + r.Name
}

// path returns the REST path of the repository followed by the given
// (already escaped) path elements.
func (r Repo) path(elems ...string) string {
	p := "/repos/" + url.PathEscape(r.Owner) + "/" + url.PathEscape(r.Name)
	for _, elem := range elems {
		p += "/" + elem
	}
	return p
}

// ParseRepo parses a repository reference. The reference is either a slug
// (owner/name, split on the first slash) or a git remote URL such as
// https://github.com/owner/name.git or git@github.com:owner/name.git.
func ParseRepo(ref string) (Repo, error) {
	slug := ref
	if strings.Contains(ref, "://") || strings.HasPrefix(ref, "git@") {
		u, err := giturls.Parse(ref)
		if err != nil {
			return Repo{}, errors.WrapIff(err, "failed to parse repository url %q", ref)
		}
		slug = strings.TrimPrefix(strings.TrimSuffix(u.Path, ".git"), "/")
	}

	owner, name, ok := strings.Cut(slug, "/")
	if !ok || owner == "" || name == "" {
		return Repo{}, errors.Errorf(
			"unable to parse repository slug (expected <owner>/<repo>): %q",
			ref,
		)
	}
	return Repo{Owner: owner, Name: name}, nil
}

type Repository struct {
	ID               string
	NameWithOwner    string
	ViewerPermission githubv4.RepositoryPermission
}

// CanWrite reports whether the viewer may create and edit issues, labels and
// milestones in the repository.
func (r *Repository) CanWrite() bool {
	switch r.ViewerPermission {
	case githubv4.RepositoryPermissionAdmin,
		githubv4.RepositoryPermissionMaintain,
		githubv4.RepositoryPermissionWrite:
		return true
	default:
		return false
	}
}

func (c *Client) Repository(ctx context.Context, repo Repo) (*Repository, error) {
	var query struct {
		Repository Repository `graphql:"repository(owner: $owner, name: $name)"`
	}
	err := c.query(ctx, &query, map[string]any{
		"owner": githubv4.String(repo.Owner),
		"name":  githubv4.String(repo.Name),
	})
	if err != nil {
		return nil, errors.WrapIff(err, "unable to fetch repository %s from GitHub", repo)
	}
	return &query.Repository, nil
}
