// Package repos expands destination arguments into repositories.
package repos

import (
	"context"
	"slices"
	"strings"

	"emperror.dev/errors"
	"github.com/gobwas/glob"
	"github.com/matomo-org/github-sync/internal/gh"
	"github.com/sirupsen/logrus"
)

// Lister lists the repositories visible to the authenticated user.
type Lister interface {
	ViewerRepositories(ctx context.Context) ([]string, error)
}

var _ Lister = (*gh.Client)(nil)

// IsPattern reports whether the argument is a pattern rather than a single
// repository.
func IsPattern(arg string) bool {
	return strings.ContainsAny(arg, "*?[{")
}

// Expand turns the destination arguments into a list of repositories.
//
// Plain arguments are parsed with gh.ParseRepo. Patterns such as
// "matomo-org/plugin-*" are matched against the repositories of the
// authenticated user; the list is fetched at most once. The result keeps the
// argument order, lists pattern matches sorted by name, and contains no
// duplicates. The exclude repository (usually the sync source) is never
// returned.
func Expand(ctx context.Context, lister Lister, args []string, exclude gh.Repo) ([]gh.Repo, error) {
	var (
		visible []string
		fetched bool
		result  []gh.Repo
	)
	// GitHub repository names are case-insensitive.
	seen := map[string]bool{strings.ToLower(exclude.String()): true}
	add := func(repo gh.Repo) {
		key := strings.ToLower(repo.String())
		if seen[key] {
			return
		}
		seen[key] = true
		result = append(result, repo)
	}

	for _, arg := range args {
		if !IsPattern(arg) {
			repo, err := gh.ParseRepo(arg)
			if err != nil {
				return nil, err
			}
			add(repo)
			continue
		}

		g, err := glob.Compile(arg)
		if err != nil {
			return nil, errors.WrapIff(err, "invalid repository pattern %q", arg)
		}
		if !fetched {
			visible, err = lister.ViewerRepositories(ctx)
			if err != nil {
				return nil, errors.WrapIff(err, "failed to expand repository pattern %q", arg)
			}
			slices.Sort(visible)
			fetched = true
		}

		var matches int
		for _, name := range visible {
			if !g.Match(name) {
				continue
			}
			repo, err := gh.ParseRepo(name)
			if err != nil {
				return nil, err
			}
			matches++
			add(repo)
		}
		logrus.WithFields(logrus.Fields{
			"pattern": arg,
			"matches": matches,
		}).Debug("expanded repository pattern")
		if matches == 0 {
			return nil, errors.Errorf("no repository matches %q", arg)
		}
	}
	return result, nil
}
