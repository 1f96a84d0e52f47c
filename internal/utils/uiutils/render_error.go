package uiutils

import (
	"fmt"

	"emperror.dev/errors"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/matomo-org/github-sync/internal/gh"
)

const noGitHubToken = `# ERROR: No GitHub Token

` + "`github-sync`" + ` needs a GitHub API token to create or update labels, milestones and issues,
to delete labels and to expand repository patterns such as ` + "`owner/plugin-*`" + `.
Reading public repositories works without one.

Provide a token in one of these ways (the first one found wins):

1. Pass ` + "`--token <token>`" + ` on the command line.
2. Set the ` + "`GITHUB_SYNC_TOKEN`" + ` or ` + "`GITHUB_TOKEN`" + ` environment variable.
3. Set ` + "`github.token`" + ` in ` + "`~/.config/github-sync/config.yaml`" + `.

A [personal access token](https://github.com/settings/tokens) needs write access to the
issues of every destination repository.
`

const repositoryNotFound = "The repository does not exist, or the token cannot access it. " +
	"Run `github-sync auth status <repo>` to check.\n"

// RenderError formats err for the terminal. Errors caused by a missing token
// are rendered as a markdown help page.
func RenderError(err error) string {
	var style string
	if lipgloss.HasDarkBackground() {
		style = styles.DarkStyle
	} else {
		style = styles.LightStyle
	}
	if errors.Is(err, gh.ErrAuthenticationRequired) {
		if out, rerr := glamour.Render(noGitHubToken, style); rerr == nil {
			return out
		}
		// If there's an error, fallback to the plaintext message.
	}
	msg := fmt.Sprintf("error: %s\n", err)
	if gh.IsNotFound(err) {
		msg += repositoryNotFound
	}
	return msg
}
