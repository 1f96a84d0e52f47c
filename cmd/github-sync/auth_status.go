package main

import (
	"fmt"

	"github.com/matomo-org/github-sync/internal/gh"
	"github.com/matomo-org/github-sync/internal/utils/colors"
	"github.com/matomo-org/github-sync/internal/utils/uiutils"
	"github.com/spf13/cobra"
)

var authStatusCmd = &cobra.Command{
	Use:   "status [repo]...",
	Short: "check auth status and write access to repositories",
	Long: `Check that the configured GitHub token is valid.

Any repositories given as arguments are checked for write access, which is
needed to create and update labels, milestones and issues.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		stderr := cmd.ErrOrStderr()

		repos := make([]gh.Repo, 0, len(args))
		for _, arg := range args {
			repo, err := gh.ParseRepo(arg)
			if err != nil {
				return err
			}
			repos = append(repos, repo)
		}

		client, cred := newClient(ctx)
		if cred == nil {
			_, _ = fmt.Fprint(stderr, uiutils.RenderError(gh.ErrAuthenticationRequired))
			return errExitSilently{ExitCode: 1}
		}

		viewer, err := client.Viewer(ctx)
		if err != nil {
			if gh.IsHTTPUnauthorized(err) {
				_, _ = fmt.Fprint(stderr, colors.Failure(
					"You are not logged in. Please verify that your API token is correct.\n",
				))
				return errExitSilently{ExitCode: 1}
			}
			return err
		}
		_, _ = fmt.Fprint(stderr, "Logged in as ", colors.UserInput(viewer.Login), ".\n")

		exitCode := 0
		for _, repo := range repos {
			r, err := client.Repository(ctx, repo)
			if err != nil {
				return err
			}
			if r.CanWrite() {
				_, _ = fmt.Fprint(stderr, colors.Success("  ✓ "), "write access to ", colors.UserInput(repo), "\n")
				continue
			}
			exitCode = 1
			_, _ = fmt.Fprint(stderr,
				colors.Failure("  ✗ "), "no write access to ", colors.UserInput(repo),
				colors.Faint(" (permission: ", r.ViewerPermission, ")"), "\n",
			)
		}
		if exitCode != 0 {
			return errExitSilently{ExitCode: exitCode}
		}
		return nil
	},
}
