package main

import (
	"fmt"

	"emperror.dev/errors"
	"github.com/matomo-org/github-sync/internal/gh"
	"github.com/matomo-org/github-sync/internal/utils/colors"
	"github.com/matomo-org/github-sync/internal/utils/uiutils"
	"github.com/spf13/cobra"
)

var labelCmd = &cobra.Command{
	Use:   "label",
	Short: "Manage the labels of a repository",
}

var labelDeleteFlags struct {
	Yes bool
}

var labelDeleteCmd = &cobra.Command{
	Use:   "delete <repo> <label>",
	Short: "delete a label from a repository",
	Long: `Delete a label from a repository.

Synchronizing never deletes labels. Use this to remove labels from a
destination repository that are not wanted there.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		repo, err := gh.ParseRepo(args[0])
		if err != nil {
			return err
		}
		name := args[1]

		client, cred := newClient(ctx)
		if cred == nil {
			return gh.ErrAuthenticationRequired
		}

		if !labelDeleteFlags.Yes {
			ok, err := uiutils.Confirm(fmt.Sprintf("Delete label %q from %s?", name, repo))
			if errors.Is(err, uiutils.ErrNotInteractive) {
				return errors.WrapIf(err, "use --yes to delete without confirmation")
			}
			if err != nil {
				return err
			}
			if !ok {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), colors.Warning("Aborted."))
				return errExitSilently{ExitCode: 1}
			}
		}

		if err := client.DeleteLabel(ctx, cred, repo, name); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), colors.Success("Label deleted: ", name))
		return nil
	},
}

func init() {
	labelDeleteCmd.Flags().BoolVarP(
		&labelDeleteFlags.Yes, "yes", "y", false,
		"delete without asking for confirmation",
	)
	labelCmd.AddCommand(labelDeleteCmd)
}
