package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"emperror.dev/errors"
	"github.com/kr/text"
	"github.com/matomo-org/github-sync/internal/config"
	"github.com/matomo-org/github-sync/internal/utils/uiutils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootFlags struct {
	Debug    bool
	Token    string
	APIURL   string
	Parallel int
	Summary  bool
}

var RootCmd = &cobra.Command{
	Use:   "github-sync",
	Short: "Synchronize labels, milestones and issues between GitHub repositories",

	// Don't automatically print errors or usage information (we handle that ourselves).
	// Cobra still prints usage if you return cmd.Usage() from RunE.
	SilenceErrors: true,
	SilenceUsage:  true,

	// Don't show "completion" command in help menu
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},

	// Run setup before invoking any child commands.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if rootFlags.Debug {
			logrus.SetLevel(logrus.DebugLevel)
			logrus.WithField("github_sync_version", config.Version).Debug("enabled debug logging")
		}

		// Note: this only returns an error if config exists and it can't be
		// read/parsed. It doesn't return an error if no config file exists.
		didLoadConfig, err := config.Load(nil)
		if err != nil {
			return errors.Wrap(err, "failed to load configuration")
		}
		if didLoadConfig {
			logrus.Debug("loaded configuration")
		} else {
			logrus.Debug("no configuration found")
		}

		// Flags take precedence over the config file and the environment.
		if rootFlags.Token != "" {
			config.GitHubSync.GitHub.Token = rootFlags.Token
		}
		if rootFlags.APIURL != "" {
			config.GitHubSync.GitHub.APIURL = rootFlags.APIURL
		}
		if rootFlags.Parallel < 1 {
			return errors.Errorf("--parallel must be at least 1, got %d", rootFlags.Parallel)
		}
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVar(
		&rootFlags.Debug, "debug", false,
		"enable verbose debug logging",
	)
	RootCmd.PersistentFlags().StringVar(
		&rootFlags.Token, "token", "",
		"GitHub API token (defaults to $GITHUB_SYNC_TOKEN, $GITHUB_TOKEN or the config file)",
	)
	RootCmd.PersistentFlags().StringVar(
		&rootFlags.APIURL, "api-url", "",
		"GitHub REST API root, e.g. https://github.example.com/api/v3 for GitHub Enterprise",
	)
	RootCmd.PersistentFlags().IntVarP(
		&rootFlags.Parallel, "parallel", "p", 1,
		"number of destination repositories to synchronize concurrently",
	)
	RootCmd.PersistentFlags().BoolVar(
		&rootFlags.Summary, "summary", false,
		"print a summary table after synchronizing",
	)
	RootCmd.AddCommand(
		labelsCmd,
		milestonesCmd,
		issuesCmd,
		allCmd,
		labelCmd,
		authCmd,
		versionCmd,
	)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := RootCmd.ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}

	var exitSilently errExitSilently
	if errors.As(err, &exitSilently) {
		os.Exit(exitSilently.ExitCode)
	}

	// In debug mode, show more detailed information about the error
	// (including the stack trace).
	if rootFlags.Debug {
		stackTrace := fmt.Sprintf("%+v", err)
		_, _ = fmt.Fprintf(os.Stderr, "error: %s\n%s\n", err, text.Indent(stackTrace, "\t"))
	} else {
		_, _ = fmt.Fprint(os.Stderr, uiutils.RenderError(err))
	}
	os.Exit(1)
}
