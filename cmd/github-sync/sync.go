package main

import (
	"context"
	"fmt"
	"io"

	"emperror.dev/errors"
	"github.com/matomo-org/github-sync/internal/gh"
	"github.com/matomo-org/github-sync/internal/output"
	"github.com/matomo-org/github-sync/internal/repos"
	"github.com/matomo-org/github-sync/internal/synchronizer"
	"github.com/matomo-org/github-sync/internal/utils/colors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thediveo/enumflag/v2"
	"golang.org/x/sync/errgroup"
)

type issueState int

const (
	issueStateOpen issueState = iota
	issueStateClosed
	issueStateAll
)

var issueStateIDs = map[issueState][]string{
	issueStateOpen:   {string(gh.IssueStateOpen)},
	issueStateClosed: {string(gh.IssueStateClosed)},
	issueStateAll:    {string(gh.IssueStateAll)},
}

func (s issueState) ghState() gh.IssueState {
	return gh.IssueState(issueStateIDs[s][0])
}

var syncFlags struct {
	State issueState
}

const syncLong = `Synchronize %s from the source repository to each destination.

Records missing from a destination are created and records that differ are
updated to match the source. Nothing is ever deleted.

Destinations are given as owner/name, as git remote URLs, or as patterns such
as "matomo-org/plugin-*" that are matched against every repository the
authenticated user has access to.`

func newSyncCmd(name string, what string, kinds ...synchronizer.Kind) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <from> <to>...",
		Short: "synchronize " + what,
		Long:  fmt.Sprintf(syncLong, what),
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd.Context(), cmd.OutOrStdout(), kinds, args[0], args[1:])
		},
	}
}

var (
	labelsCmd     = newSyncCmd("labels", "labels", synchronizer.KindLabels)
	milestonesCmd = newSyncCmd("milestones", "milestones", synchronizer.KindMilestones)
	issuesCmd     = newSyncCmd("issues", "issues", synchronizer.KindIssues)
	// Milestones go before issues so that issue milestones can be resolved.
	allCmd = newSyncCmd(
		"all", "labels, milestones and issues",
		synchronizer.KindLabels, synchronizer.KindMilestones, synchronizer.KindIssues,
	)
)

func addStateFlag(flags *pflag.FlagSet) {
	flags.Var(
		enumflag.New(&syncFlags.State, "state", issueStateIDs, enumflag.EnumCaseInsensitive),
		"state",
		"state of the source issues to synchronize: open, closed or all",
	)
}

func init() {
	addStateFlag(issuesCmd.Flags())
	addStateFlag(allCmd.Flags())
}

func runSync(ctx context.Context, w io.Writer, kinds []synchronizer.Kind, fromArg string, toArgs []string) error {
	from, err := gh.ParseRepo(fromArg)
	if err != nil {
		return err
	}
	client, cred := newClient(ctx)
	dests, err := repos.Expand(ctx, client, toArgs, from)
	if err != nil {
		return err
	}
	if len(dests) == 0 {
		return errors.Errorf("no destination repositories besides the source %s", from)
	}
	if cred == nil {
		_, _ = fmt.Fprintln(w, colors.Warning(
			"No GitHub token configured: differences will be reported but not applied.",
		))
	}

	out := output.NewWriter(w)
	results := make([][]*synchronizer.Result, len(dests))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(rootFlags.Parallel)
	for i, to := range dests {
		i, to := i, to
		g.Go(func() error {
			sink := out
			if len(dests) > 1 {
				sink = out.WithPrefix(colors.Faint("[", to, "] "))
			}
			for _, kind := range kinds {
				s, err := synchronizer.New(kind, synchronizer.Options{
					Remote:     client,
					Output:     sink,
					Credential: cred,
					IssueState: syncFlags.State.ghState(),
				})
				if err != nil {
					return err
				}
				sink.WriteLine(colors.CliCmd("Synchronizing ", kind, " from ", from, " to ", to))
				res, err := s.Synchronize(ctx, from, to)
				if res != nil {
					results[i] = append(results[i], res)
					logrus.WithFields(logrus.Fields{
						"kind":     kind,
						"to":       to,
						"matching": res.Matching,
						"created":  res.Created,
						"updated":  res.Updated,
						"skipped":  res.Skipped,
					}).Debug("synchronized repository")
				}
				if err != nil {
					return err
				}
			}
			return nil
		})
	}
	err = g.Wait()

	if rootFlags.Summary {
		var all []*synchronizer.Result
		for _, r := range results {
			all = append(all, r...)
		}
		if serr := output.WriteSummary(w, all); serr != nil && err == nil {
			err = serr
		}
	}
	return err
}
