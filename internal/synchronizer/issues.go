package synchronizer

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/matomo-org/github-sync/internal/gh"
	"github.com/matomo-org/github-sync/internal/reconcile"
	"github.com/matomo-org/github-sync/internal/utils/colors"
	"github.com/matomo-org/github-sync/internal/utils/logutils"
	"github.com/sirupsen/logrus"
)

// Issues carrying one of these labels (compared case-insensitively) are not
// created in the destination.
var excludedLabels = []string{"ios", "android", "parse"}

// IsMigrationEligible reports whether a missing issue may be created in the
// destination repository.
func IsMigrationEligible(issue gh.Issue) bool {
	for _, label := range issue.Labels {
		if slices.Contains(excludedLabels, strings.ToLower(label.Name)) {
			return false
		}
	}
	return true
}

// ResolveMilestoneNumber returns the number of the first milestone in dest
// whose title equals ref's title, or nil if ref is nil or nothing matches.
func ResolveMilestoneNumber(dest []gh.Milestone, ref *gh.MilestoneRef) *int64 {
	if ref == nil {
		return nil
	}
	for _, milestone := range dest {
		if milestone.Title == ref.Title {
			return gh.Ptr(milestone.Number)
		}
	}
	return nil
}

type IssueSynchronizer struct {
	remote Remote
	out    Output
	cred   *gh.Credential
	state  gh.IssueState
}

func NewIssueSynchronizer(opts Options) *IssueSynchronizer {
	state := opts.IssueState
	if state == "" {
		state = gh.IssueStateOpen
	}
	return &IssueSynchronizer{
		remote: opts.Remote,
		out:    opts.Output,
		cred:   opts.Credential,
		state:  state,
	}
}

func (s *IssueSynchronizer) Kind() Kind {
	return KindIssues
}

func (s *IssueSynchronizer) Synchronize(ctx context.Context, from, to gh.Repo) (*Result, error) {
	fromIssues, err := s.remote.Issues(ctx, from, s.state)
	if err != nil {
		return nil, err
	}
	toIssues, err := s.remote.Issues(ctx, to, gh.IssueStateAll)
	if err != nil {
		return nil, err
	}
	toMilestones, err := s.remote.Milestones(ctx, to)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"from":          from,
		"to":            to,
		"state":         s.state,
		"from_issues":   len(fromIssues),
		"to_issues":     len(toIssues),
		"to_milestones": len(toMilestones),
	}).Debug("fetched issues")

	r := newRun(KindIssues, from, to, s.out)
	summary, err := reconcile.Compare(fromIssues, toIssues, IssuePolicy(), reconcile.Reactions[gh.Issue]{
		OnDifferent: func(src, dst gh.Issue) error {
			r.writeLine(fmt.Sprintf(
				"Same issue but different title/body for %s (%q -> %q, %q -> %q)",
				colors.UserInput(fmt.Sprintf("#%d", dst.Number)),
				dst.Title, src.Title,
				logutils.Truncate(dst.Body, 40), logutils.Truncate(src.Body, 40),
			))
			input := issueInput(src, toMilestones)
			return r.apply("Issue updated", &r.result.Updated, func() error {
				_, err := s.remote.UpdateIssue(ctx, s.cred, to, dst.Number, input)
				return err
			})
		},
		OnMissing: func(src gh.Issue) error {
			r.writeLine(fmt.Sprintf("Missing issue %s from %s", colors.UserInput(src.Title), to))
			if !IsMigrationEligible(src) {
				r.result.NotMigrated++
				r.writeLine(colors.Warning("Issue not migrated"))
				return nil
			}
			input := issueInput(src, toMilestones)
			return r.apply("Issue created", &r.result.Created, func() error {
				_, err := s.remote.CreateIssue(ctx, s.cred, to, input)
				return err
			})
		},
	})
	r.result.Summary = summary
	return r.result, err
}

func issueInput(src gh.Issue, toMilestones []gh.Milestone) gh.IssueInput {
	return gh.IssueInput{
		Title:     src.Title,
		Body:      src.Body,
		Milestone: ResolveMilestoneNumber(toMilestones, src.Milestone),
		Labels:    src.LabelNames(),
	}
}
