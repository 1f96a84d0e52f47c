package synchronizer

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/matomo-org/github-sync/internal/gh"
	"github.com/matomo-org/github-sync/internal/reconcile"
	"github.com/matomo-org/github-sync/internal/utils/colors"
	"github.com/sirupsen/logrus"
)

type MilestoneSynchronizer struct {
	remote Remote
	out    Output
	cred   *gh.Credential
}

func NewMilestoneSynchronizer(opts Options) *MilestoneSynchronizer {
	return &MilestoneSynchronizer{
		remote: opts.Remote,
		out:    opts.Output,
		cred:   opts.Credential,
	}
}

func (s *MilestoneSynchronizer) Kind() Kind {
	return KindMilestones
}

func (s *MilestoneSynchronizer) Synchronize(ctx context.Context, from, to gh.Repo) (*Result, error) {
	fromMilestones, err := s.remote.Milestones(ctx, from)
	if err != nil {
		return nil, err
	}
	toMilestones, err := s.remote.Milestones(ctx, to)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"from":            from,
		"to":              to,
		"from_milestones": len(fromMilestones),
		"to_milestones":   len(toMilestones),
	}).Debug("fetched milestones")

	r := newRun(KindMilestones, from, to, s.out)
	summary, err := reconcile.Compare(fromMilestones, toMilestones, MilestonePolicy(), reconcile.Reactions[gh.Milestone]{
		OnDifferent: func(src, dst gh.Milestone) error {
			r.writeLine(fmt.Sprintf("Same milestone %s", colors.UserInput(dst.Title)))
			return r.apply("Milestone updated", &r.result.Updated, func() error {
				_, err := s.remote.UpdateMilestone(ctx, s.cred, to, dst.Number, milestoneInput(src))
				return err
			})
		},
		OnMissing: func(src gh.Milestone) error {
			r.writeLine(fmt.Sprintf(
				"Missing milestone %s%s from %s",
				colors.UserInput(src.Title), describeDueOn(src), to,
			))
			return r.apply("Milestone created", &r.result.Created, func() error {
				_, err := s.remote.CreateMilestone(ctx, s.cred, to, milestoneInput(src))
				return err
			})
		},
	})
	r.result.Summary = summary
	return r.result, err
}

func milestoneInput(src gh.Milestone) gh.MilestoneInput {
	return gh.MilestoneInput{
		Title:       src.Title,
		Description: src.Description,
		State:       src.State,
		DueOn:       src.DueOn,
	}
}

func describeDueOn(m gh.Milestone) string {
	if m.DueOn == nil {
		return ""
	}
	return colors.Faint(" (due " + humanize.Time(*m.DueOn) + ")")
}
