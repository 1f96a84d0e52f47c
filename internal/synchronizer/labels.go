package synchronizer

import (
	"context"
	"fmt"

	"github.com/matomo-org/github-sync/internal/gh"
	"github.com/matomo-org/github-sync/internal/reconcile"
	"github.com/matomo-org/github-sync/internal/utils/colors"
	"github.com/sirupsen/logrus"
)

type LabelSynchronizer struct {
	remote Remote
	out    Output
	cred   *gh.Credential
}

func NewLabelSynchronizer(opts Options) *LabelSynchronizer {
	return &LabelSynchronizer{
		remote: opts.Remote,
		out:    opts.Output,
		cred:   opts.Credential,
	}
}

func (s *LabelSynchronizer) Kind() Kind {
	return KindLabels
}

func (s *LabelSynchronizer) Synchronize(ctx context.Context, from, to gh.Repo) (*Result, error) {
	fromLabels, err := s.remote.Labels(ctx, from)
	if err != nil {
		return nil, err
	}
	toLabels, err := s.remote.Labels(ctx, to)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"from":        from,
		"to":          to,
		"from_labels": len(fromLabels),
		"to_labels":   len(toLabels),
	}).Debug("fetched labels")

	r := newRun(KindLabels, from, to, s.out)
	summary, err := reconcile.Compare(fromLabels, toLabels, LabelPolicy(), reconcile.Reactions[gh.Label]{
		OnDifferent: func(src, dst gh.Label) error {
			r.writeLine(fmt.Sprintf(
				"Same label %s but different color (#%s -> #%s)",
				colors.UserInput(dst.Name), dst.Color, gh.NormalizeColor(src.Color),
			))
			return r.apply("Label updated", &r.result.Updated, func() error {
				return s.remote.UpdateLabel(ctx, s.cred, to, dst.Name, src)
			})
		},
		OnMissing: func(src gh.Label) error {
			r.writeLine(fmt.Sprintf("Missing label %s from %s", colors.UserInput(src.Name), to))
			return r.apply("Label created", &r.result.Created, func() error {
				return s.remote.CreateLabel(ctx, s.cred, to, src)
			})
		},
	})
	r.result.Summary = summary
	return r.result, err
}
