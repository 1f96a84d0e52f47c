// Package synchronizer converges the issues, milestones and labels of a
// destination repository toward those of a source repository.
//
// Each synchronizer fetches both collections, classifies them with
// reconcile.Compare and creates or updates destination records. The source
// always wins; nothing is ever deleted from the destination.
package synchronizer

import (
	"context"

	"emperror.dev/errors"
	"github.com/matomo-org/github-sync/internal/gh"
	"github.com/matomo-org/github-sync/internal/reconcile"
	"github.com/matomo-org/github-sync/internal/utils/colors"
)

// Remote is the subset of the GitHub client used by the synchronizers.
// Every write takes the credential explicitly; a nil credential must fail
// with gh.ErrAuthenticationRequired.
type Remote interface {
	Issues(ctx context.Context, repo gh.Repo, state gh.IssueState) ([]gh.Issue, error)
	Milestones(ctx context.Context, repo gh.Repo) ([]gh.Milestone, error)
	Labels(ctx context.Context, repo gh.Repo) ([]gh.Label, error)

	CreateIssue(ctx context.Context, cred *gh.Credential, repo gh.Repo, input gh.IssueInput) (*gh.Issue, error)
	UpdateIssue(ctx context.Context, cred *gh.Credential, repo gh.Repo, number int64, input gh.IssueInput) (*gh.Issue, error)
	CreateMilestone(ctx context.Context, cred *gh.Credential, repo gh.Repo, input gh.MilestoneInput) (*gh.Milestone, error)
	UpdateMilestone(ctx context.Context, cred *gh.Credential, repo gh.Repo, number int64, input gh.MilestoneInput) (*gh.Milestone, error)
	CreateLabel(ctx context.Context, cred *gh.Credential, repo gh.Repo, label gh.Label) error
	UpdateLabel(ctx context.Context, cred *gh.Credential, repo gh.Repo, name string, label gh.Label) error
}

var _ Remote = (*gh.Client)(nil)

// Output receives human-readable progress lines.
type Output interface {
	WriteLine(line string)
}

type Options struct {
	Remote Remote
	Output Output
	// Credential authorizes writes to the destination. When nil, every
	// create/update is reported as skipped and the run continues.
	Credential *gh.Credential
	// IssueState selects which source issues are synchronized (default open).
	// Destination issues are always fetched in every state so that closed
	// issues are recognized.
	IssueState gh.IssueState
}

type Kind string

const (
	KindLabels     Kind = "labels"
	KindMilestones Kind = "milestones"
	KindIssues     Kind = "issues"
)

// Synchronizer synchronizes one kind of record between two repositories.
type Synchronizer interface {
	Kind() Kind
	// Synchronize returns once every source record has been handled or a
	// non-recoverable error occurred. The result is non-nil whenever both
	// collections could be fetched, even if an error is returned.
	Synchronize(ctx context.Context, from, to gh.Repo) (*Result, error)
}

// New returns the synchronizer for the given kind.
func New(kind Kind, opts Options) (Synchronizer, error) {
	switch kind {
	case KindLabels:
		return NewLabelSynchronizer(opts), nil
	case KindMilestones:
		return NewMilestoneSynchronizer(opts), nil
	case KindIssues:
		return NewIssueSynchronizer(opts), nil
	default:
		return nil, errors.Errorf("unknown record kind %q", kind)
	}
}

// Result describes what a synchronize run did.
type Result struct {
	Kind Kind
	From gh.Repo
	To   gh.Repo
	reconcile.Summary

	Created     int
	Updated     int
	Skipped     int
	NotMigrated int
}

// run is the state of a single Synchronize call.
type run struct {
	out    Output
	result *Result
}

func newRun(kind Kind, from, to gh.Repo, out Output) *run {
	return &run{
		out:    out,
		result: &Result{Kind: kind, From: from, To: to},
	}
}

func (r *run) writeLine(line string) {
	r.out.WriteLine(line)
}

// apply performs a write against the destination and reports its outcome.
// A missing credential is reported as skipped and swallowed; every other
// error is returned and aborts the run.
func (r *run) apply(success string, counter *int, write func() error) error {
	err := write()
	switch {
	case err == nil:
		*counter++
		r.writeLine(colors.Success(success))
		return nil
	case errors.Is(err, gh.ErrAuthenticationRequired):
		r.result.Skipped++
		r.writeLine(colors.Failure("Skipped: ", err.Error()))
		return nil
	default:
		return err
	}
}
