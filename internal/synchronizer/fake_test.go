package synchronizer_test

import (
	"context"

	"emperror.dev/errors"
	"github.com/matomo-org/github-sync/internal/gh"
)

var (
	source = gh.Repo{Owner: "matomo-org", Name: "matomo"}
	dest   = gh.Repo{Owner: "matomo-org", Name: "plugin-foo"}
)

type issueWrite struct {
	Repo   gh.Repo
	Number int64
	Input  gh.IssueInput
}

type milestoneWrite struct {
	Repo   gh.Repo
	Number int64
	Input  gh.MilestoneInput
}

type labelWrite struct {
	Repo  gh.Repo
	Name  string
	Label gh.Label
}

// fakeRemote is an in-memory GitHub. Writes are applied to the stored
// collections so that a second synchronize run observes the first one.
type fakeRemote struct {
	issues     map[gh.Repo][]gh.Issue
	milestones map[gh.Repo][]gh.Milestone
	labels     map[gh.Repo][]gh.Label

	fetchErr error
	writeErr error

	issueStates map[gh.Repo]gh.IssueState

	createdIssues     []issueWrite
	updatedIssues     []issueWrite
	createdMilestones []milestoneWrite
	updatedMilestones []milestoneWrite
	createdLabels     []labelWrite
	updatedLabels     []labelWrite
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		issues:      map[gh.Repo][]gh.Issue{},
		milestones:  map[gh.Repo][]gh.Milestone{},
		labels:      map[gh.Repo][]gh.Label{},
		issueStates: map[gh.Repo]gh.IssueState{},
	}
}

func (f *fakeRemote) writes() int {
	return len(f.createdIssues) + len(f.updatedIssues) +
		len(f.createdMilestones) + len(f.updatedMilestones) +
		len(f.createdLabels) + len(f.updatedLabels)
}

func (f *fakeRemote) checkWrite(cred *gh.Credential) error {
	if cred == nil {
		return errors.WithStack(gh.ErrAuthenticationRequired)
	}
	return f.writeErr
}

func (f *fakeRemote) Issues(_ context.Context, repo gh.Repo, state gh.IssueState) ([]gh.Issue, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	f.issueStates[repo] = state
	return append([]gh.Issue(nil), f.issues[repo]...), nil
}

func (f *fakeRemote) Milestones(_ context.Context, repo gh.Repo) ([]gh.Milestone, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return append([]gh.Milestone(nil), f.milestones[repo]...), nil
}

func (f *fakeRemote) Labels(_ context.Context, repo gh.Repo) ([]gh.Label, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return append([]gh.Label(nil), f.labels[repo]...), nil
}

func (f *fakeRemote) CreateIssue(_ context.Context, cred *gh.Credential, repo gh.Repo, input gh.IssueInput) (*gh.Issue, error) {
	if err := f.checkWrite(cred); err != nil {
		return nil, err
	}
	f.createdIssues = append(f.createdIssues, issueWrite{Repo: repo, Input: input})
	issue := gh.Issue{
		Number: int64(len(f.issues[repo]) + 1),
		Title:  input.Title,
		Body:   input.Body,
	}
	f.issues[repo] = append(f.issues[repo], issue)
	return &issue, nil
}

func (f *fakeRemote) UpdateIssue(_ context.Context, cred *gh.Credential, repo gh.Repo, number int64, input gh.IssueInput) (*gh.Issue, error) {
	if err := f.checkWrite(cred); err != nil {
		return nil, err
	}
	f.updatedIssues = append(f.updatedIssues, issueWrite{Repo: repo, Number: number, Input: input})
	for i := range f.issues[repo] {
		if f.issues[repo][i].Number == number {
			f.issues[repo][i].Title = input.Title
			f.issues[repo][i].Body = input.Body
			return &f.issues[repo][i], nil
		}
	}
	return nil, errors.Errorf("no issue #%d", number)
}

func (f *fakeRemote) CreateMilestone(_ context.Context, cred *gh.Credential, repo gh.Repo, input gh.MilestoneInput) (*gh.Milestone, error) {
	if err := f.checkWrite(cred); err != nil {
		return nil, err
	}
	f.createdMilestones = append(f.createdMilestones, milestoneWrite{Repo: repo, Input: input})
	milestone := gh.Milestone{
		Number:      int64(len(f.milestones[repo]) + 1),
		Title:       input.Title,
		Description: input.Description,
		State:       input.State,
		DueOn:       input.DueOn,
	}
	f.milestones[repo] = append(f.milestones[repo], milestone)
	return &milestone, nil
}

func (f *fakeRemote) UpdateMilestone(_ context.Context, cred *gh.Credential, repo gh.Repo, number int64, input gh.MilestoneInput) (*gh.Milestone, error) {
	if err := f.checkWrite(cred); err != nil {
		return nil, err
	}
	f.updatedMilestones = append(f.updatedMilestones, milestoneWrite{Repo: repo, Number: number, Input: input})
	for i := range f.milestones[repo] {
		m := &f.milestones[repo][i]
		if m.Number == number {
			m.Title, m.Description, m.State, m.DueOn = input.Title, input.Description, input.State, input.DueOn
			return m, nil
		}
	}
	return nil, errors.Errorf("no milestone #%d", number)
}

func (f *fakeRemote) CreateLabel(_ context.Context, cred *gh.Credential, repo gh.Repo, label gh.Label) error {
	if err := f.checkWrite(cred); err != nil {
		return err
	}
	f.createdLabels = append(f.createdLabels, labelWrite{Repo: repo, Label: label})
	f.labels[repo] = append(f.labels[repo], label)
	return nil
}

func (f *fakeRemote) UpdateLabel(_ context.Context, cred *gh.Credential, repo gh.Repo, name string, label gh.Label) error {
	if err := f.checkWrite(cred); err != nil {
		return err
	}
	f.updatedLabels = append(f.updatedLabels, labelWrite{Repo: repo, Name: name, Label: label})
	for i := range f.labels[repo] {
		if f.labels[repo][i].Name == name {
			f.labels[repo][i] = label
			return nil
		}
	}
	return errors.Errorf("no label %q", name)
}
