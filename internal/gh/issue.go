package gh

import (
	"context"
	"net/http"
	"strconv"

	"emperror.dev/errors"
)

type IssueState string

const (
	IssueStateOpen   IssueState = "open"
	IssueStateClosed IssueState = "closed"
	IssueStateAll    IssueState = "all"
)

type Issue struct {
	Number    int64         `json:"number"`
	Title     string        `json:"title"`
	Body      string        `json:"body"`
	State     string        `json:"state"`
	Milestone *MilestoneRef `json:"milestone"`
	Labels    []Label       `json:"labels"`

	// Set by the REST API when the "issue" is actually a pull request.
	PullRequest *struct{} `json:"pull_request,omitempty"`
}

// MilestoneRef is the milestone attached to an issue. Milestone numbers are
// only meaningful within the repository they come from; across repositories
// milestones are matched by title.
type MilestoneRef struct {
	Number int64  `json:"number"`
	Title  string `json:"title"`
}

// LabelNames returns the names of the issue's labels. The result is never nil
// so that it serializes as an empty list.
func (i *Issue) LabelNames() []string {
	names := make([]string, 0, len(i.Labels))
	for _, label := range i.Labels {
		names = append(names, label.Name)
	}
	return names
}

type IssueInput struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	// Milestone is the milestone number in the target repository. Nil omits
	// the field, so an update never clears an existing milestone.
	Milestone *int64   `json:"milestone,omitempty"`
	Labels    []string `json:"labels"`
}

// Issues returns the issues (not pull requests) of the repository in the given
// state, oldest first.
func (c *Client) Issues(ctx context.Context, repo Repo, state IssueState) ([]Issue, error) {
	if state == "" {
		state = IssueStateOpen
	}
	endpoint := repo.path("issues") +
		"?state=" + string(state) +
		"&sort=created&direction=asc&per_page=" + strconv.Itoa(perPage)
	all, err := list[Issue](ctx, c, endpoint)
	if err != nil {
		return nil, errors.WrapIff(err, "failed to fetch issues from repository %s", repo)
	}
	issues := make([]Issue, 0, len(all))
	for _, issue := range all {
		if issue.PullRequest != nil {
			continue
		}
		for i := range issue.Labels {
			issue.Labels[i].Color = NormalizeColor(issue.Labels[i].Color)
		}
		issues = append(issues, issue)
	}
	return issues, nil
}

func (c *Client) CreateIssue(ctx context.Context, cred *Credential, repo Repo, input IssueInput) (*Issue, error) {
	var issue Issue
	if err := c.write(ctx, cred, http.MethodPost, repo.path("issues"), input, &issue); err != nil {
		return nil, errors.WrapIff(err, "failed to create issue %q in %s", input.Title, repo)
	}
	return &issue, nil
}

func (c *Client) UpdateIssue(
	ctx context.Context,
	cred *Credential,
	repo Repo,
	number int64,
	input IssueInput,
) (*Issue, error) {
	var issue Issue
	endpoint := repo.path("issues", strconv.FormatInt(number, 10))
	if err := c.write(ctx, cred, http.MethodPatch, endpoint, input, &issue); err != nil {
		return nil, errors.WrapIff(err, "failed to update issue #%d in %s", number, repo)
	}
	return &issue, nil
}
