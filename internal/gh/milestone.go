package gh

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"emperror.dev/errors"
)

type MilestoneState string

const (
	MilestoneStateOpen   MilestoneState = "open"
	MilestoneStateClosed MilestoneState = "closed"
)

type Milestone struct {
	Number      int64          `json:"number"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	State       MilestoneState `json:"state"`
	DueOn       *time.Time     `json:"due_on"`
}

type MilestoneInput struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	State       MilestoneState `json:"state,omitempty"`
	// A nil due date is sent as null, which clears it on update.
	DueOn *time.Time `json:"due_on"`
}

// Milestones returns all milestones of the repository, open and closed.
// Closed milestones are included so that they are recognized as existing
// instead of being created again.
func (c *Client) Milestones(ctx context.Context, repo Repo) ([]Milestone, error) {
	endpoint := repo.path("milestones") +
		"?state=all&sort=due_on&direction=asc&per_page=" + strconv.Itoa(perPage)
	milestones, err := list[Milestone](ctx, c, endpoint)
	if err != nil {
		return nil, errors.WrapIff(err, "failed to fetch milestones from repository %s", repo)
	}
	return milestones, nil
}

func (c *Client) CreateMilestone(
	ctx context.Context,
	cred *Credential,
	repo Repo,
	input MilestoneInput,
) (*Milestone, error) {
	var milestone Milestone
	if err := c.write(ctx, cred, http.MethodPost, repo.path("milestones"), input, &milestone); err != nil {
		return nil, errors.WrapIff(err, "failed to create milestone %q in %s", input.Title, repo)
	}
	return &milestone, nil
}

func (c *Client) UpdateMilestone(
	ctx context.Context,
	cred *Credential,
	repo Repo,
	number int64,
	input MilestoneInput,
) (*Milestone, error) {
	var milestone Milestone
	endpoint := repo.path("milestones", strconv.FormatInt(number, 10))
	if err := c.write(ctx, cred, http.MethodPatch, endpoint, input, &milestone); err != nil {
		return nil, errors.WrapIff(err, "failed to update milestone #%d in %s", number, repo)
	}
	return &milestone, nil
}
