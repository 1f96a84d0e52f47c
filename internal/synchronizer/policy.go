package synchronizer

import (
	"strings"
	"time"

	"github.com/matomo-org/github-sync/internal/gh"
	"github.com/matomo-org/github-sync/internal/reconcile"
)

// IssuePolicy matches issues by title, ignoring case, and considers them
// different when the title or body differ.
func IssuePolicy() reconcile.Policy[gh.Issue] {
	return reconcile.Policy[gh.Issue]{
		SameIdentity: func(a, b gh.Issue) bool {
			return strings.EqualFold(a.Title, b.Title)
		},
		IsDifferent: func(a, b gh.Issue) bool {
			return a.Title != b.Title || a.Body != b.Body
		},
	}
}

// MilestonePolicy matches milestones by title, ignoring case, and considers
// them different when any of title, description, state or due date differ.
func MilestonePolicy() reconcile.Policy[gh.Milestone] {
	return reconcile.Policy[gh.Milestone]{
		SameIdentity: func(a, b gh.Milestone) bool {
			return strings.EqualFold(a.Title, b.Title)
		},
		IsDifferent: func(a, b gh.Milestone) bool {
			return a.Title != b.Title ||
				a.Description != b.Description ||
				a.State != b.State ||
				!sameTime(a.DueOn, b.DueOn)
		},
	}
}

// LabelPolicy matches labels by exact name and considers them different when
// their colors differ.
func LabelPolicy() reconcile.Policy[gh.Label] {
	return reconcile.Policy[gh.Label]{
		SameIdentity: func(a, b gh.Label) bool {
			return a.Name == b.Name
		},
		IsDifferent: func(a, b gh.Label) bool {
			return gh.NormalizeColor(a.Color) != gh.NormalizeColor(b.Color)
		},
	}
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
