// Package reconcile compares a source collection of records against a
// destination collection and reports, for every source record, whether it is
// missing from the destination, present but different, or matching.
//
// Reconciliation is one-directional: destination records without a source
// counterpart are never visited.
package reconcile

// Policy decides how records of one kind are matched and compared.
type Policy[T any] struct {
	// SameIdentity reports whether a (from the source) and b (from the
	// destination) are the same logical record, regardless of content.
	SameIdentity func(a, b T) bool
	// IsDifferent reports whether two records with the same identity have
	// diverging content.
	IsDifferent func(a, b T) bool
}

// Reactions are invoked while comparing. Either may be nil.
type Reactions[T any] struct {
	// OnMissing is called for a source record with no destination counterpart.
	OnMissing func(src T) error
	// OnDifferent is called with a source record and the destination record
	// it matched when their content differs.
	OnDifferent func(src, dst T) error
}

// Summary counts how source records were classified.
type Summary struct {
	Missing   int
	Different int
	Matching  int
}

func (s Summary) Total() int {
	return s.Missing + s.Different + s.Matching
}

func (s *Summary) Add(other Summary) {
	s.Missing += other.Missing
	s.Different += other.Different
	s.Matching += other.Matching
}

// Compare classifies every source record, in source order, and invokes the
// matching reaction synchronously before moving on to the next record.
//
// Each source record is matched against the first destination record that
// satisfies policy.SameIdentity, scanning the whole destination collection
// (neither collection needs to be sorted). If a reaction returns an error,
// Compare stops and returns it along with the summary of the records
// classified so far, including the one whose reaction failed.
func Compare[T any](source, dest []T, policy Policy[T], reactions Reactions[T]) (Summary, error) {
	var summary Summary
	for _, src := range source {
		dst, found := findFirst(dest, func(d T) bool {
			return policy.SameIdentity(src, d)
		})
		switch {
		case !found:
			summary.Missing++
			if reactions.OnMissing != nil {
				if err := reactions.OnMissing(src); err != nil {
					return summary, err
				}
			}
		case policy.IsDifferent(src, dst):
			summary.Different++
			if reactions.OnDifferent != nil {
				if err := reactions.OnDifferent(src, dst); err != nil {
					return summary, err
				}
			}
		default:
			summary.Matching++
		}
	}
	return summary, nil
}

func findFirst[T any](items []T, pred func(T) bool) (T, bool) {
	for _, item := range items {
		if pred(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}
