package output

import (
	"io"
	"strconv"

	"emperror.dev/errors"
	"github.com/matomo-org/github-sync/internal/reconcile"
	"github.com/matomo-org/github-sync/internal/synchronizer"
	"github.com/olekukonko/tablewriter"
)

// WriteSummary renders one table row per synchronize result, followed by a
// totals row when there is more than one result.
func WriteSummary(w io.Writer, results []*synchronizer.Result) error {
	table := tablewriter.NewWriter(w)
	table.Header(
		"Kind", "From", "To", "Records",
		"Matching", "Different", "Missing",
		"Created", "Updated", "Skipped", "Not migrated",
	)

	var (
		total reconcile.Summary
		sum   synchronizer.Result
		rows  int
	)
	for _, res := range results {
		if res == nil {
			continue
		}
		if err := table.Append(summaryRow(string(res.Kind), res.From.String(), res.To.String(), res)); err != nil {
			return errors.Wrap(err, "failed to add summary row")
		}
		rows++
		total.Add(res.Summary)
		sum.Created += res.Created
		sum.Updated += res.Updated
		sum.Skipped += res.Skipped
		sum.NotMigrated += res.NotMigrated
	}
	if rows > 1 {
		sum.Summary = total
		if err := table.Append(summaryRow("total", "", "", &sum)); err != nil {
			return errors.Wrap(err, "failed to add summary row")
		}
	}
	return errors.Wrap(table.Render(), "failed to render summary")
}

func summaryRow(kind, from, to string, res *synchronizer.Result) []string {
	return []string{
		kind, from, to,
		strconv.Itoa(res.Total()),
		strconv.Itoa(res.Matching),
		strconv.Itoa(res.Different),
		strconv.Itoa(res.Missing),
		strconv.Itoa(res.Created),
		strconv.Itoa(res.Updated),
		strconv.Itoa(res.Skipped),
		strconv.Itoa(res.NotMigrated),
	}
}
