// Package report renders a markdown summary of an ingested dataset.
package report

import (
	"fmt"
	"strings"

	"github.com/PlumpMath/ExcelToDataSetReader/internal/profile"
	"github.com/PlumpMath/ExcelToDataSetReader/ports"
)

// BuildMarkdown renders a dataset record and its table profiles as markdown.
func BuildMarkdown(rec *ports.DatasetRecord, profiles []profile.TableProfile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Dataset: %s\n\n", rec.Name)
	fmt.Fprintf(&b, "- Source: %s\n", rec.Source)
	fmt.Fprintf(&b, "- Ingested: %s\n", rec.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "- Tables: %d\n\n", len(rec.Data.Tables))

	for _, tp := range profiles {
		fmt.Fprintf(&b, "## Table %s\n\n", tp.Table)
		fmt.Fprintf(&b, "%d columns, %d rows\n\n", tp.ColumnCount, tp.RowCount)

		b.WriteString("| Column | Kind | Missing | Min | Max | Mean |\n")
		b.WriteString("|---|---|---|---|---|---|\n")
		for _, cp := range tp.Columns {
			if cp.Kind == "numeric" {
				fmt.Fprintf(&b, "| %s | %s | %.1f%% | %g | %g | %g |\n",
					cp.Name, cp.Kind, cp.MissingRate*100, cp.Min, cp.Max, cp.Mean)
			} else {
				fmt.Fprintf(&b, "| %s | %s | %.1f%% | | | |\n",
					cp.Name, cp.Kind, cp.MissingRate*100)
			}
		}
		b.WriteString("\n")

		if len(tp.Correlations) > 0 {
			b.WriteString("### Correlations\n\n")
			for _, corr := range tp.Correlations {
				fmt.Fprintf(&b, "- %s / %s: r=%.3f (n=%d)\n", corr.X, corr.Y, corr.R, corr.N)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}
