package cli

import (
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"dailyoffice/internal/core"
	"dailyoffice/internal/services"
)

const rule = "=================================================="

// PrintBanner writes the header shown before a run.
func PrintBanner(w io.Writer, source string) {
	fmt.Fprintln(w, "Daily Office Static Site Generator")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Parsing %s...\n", source)
}

// PrintSummary writes the human summary of a finished run. previous is the
// last build recorded in the manifest before this one, or nil.
func PrintSummary(w io.Writer, r *services.BuildReport, previous *core.Build) {
	fmt.Fprintf(w, "Found %d days of liturgical data\n", r.Stats.Records)
	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "Warning: Could not parse date '%s', skipping row\n", warn.DateText)
	}
	if len(r.Months) > 0 {
		fmt.Fprintf(w, "Months: %s\n", strings.Join(r.Months, ", "))
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "✓ Generated %d day pages\n", r.Stats.Records)
	fmt.Fprintln(w, "✓ Generated index page")
	fmt.Fprintln(w, "✓ Generated print-all page")
	if r.Stats.PagesSkipped > 0 {
		fmt.Fprintf(w, "✓ %d pages unchanged since the last build\n", r.Stats.PagesSkipped)
	}
	if previous != nil {
		fmt.Fprintf(w, "  previous build %s finished %s (%d written, %d unchanged)\n",
			previous.ID, previous.FinishedAt.Format(time.RFC3339),
			previous.Stats.PagesWritten, previous.Stats.PagesSkipped)
	}
	fmt.Fprintf(w, "\nOutput directory: %s\n", r.OutputDir)
	fmt.Fprintln(w, "\nTo view:")
	fmt.Fprintf(w, "  open %s\n", path.Join(r.OutputDir, services.IndexPage))
	fmt.Fprintln(w, "\nTo print all days:")
	fmt.Fprintf(w, "  open %s\n", path.Join(r.OutputDir, services.AllPage))
}
