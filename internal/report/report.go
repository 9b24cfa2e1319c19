// Package report prints the ranked text summary for a finished run.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jonboulle/clockwork"

	"github.com/francisatoyebi/housepulse/internal/domain"
)

const rule = "============================================================"

// Printer writes run summaries to a writer.
type Printer struct {
	w     io.Writer
	clock clockwork.Clock
}

// NewPrinter creates a printer. The clock stamps the report footer.
func NewPrinter(w io.Writer, clock clockwork.Clock) *Printer {
	return &Printer{w: w, clock: clock}
}

// Print writes the ranked summary and the elimination prediction.
func (p *Printer) Print(run *domain.Run) error {
	var b strings.Builder

	b.WriteString("\n" + rule + "\n")
	b.WriteString("Housepulse Sentiment Analysis Results\n")
	b.WriteString(rule + "\n\n")

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tCONTESTANT\tRATING\tPOSTS\tSENTIMENT")
	for i, res := range run.Results {
		fmt.Fprintf(tw, "%d\t%s\t%.2f%%\t%d\t%+.4f\n",
			i+1, res.Name, res.Rating, res.PostCount, res.RawScore)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to format results table: %w", err)
	}

	if lowest, ok := run.LowestRated(); ok {
		fmt.Fprintf(&b, "\nMost likely to be EVICTED: %s (%.2f%%)\n", lowest.Name, lowest.Rating)
	}
	if highest, ok := run.HighestRated(); ok {
		fmt.Fprintf(&b, "Most likely to be SAVED:   %s (%.2f%%)\n", highest.Name, highest.Rating)
	}

	fmt.Fprintf(&b, "\nTotal posts analyzed: %d\n", run.TotalPosts)
	fmt.Fprintf(&b, "Generated: %s\n", p.clock.Now().Format("2006-01-02 15:04:05"))
	b.WriteString(rule + "\n")

	if _, err := io.WriteString(p.w, b.String()); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
