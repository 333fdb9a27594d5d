package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/passcand/internal/model"
)

// TextWriter writes the numbered plain-text report.
type TextWriter struct {
	baseWriter
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the report as plain text, strongest category first.
func (w *TextWriter) Write(report *Report) (int, error) {
	var sb strings.Builder
	sb.WriteString("Password Candidates by Strength Category\n")
	sb.WriteString(strings.Repeat("=", 50) + "\n")
	if report.Label != "" {
		fmt.Fprintf(&sb, "Label: %s\n", report.Label)
	}
	fmt.Fprintf(&sb, "Generated on: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "Total passwords: %d\n", report.Result.Total())
	if report.Result.Partial {
		fmt.Fprintf(&sb, "Partial result: %s\n", unfilledText(report.Result.Unfilled))
	}
	sb.WriteString("\n")

	for _, cat := range report.Result.Present() {
		list := report.Result.Get(cat)
		fmt.Fprintf(&sb, "\n%s PASSWORDS (%d total):\n", cat, len(list))
		sb.WriteString(strings.Repeat("-", 40) + "\n")
		for i, c := range list {
			fmt.Fprintf(&sb, "%3d. %s (entropy: %5.1f bits, length: %2d)\n",
				i+1, runewidth.FillRight(c.Password, 30), c.Entropy, runewidth.StringWidth(c.Password))
		}
		sb.WriteString("\n")
	}
	return io.WriteString(w.output, sb.String())
}

// unfilledText names the short categories, or says so generically when none are recorded.
func unfilledText(cats []model.Category) string {
	if len(cats) == 0 {
		return "some categories could not be filled"
	}
	return "could not fill " + joinCategories(cats)
}

func joinCategories(cats []model.Category) string {
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.String()
	}
	return strings.Join(names, ", ")
}
