// Package stats renders generation results and run history for the console.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/passcand/internal/model"
)

const sparkChars = " .:-=+*#%@"

const (
	passwordColumnWidth = 30
	headerRuleWidth     = 70
	sectionRuleWidth    = 60
	historyLabelWidth   = 24
)

var (
	categoryStyles = [model.NumCategories]lipgloss.Style{
		model.Weak:       lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")),
		model.Medium:     lipgloss.NewStyle().Foreground(lipgloss.Color("#E6C229")),
		model.Strong:     lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")),
		model.VeryStrong: lipgloss.NewStyle().Foreground(lipgloss.Color("#4096FF")),
	}
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
)

// CategoryStyle returns the display style of a category.
func CategoryStyle(c model.Category) lipgloss.Style {
	return categoryStyles[c]
}

// Summary describes the entropy distribution of one category.
type Summary struct {
	Category model.Category
	Count    int
	Min      float64
	Avg      float64
	Max      float64
	Spark    string
}

// Summarize computes per-category summaries, strongest first.
func Summarize(res model.Result) []Summary {
	out := make([]Summary, 0, model.NumCategories)
	for _, cat := range model.DisplayOrder {
		list := res.Get(cat)
		s := Summary{Category: cat, Count: len(list)}
		if len(list) > 0 {
			values := make([]float64, len(list))
			s.Min = list[0].Entropy
			s.Max = list[0].Entropy
			var sum float64
			for i, c := range list {
				values[i] = c.Entropy
				sum += c.Entropy
				s.Min = math.Min(s.Min, c.Entropy)
				s.Max = math.Max(s.Max, c.Entropy)
			}
			s.Avg = sum / float64(len(list))
			s.Spark = Sparkline(values)
		}
		out = append(out, s)
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderResults prints up to samples candidates per category, strongest category first.
func RenderResults(w io.Writer, res model.Result, samples int) error {
	if res.Empty() {
		_, err := fmt.Fprintln(w, "\nNo passwords generated. Please check your input.")
		return err
	}
	present := res.Present()
	if _, err := fmt.Fprintf(w, "\nGenerated %d total passwords across %d strength categories\n", res.Total(), len(present)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("=", headerRuleWidth)); err != nil {
		return err
	}

	for _, cat := range present {
		list := res.Get(cat)
		title := fmt.Sprintf("%s Passwords (%d total):", cat, len(list))
		if _, err := fmt.Fprintf(w, "\n%s\n", CategoryStyle(cat).Render(title)); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, strings.Repeat("-", sectionRuleWidth)); err != nil {
			return err
		}
		n := min(max(samples, 0), len(list))
		for i, c := range list[:n] {
			if _, err := fmt.Fprintln(w, FormatCandidateLine(i+1, 2, c)); err != nil {
				return err
			}
		}
		if len(list) > n {
			if _, err := fmt.Fprintf(w, "... and %d more %s passwords\n", len(list)-n, strings.ToLower(cat.String())); err != nil {
				return err
			}
		}
	}

	if res.Partial {
		names := make([]string, len(res.Unfilled))
		for i, c := range res.Unfilled {
			names[i] = c.String()
		}
		msg := "Warning: partial result, some categories could not be filled"
		if len(names) > 0 {
			msg = fmt.Sprintf("Warning: partial result, could not fill: %s", strings.Join(names, ", "))
		}
		if _, err := fmt.Fprintf(w, "\n%s\n", warningStyle.Render(msg)); err != nil {
			return err
		}
	}
	return nil
}

// FormatCandidateLine formats a numbered candidate with entropy and length.
func FormatCandidateLine(rank, rankWidth int, c model.Candidate) string {
	return fmt.Sprintf("%*d. %s (entropy: %5.1f bits, length: %2d)",
		rankWidth, rank,
		runewidth.FillRight(c.Password, passwordColumnWidth),
		c.Entropy,
		runewidth.StringWidth(c.Password),
	)
}

// RenderSummary prints the per-category entropy summary table.
func RenderSummary(w io.Writer, res model.Result) error {
	if res.Empty() {
		return nil
	}
	if _, err := fmt.Fprintln(w, "\nSummary"); err != nil {
		return err
	}
	tbl := newTable(
		column{title: "Category"},
		column{title: "Count", right: true},
		column{title: "Min", right: true},
		column{title: "Avg", right: true},
		column{title: "Max", right: true},
		column{title: "Entropy"},
	)
	for _, s := range Summarize(res) {
		if s.Count == 0 {
			tbl.add(s.Category.String(), "0", "-", "-", "-")
			continue
		}
		tbl.add(
			s.Category.String(),
			fmt.Sprintf("%d", s.Count),
			fmt.Sprintf("%.1f", s.Min),
			fmt.Sprintf("%.1f", s.Avg),
			fmt.Sprintf("%.1f", s.Max),
			s.Spark,
		)
	}
	return tbl.write(w)
}

// RenderHistory prints stored runs as a table.
func RenderHistory(w io.Writer, runs []model.Run) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs found.")
		return err
	}
	tbl := newTable(
		column{title: "ID", right: true},
		column{title: "Created"},
		column{title: "Label", max: historyLabelWidth},
		column{title: "Parts", right: true},
		column{title: "Quota", right: true},
		column{title: "Weak", right: true},
		column{title: "Medium", right: true},
		column{title: "Strong", right: true},
		column{title: "Very Strong", right: true},
		column{title: "Partial"},
	)
	for _, r := range runs {
		partial := ""
		if r.Partial {
			partial = "yes"
		}
		tbl.add(
			fmt.Sprintf("%d", r.ID),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Label,
			fmt.Sprintf("%d", r.MaxParts),
			fmt.Sprintf("%d", r.PerCategory),
			fmt.Sprintf("%d", r.Counts[model.Weak]),
			fmt.Sprintf("%d", r.Counts[model.Medium]),
			fmt.Sprintf("%d", r.Counts[model.Strong]),
			fmt.Sprintf("%d", r.Counts[model.VeryStrong]),
			partial,
		)
	}
	return tbl.write(w)
}
