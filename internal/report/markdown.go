package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/verte-zerg/passcand/internal/model"
)

// MarkdownWriter writes summary and per-category tables in Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	for _, cat := range report.Result.Present() {
		w.writeCategory(md, cat, report)
	}

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *Report) {
	md.H1("Password Candidates")
	md.PlainText("")

	label := report.Label
	if label == "" {
		label = "-"
	}
	status := "Complete"
	if report.Result.Partial {
		status = "Partial"
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Label", label},
			{"Generated", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
			{"Total Passwords", strconv.Itoa(report.Result.Total())},
			{"Status", status},
		},
	})
	md.PlainText("")

	if report.Result.Partial {
		md.Warningf("Partial result: %s. The fallback generator hit its attempt limit.", unfilledText(report.Result.Unfilled))
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *Report) {
	md.H2("Summary")
	md.PlainText("")
	if report.Result.Empty() {
		md.PlainText("No passwords generated.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, model.NumCategories)
	for _, cat := range model.DisplayOrder {
		list := report.Result.Get(cat)
		minE, maxE := "-", "-"
		if len(list) > 0 {
			maxE = fmt.Sprintf("%.1f", list[0].Entropy)
			minE = fmt.Sprintf("%.1f", list[len(list)-1].Entropy)
		}
		rows = append(rows, []string{cat.String(), strconv.Itoa(len(list)), minE, maxE})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Category", "Count", "Min Entropy", "Max Entropy"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeCategory(md *markdown.Markdown, cat model.Category, report *Report) {
	md.H2(cat.String())
	md.PlainText("")

	header := []string{"#", "Password", "Entropy", "Length"}
	if report.Scores != nil {
		header = append(header, "zxcvbn")
	}
	list := report.Result.Get(cat)
	rows := make([][]string, 0, len(list))
	for i, c := range list {
		row := []string{
			strconv.Itoa(i + 1),
			"`" + c.Password + "`",
			fmt.Sprintf("%.1f", c.Entropy),
			strconv.Itoa(len([]rune(c.Password))),
		}
		if report.Scores != nil {
			score := "-"
			if s, ok := report.Scores[c.Password]; ok {
				score = strconv.Itoa(s)
			}
			row = append(row, score)
		}
		rows = append(rows, row)
	}
	md.Table(markdown.TableSet{Header: header, Rows: rows})
	md.PlainText("")
}
