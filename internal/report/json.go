package report

import (
	"encoding/json"
	"io"
	"time"
)

// JSONWriter writes candidates grouped by category as indented JSON.
type JSONWriter struct {
	baseWriter
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer) *JSONWriter {
	return &JSONWriter{baseWriter: newBaseWriter(output)}
}

type jsonCandidate struct {
	Password string  `json:"password"`
	Entropy  float64 `json:"entropy"`
	Zxcvbn   *int    `json:"zxcvbn,omitempty"`
}

type jsonCategory struct {
	Name       string          `json:"name"`
	Candidates []jsonCandidate `json:"candidates"`
}

type jsonReport struct {
	Label       string         `json:"label,omitempty"`
	GeneratedAt time.Time      `json:"generated_at"`
	Total       int            `json:"total"`
	Partial     bool           `json:"partial"`
	Unfilled    []string       `json:"unfilled,omitempty"`
	Categories  []jsonCategory `json:"categories"`
}

// Write outputs the report as JSON, strongest category first.
func (w *JSONWriter) Write(report *Report) (int, error) {
	out := jsonReport{
		Label:       report.Label,
		GeneratedAt: report.GeneratedAt,
		Total:       report.Result.Total(),
		Partial:     report.Result.Partial,
		Categories:  []jsonCategory{},
	}
	for _, c := range report.Result.Unfilled {
		out.Unfilled = append(out.Unfilled, c.String())
	}
	for _, cat := range report.Result.Present() {
		list := report.Result.Get(cat)
		jc := jsonCategory{Name: cat.String(), Candidates: make([]jsonCandidate, 0, len(list))}
		for _, c := range list {
			entry := jsonCandidate{Password: c.Password, Entropy: c.Entropy}
			if s, ok := report.Scores[c.Password]; ok {
				entry.Zxcvbn = &s
			}
			jc.Candidates = append(jc.Candidates, entry)
		}
		out.Categories = append(out.Categories, jc)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return 0, err
	}
	data = append(data, '\n')
	return w.output.Write(data)
}
