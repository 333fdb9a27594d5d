package report

import (
	"io"
	"strings"

	"github.com/verte-zerg/passcand/internal/wordlist"
)

// WordlistWriter writes one password per line, strongest category first.
type WordlistWriter struct {
	baseWriter
}

// NewWordlistWriter creates a WordlistWriter that outputs to the given writer.
func NewWordlistWriter(output io.Writer) *WordlistWriter {
	return &WordlistWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the bare wordlist.
func (w *WordlistWriter) Write(report *Report) (int, error) {
	words := wordlist.Flatten(report.Result)
	if len(words) == 0 {
		return 0, nil
	}
	return io.WriteString(w.output, strings.Join(words, "\n")+"\n")
}
