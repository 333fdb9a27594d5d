package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/verte-zerg/passcand/internal/model"
	"github.com/verte-zerg/passcand/internal/wordlist"
)

// Supported output formats.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatWordlist = "wordlist"
)

// Formats lists the supported output formats.
var Formats = []string{FormatText, FormatMarkdown, FormatJSON, FormatWordlist}

// Report is a generation result with the context needed to write it out.
type Report struct {
	Label       string
	GeneratedAt time.Time
	Result      model.Result
	// Scores holds optional zxcvbn scores keyed by password.
	Scores map[string]int
}

// Writer writes a report in one format.
type Writer interface {
	// Write outputs the report and returns the number of bytes written.
	Write(report *Report) (int, error)
}

// NewWriter returns the Writer for format.
func NewWriter(format string, output io.Writer) (Writer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatText, "txt":
		return NewTextWriter(output), nil
	case FormatMarkdown, "md":
		return NewMarkdownWriter(output), nil
	case FormatJSON:
		return NewJSONWriter(output), nil
	case FormatWordlist, "list":
		return NewWordlistWriter(output), nil
	default:
		return nil, fmt.Errorf("unknown format %q (available: %s)", format, strings.Join(Formats, ", "))
	}
}

// FormatForPath guesses the format from a file extension, defaulting to text.
func FormatForPath(path string) string {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".md"), strings.HasSuffix(lower, ".markdown"):
		return FormatMarkdown
	case strings.HasSuffix(lower, ".json"):
		return FormatJSON
	case strings.HasSuffix(lower, ".lst"), strings.HasSuffix(lower, ".dic"):
		return FormatWordlist
	default:
		return FormatText
	}
}

type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// Save writes the report to path in the given format, replacing the file atomically.
func Save(path, format string, report *Report) error {
	return wordlist.WriteAtomic(path, func(w io.Writer) error {
		writer, err := NewWriter(format, w)
		if err != nil {
			return err
		}
		_, err = writer.Write(report)
		return err
	})
}
