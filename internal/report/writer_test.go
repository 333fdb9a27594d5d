package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/passcand/internal/model"
)

func sampleReport() *Report {
	var res model.Result
	res.Buckets[model.VeryStrong] = []model.Candidate{{Password: "JohnSmith1990!", Entropy: 85.2}}
	res.Buckets[model.Weak] = []model.Candidate{
		{Password: "john123", Entropy: 36.2},
		{Password: "john", Entropy: 18.8},
	}
	return &Report{
		Label:       "acme",
		GeneratedAt: time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC),
		Result:      res,
	}
}

func TestTextWriter(t *testing.T) {
	var buf bytes.Buffer
	n, err := NewTextWriter(&buf).Write(sampleReport())
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if n != buf.Len() {
		t.Fatalf("expected %d bytes reported, got %d", buf.Len(), n)
	}
	out := buf.String()
	for _, want := range []string{
		"Password Candidates by Strength Category\n" + strings.Repeat("=", 50) + "\n",
		"Generated on: 2024-03-01 12:30:45\n",
		"Total passwords: 3\n",
		"\nVery Strong PASSWORDS (1 total):\n" + strings.Repeat("-", 40) + "\n",
		"  1. JohnSmith1990!                 (entropy:  85.2 bits, length: 14)\n",
		"  2. john                           (entropy:  18.8 bits, length:  4)\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Medium PASSWORDS") {
		t.Fatalf("empty category should be omitted:\n%s", out)
	}
	if strings.Index(out, "Very Strong") > strings.Index(out, "Weak PASSWORDS") {
		t.Fatalf("expected strongest category first:\n%s", out)
	}
}

func TestTextWriterPartial(t *testing.T) {
	rep := sampleReport()
	rep.Result.Partial = true
	rep.Result.Unfilled = []model.Category{model.Strong, model.VeryStrong}
	var buf bytes.Buffer
	if _, err := NewTextWriter(&buf).Write(rep); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), "Partial result: could not fill Strong, Very Strong") {
		t.Fatalf("missing partial line:\n%s", buf.String())
	}
}

func TestPartialWithoutRecordedCategories(t *testing.T) {
	rep := sampleReport()
	rep.Result.Partial = true

	var text bytes.Buffer
	if _, err := NewTextWriter(&text).Write(rep); err != nil {
		t.Fatalf("write text: %v", err)
	}
	if !strings.Contains(text.String(), "Partial result: some categories could not be filled\n") {
		t.Fatalf("unexpected text partial line:\n%s", text.String())
	}

	var md bytes.Buffer
	if _, err := NewMarkdownWriter(&md).Write(rep); err != nil {
		t.Fatalf("write markdown: %v", err)
	}
	if strings.Contains(md.String(), "fill: .") || !strings.Contains(md.String(), "some categories could not be filled") {
		t.Fatalf("unexpected markdown warning:\n%s", md.String())
	}
}

func TestMarkdownWriter(t *testing.T) {
	rep := sampleReport()
	rep.Scores = map[string]int{"JohnSmith1990!": 3, "john": 0}
	var buf bytes.Buffer
	if _, err := NewMarkdownWriter(&buf).Write(rep); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"# Password Candidates", "## Summary", "## Very Strong", "## Weak", "`JohnSmith1990!`", "zxcvbn", "acme"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected markdown to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "## Medium") {
		t.Fatalf("empty category should be omitted:\n%s", out)
	}
}

func TestMarkdownWriterWithoutScores(t *testing.T) {
	var buf bytes.Buffer
	if _, err := NewMarkdownWriter(&buf).Write(sampleReport()); err != nil {
		t.Fatalf("write: %v", err)
	}
	if strings.Contains(buf.String(), "zxcvbn") {
		t.Fatalf("zxcvbn column should only appear with scores:\n%s", buf.String())
	}
}

func TestJSONWriter(t *testing.T) {
	rep := sampleReport()
	rep.Scores = map[string]int{"john": 0}
	var buf bytes.Buffer
	if _, err := NewJSONWriter(&buf).Write(rep); err != nil {
		t.Fatalf("write: %v", err)
	}
	var decoded struct {
		Label      string `json:"label"`
		Total      int    `json:"total"`
		Categories []struct {
			Name       string `json:"name"`
			Candidates []struct {
				Password string `json:"password"`
				Zxcvbn   *int   `json:"zxcvbn"`
			} `json:"candidates"`
		} `json:"categories"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Label != "acme" || decoded.Total != 3 {
		t.Fatalf("unexpected header: %+v", decoded)
	}
	if len(decoded.Categories) != 2 || decoded.Categories[0].Name != "Very Strong" || decoded.Categories[1].Name != "Weak" {
		t.Fatalf("unexpected categories: %+v", decoded.Categories)
	}
	weak := decoded.Categories[1].Candidates
	if weak[1].Password != "john" || weak[1].Zxcvbn == nil || *weak[1].Zxcvbn != 0 {
		t.Fatalf("expected zxcvbn score on john, got %+v", weak[1])
	}
	if weak[0].Zxcvbn != nil {
		t.Fatalf("expected no score on john123, got %d", *weak[0].Zxcvbn)
	}
}

func TestWordlistWriter(t *testing.T) {
	var buf bytes.Buffer
	if _, err := NewWordlistWriter(&buf).Write(sampleReport()); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got, want := buf.String(), "JohnSmith1990!\njohn123\njohn\n"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestNewWriter(t *testing.T) {
	for _, format := range []string{"text", "TXT", "markdown", "md", "json", "wordlist", " list "} {
		if _, err := NewWriter(format, &bytes.Buffer{}); err != nil {
			t.Fatalf("format %q: %v", format, err)
		}
	}
	if _, err := NewWriter("pdf", &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestFormatForPath(t *testing.T) {
	cases := map[string]string{
		"out.md":         FormatMarkdown,
		"OUT.JSON":       FormatJSON,
		"targets.lst":    FormatWordlist,
		"candidates.txt": FormatText,
		"noext":          FormatText,
	}
	for path, want := range cases {
		if got := FormatForPath(path); got != want {
			t.Fatalf("FormatForPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.md")
	if err := Save(path, FormatMarkdown, sampleReport()); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(data), "# Password Candidates") {
		t.Fatalf("unexpected content:\n%s", data)
	}
	if err := Save(filepath.Join(t.TempDir(), "x"), "pdf", sampleReport()); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
