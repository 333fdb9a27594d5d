package tui

import (
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/passcand/internal/model"
)

func TestParseValuesDefaults(t *testing.T) {
	opts := ParseValues(Values{Name: "  John Smith "})
	if opts.FullName != "John Smith" {
		t.Fatalf("expected trimmed name, got %q", opts.FullName)
	}
	if opts.MaxParts != DefaultMaxParts || opts.PerCategory != DefaultPerCategory {
		t.Fatalf("expected defaults, got %d/%d", opts.MaxParts, opts.PerCategory)
	}
	if !opts.Leet || !opts.Symbols {
		t.Fatalf("expected toggles on by default")
	}
}

func TestParseValuesClamps(t *testing.T) {
	cases := []struct {
		maxParts, perCategory string
		wantParts, wantPer    int
	}{
		{"9", "5", 4, MinPerCategory},
		{"0", "99999", 1, MaxPerCategory},
		{"two", "lots", DefaultMaxParts, DefaultPerCategory},
		{"2", "250", 2, 250},
	}
	for _, tc := range cases {
		opts := ParseValues(Values{MaxParts: tc.maxParts, PerCategory: tc.perCategory})
		if opts.MaxParts != tc.wantParts || opts.PerCategory != tc.wantPer {
			t.Fatalf("(%q, %q): expected %d/%d, got %d/%d",
				tc.maxParts, tc.perCategory, tc.wantParts, tc.wantPer, opts.MaxParts, opts.PerCategory)
		}
	}
}

func TestParseValuesTogglesAndDates(t *testing.T) {
	opts := ParseValues(Values{Leet: "N", Symbols: "no", Dates: "2015-06-20, ,2010-05-01;1999"})
	if opts.Leet || opts.Symbols {
		t.Fatalf("expected toggles off")
	}
	if !slices.Equal(opts.ImportantDates, []string{"2015-06-20", "2010-05-01", "1999"}) {
		t.Fatalf("unexpected dates: %v", opts.ImportantDates)
	}
	if opts := ParseValues(Values{Leet: "whatever"}); !opts.Leet {
		t.Fatalf("expected anything but n/no to enable")
	}
}

func TestModelPrefillsDefaults(t *testing.T) {
	m := NewModel(model.Options{MaxParts: 2, PerCategory: 50, Leet: false, Symbols: true, ExtraWords: []string{"rex"}})
	v := m.Values()
	if v.MaxParts != "2" || v.PerCategory != "50" || v.Leet != "n" || v.Symbols != "y" {
		t.Fatalf("unexpected prefill: %+v", v)
	}
	opts, submitted := m.Options()
	if submitted {
		t.Fatalf("expected not submitted")
	}
	if !slices.Equal(opts.ExtraWords, []string{"rex"}) {
		t.Fatalf("expected extra words carried, got %v", opts.ExtraWords)
	}
}

func TestModelNavigationAndSubmit(t *testing.T) {
	m := NewModel(model.Options{})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Ann")})
	if m.Values().Name != "Ann" {
		t.Fatalf("expected typed name, got %q", m.Values().Name)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != fieldCount-1 {
		t.Fatalf("expected focus to wrap to last field, got %d", m.focus)
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected quit command on submit")
	}
	if _, ok := m.Options(); !ok {
		t.Fatalf("expected form submitted")
	}
}

func TestModelCancel(t *testing.T) {
	m := NewModel(model.Options{})
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := m.Options(); ok {
		t.Fatalf("expected cancelled form")
	}
}

func TestViewShowsTokenPreview(t *testing.T) {
	m := NewModel(model.Options{})
	m.inputs[fieldName].SetValue("John Smith")
	view := m.View()
	if !strings.Contains(view, "Tokens (5):") {
		t.Fatalf("expected token count in view:\n%s", view)
	}
}
