// Package tui provides the Bubble Tea input form.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/passcand/internal/generator"
	"github.com/verte-zerg/passcand/internal/model"
)

// Defaults and bounds applied to form input.
const (
	DefaultMaxParts    = 3
	DefaultPerCategory = 100
	MinPerCategory     = 10
	MaxPerCategory     = 10000
)

const (
	fieldName = iota
	fieldDOB
	fieldPlace
	fieldPerson
	fieldDates
	fieldMaxParts
	fieldPerCategory
	fieldLeet
	fieldSymbols
	fieldCount
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	tokenStyles  = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8")),
	}
)

// Values holds the raw text of every form field.
type Values struct {
	Name        string
	DOB         string
	Place       string
	Person      string
	Dates       string
	MaxParts    string
	PerCategory string
	Leet        string
	Symbols     string
}

// ParseValues converts raw form text into generation options.
// Numbers are clamped; empty or non-numeric input falls back to the defaults.
// Toggles are on unless answered with n or no.
func ParseValues(v Values) model.Options {
	return model.Options{
		FullName:       strings.TrimSpace(v.Name),
		DOB:            strings.TrimSpace(v.DOB),
		FavPlace:       strings.TrimSpace(v.Place),
		FavPerson:      strings.TrimSpace(v.Person),
		ImportantDates: splitList(v.Dates),
		MaxParts:       parseBounded(v.MaxParts, DefaultMaxParts, generator.MinParts, generator.MaxParts),
		PerCategory:    parseBounded(v.PerCategory, DefaultPerCategory, MinPerCategory, MaxPerCategory),
		Leet:           parseYesNo(v.Leet),
		Symbols:        parseYesNo(v.Symbols),
	}
}

func splitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func parseBounded(s string, def, lo, hi int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return max(lo, min(hi, n))
}

func parseYesNo(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "n", "no":
		return false
	default:
		return true
	}
}

// Model implements the Bubble Tea form that collects personal inputs.
type Model struct {
	inputs []textinput.Model
	labels []string
	focus  int
	extra  []string

	width  int
	height int

	submitted bool
}

// NewModel constructs the form. Numeric and toggle fields are prefilled from defaults.
func NewModel(defaults model.Options) *Model {
	m := &Model{
		labels: []string{
			"Full name",
			"Date of birth",
			"Favorite place",
			"Favorite person/pet/hero",
			"Important dates",
			"Max parts to combine (1-4)",
			fmt.Sprintf("Passwords per category (%d-%d)", MinPerCategory, MaxPerCategory),
			"Use leet substitutions (y/n)",
			"Include symbols (y/n)",
		},
		extra: defaults.ExtraWords,
	}
	placeholders := []string{
		"John Smith",
		"YYYY-MM-DD or any format",
		"Paris",
		"Rex",
		"comma separated, e.g. 2015-06-20, 2010-05-01",
		strconv.Itoa(DefaultMaxParts),
		strconv.Itoa(DefaultPerCategory),
		"y",
		"y",
	}
	m.inputs = make([]textinput.Model, fieldCount)
	for i := range m.inputs {
		m.inputs[i] = newInput(placeholders[i])
	}
	if defaults.MaxParts > 0 {
		m.inputs[fieldMaxParts].SetValue(strconv.Itoa(defaults.MaxParts))
	}
	if defaults.PerCategory > 0 {
		m.inputs[fieldPerCategory].SetValue(strconv.Itoa(defaults.PerCategory))
	}
	m.inputs[fieldLeet].SetValue(yesNo(defaults.Leet))
	m.inputs[fieldSymbols].SetValue(yesNo(defaults.Symbols))
	m.setFocus(0)
	return m
}

func newInput(placeholder string) textinput.Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = placeholder
	input.CharLimit = 256
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func yesNo(b bool) string {
	if b {
		return "y"
	}
	return "n"
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for i := range m.inputs {
			m.inputs[i].Width = max(10, min(60, m.width-4))
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.focus == len(m.inputs)-1 {
				m.submitted = true
				return m, tea.Quit
			}
			return m, m.setFocus(m.focus + 1)
		case tea.KeyCtrlS:
			m.submitted = true
			return m, tea.Quit
		case tea.KeyTab, tea.KeyDown:
			return m, m.setFocus(m.focus + 1)
		case tea.KeyShiftTab, tea.KeyUp:
			return m, m.setFocus(m.focus - 1)
		}
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(idx int) tea.Cmd {
	count := len(m.inputs)
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.focus = idx
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == m.focus {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return cmd
}

// Values returns the raw text of every field.
func (m *Model) Values() Values {
	return Values{
		Name:        m.inputs[fieldName].Value(),
		DOB:         m.inputs[fieldDOB].Value(),
		Place:       m.inputs[fieldPlace].Value(),
		Person:      m.inputs[fieldPerson].Value(),
		Dates:       m.inputs[fieldDates].Value(),
		MaxParts:    m.inputs[fieldMaxParts].Value(),
		PerCategory: m.inputs[fieldPerCategory].Value(),
		Leet:        m.inputs[fieldLeet].Value(),
		Symbols:     m.inputs[fieldSymbols].Value(),
	}
}

// Options returns the parsed options and whether the form was submitted.
func (m *Model) Options() (model.Options, bool) {
	opts := ParseValues(m.Values())
	opts.ExtraWords = m.extra
	return opts, m.submitted
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := []string{
		titleStyle.Render("Password Candidate Generator"),
		warnStyle.Render("Personal-info passwords are weak for real accounts. Use them for authorized audits only."),
		"",
	}
	for i, input := range m.inputs {
		label := labelStyle.Render(m.labels[i])
		if i == m.focus {
			label = focusedStyle.Render(m.labels[i])
		}
		lines = append(lines, label, input.View())
	}
	lines = append(lines, "", m.renderPreview(), "", m.renderFooter())
	content := strings.Join(lines, "\n")
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, content)
}

func (m *Model) renderPreview() string {
	opts, _ := m.Options()
	tokens := generator.Tokens(opts)
	header := labelStyle.Render(fmt.Sprintf("Tokens (%d):", len(tokens)))
	if len(tokens) == 0 {
		return header + " " + footerStyle.Render("none yet")
	}
	width := int(float64(m.width) * 0.70)
	return header + "\n" + wrapStyledRunes(buildTokenRunes(tokens), width)
}

func (m *Model) renderFooter() string {
	return footerStyle.Render("tab/shift+tab: move  enter: next/submit  ctrl+s: submit  esc: cancel")
}
