// Package resultsui provides the Bubble Tea results browser.
package resultsui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/passcand/internal/model"
	"github.com/verte-zerg/passcand/internal/stats"
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	warnStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea results browser.
type Model struct {
	result model.Result
	scores map[string]int
	title  string

	tabs      []model.Category
	activeTab int
	table     table.Model

	width  int
	height int
}

// NewModel constructs a browser over res. scores may be nil.
func NewModel(res model.Result, scores map[string]int, title string) *Model {
	m := &Model{
		result: res,
		scores: scores,
		title:  title,
		tabs:   res.Present(),
	}
	m.table = table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(1),
	)
	m.table.SetStyles(tableStyles())
	m.loadRows()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h", "shift+tab":
			m.moveTab(-1)
			return m, nil
		case "right", "l", "tab":
			m.moveTab(1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

// Active returns the category shown in the current tab.
func (m *Model) Active() (model.Category, bool) {
	if len(m.tabs) == 0 {
		return model.Weak, false
	}
	return m.tabs[m.activeTab], true
}

func (m *Model) columns() []table.Column {
	cols := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Password", Width: 32},
		{Title: "Entropy", Width: 8},
		{Title: "Length", Width: 6},
	}
	if m.scores != nil {
		cols = append(cols, table.Column{Title: "zxcvbn", Width: 6})
	}
	return cols
}

func (m *Model) rows() []table.Row {
	cat, ok := m.Active()
	if !ok {
		return nil
	}
	list := m.result.Get(cat)
	rows := make([]table.Row, 0, len(list))
	for i, c := range list {
		row := table.Row{
			strconv.Itoa(i + 1),
			c.Password,
			fmt.Sprintf("%.1f", c.Entropy),
			strconv.Itoa(len([]rune(c.Password))),
		}
		if m.scores != nil {
			score := "-"
			if s, ok := m.scores[c.Password]; ok {
				score = strconv.Itoa(s)
			}
			row = append(row, score)
		}
		rows = append(rows, row)
	}
	return rows
}

func (m *Model) loadRows() {
	m.table.SetRows(m.rows())
	m.table.GotoTop()
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	m.loadRows()
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := max(1, lipgloss.Height(activeNavStyle.Render("X")))
	headerHeight = tabsHeight + 1
	footerHeight = 1
	bodyHeight = max(1, m.height-headerHeight-footerHeight)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.table.SetWidth(m.width)
	m.table.SetHeight(max(1, bodyHeight-1))
	m.adjustTableHeight(bodyHeight)
}

// adjustTableHeight corrects for header borders so the rendered table fills the body exactly.
func (m *Model) adjustTableHeight(bodyHeight int) {
	target := max(1, bodyHeight)
	for range 2 {
		viewHeight := lipgloss.Height(m.table.View())
		if viewHeight == target {
			return
		}
		m.table.SetHeight(max(1, m.table.Height()+target-viewHeight))
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, cat := range m.tabs {
		label := fmt.Sprintf("%s (%d)", cat, len(m.result.Get(cat)))
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Foreground(stats.CategoryStyle(cat).GetForeground()).Render(label))
		} else {
			parts = append(parts, inactiveNavStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	summary := fmt.Sprintf("%s  total=%d", m.title, m.result.Total())
	if m.title == "" {
		summary = fmt.Sprintf("total=%d", m.result.Total())
	}
	line := headerStyle.Render(truncateLine(summary, m.width))
	if m.result.Partial {
		line += "  " + warnStyle.Render("partial")
	}
	return tabs + "\n" + padLines(line, m.width)
}

func (m *Model) renderBody() string {
	if len(m.tabs) == 0 {
		return "No passwords generated."
	}
	return tableMutedStyle.Render(m.table.View())
}

func (m *Model) renderFooter() string {
	return headerStyle.Render("Tabs: left/right  Scroll: up/down/pgup/pgdn  Quit: q")
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
