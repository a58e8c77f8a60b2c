// # cmd/dora/ui.go
package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dora/internal/resolver"
	"dora/internal/traverse"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

type item struct {
	title, desc string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title + i.desc }

type model struct {
	list       list.Model
	pattern    string
	results    []traverse.Result
	lastUpdate time.Time
	changed    int
	duration   time.Duration
}

type updateMsg struct {
	results    []traverse.Result
	changed    int
	duration   time.Duration
	lastUpdate time.Time
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-4)
	case updateMsg:
		m.results = msg.results
		m.changed = msg.changed
		m.duration = msg.duration
		m.lastUpdate = msg.lastUpdate

		items := make([]list.Item, 0, len(m.results))
		for _, res := range m.results {
			items = append(items, item{
				title: fmt.Sprintf("%s (%s)", res.Symbol, res.Kind),
				desc:  resultDesc(res),
			})
		}
		m.list.SetItems(items)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func resultDesc(res traverse.Result) string {
	desc := fmt.Sprintf("%s:%d:%d", res.File, res.Line, res.Column)
	if res.Origin == nil {
		return desc
	}
	if res.Origin.Kind == resolver.OriginLocal {
		return fmt.Sprintf("%s from %s", desc, filepath.Base(res.Origin.Path))
	}
	if label := res.Origin.Label(); label != "" {
		return fmt.Sprintf("%s from %s", desc, label)
	}
	return desc
}

func (m model) View() string {
	status := statusStyle.Render(fmt.Sprintf("Last update: %v | %d changed files",
		m.lastUpdate.Format("15:04:05"), m.changed))

	summary := countStyle.Render(fmt.Sprintf("%d occurrences", len(m.results)))

	title := "Type Reference Search"
	if m.pattern != "" {
		title = fmt.Sprintf("Type Reference Search: %q", m.pattern)
	}

	header := fmt.Sprintf("%s\n%s | %s\n", titleStyle(title), status, summary)
	return docStyle.Render(header + "\n" + m.list.View())
}

func initialModel(pattern string) model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Occurrences"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	return model{
		list:       l,
		pattern:    pattern,
		lastUpdate: time.Now(),
	}
}
