package main

import (
	"fmt"
	"time"

	"newsprint/internal/order"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	violationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
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
	violations []*order.Violation
	lastUpdate time.Time
	fileCount  int
	scopeCount int
}

type updateMsg struct {
	violations []*order.Violation
	fileCount  int
	scopeCount int
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
		m.violations = msg.violations
		m.fileCount = msg.fileCount
		m.scopeCount = msg.scopeCount
		m.lastUpdate = time.Now()

		items := []list.Item{}
		for _, v := range m.violations {
			items = append(items, item{
				title: fmt.Sprintf("%s %s", v.ScopeKind.String(), v.ScopeName),
				desc:  fmt.Sprintf("%s:%d (%d members out of order)", v.Location.File, v.Location.Line, v.MismatchCount()),
			})
		}
		m.list.SetItems(items)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	status := statusStyle.Render(fmt.Sprintf("Last update: %v | %d files | %d scopes",
		m.lastUpdate.Format("15:04:05"), m.fileCount, m.scopeCount))

	var summary string
	if len(m.violations) == 0 {
		summary = successStyle.Render("✅ Everything reads top-down")
	} else {
		summary = fmt.Sprintf("⚠️  %s",
			violationStyle.Render(fmt.Sprintf("%d Ordering Violations", len(m.violations))))
	}

	header := fmt.Sprintf("%s\n%s | %s\n", titleStyle("Newspaper Order Monitor"), status, summary)
	return docStyle.Render(header + "\n" + m.list.View())
}

func initialModel() model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Out-of-Order Scopes"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	return model{
		list:       l,
		lastUpdate: time.Now(),
	}
}
