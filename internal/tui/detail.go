package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var summaryStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("248")).
	Width(defaultListWidth).
	MarginBottom(1)

var summaryFocusedStyle = summaryStyle.Copy().
	Foreground(lipgloss.Color("254"))

// DetailView is the item detail screen: title, summary, and the cast & crew
// row. Focus moves between the summary zone and the row.
type DetailView struct {
	title      string
	year       int
	summary    string
	row        *CastRow
	rowFocused bool
}

// NewDetailView creates a detail screen for one item. Focus starts on the
// cast row when it has members.
func NewDetailView(title string, year int, summary string, row *CastRow) *DetailView {
	return &DetailView{
		title:      title,
		year:       year,
		summary:    summary,
		row:        row,
		rowFocused: row.FocusID() != "",
	}
}

func (m *DetailView) Init() tea.Cmd {
	return m.row.Init()
}

func (m *DetailView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "down":
			if !m.rowFocused {
				m.rowFocused = true
				m.row.Focus()
				return m, nil
			}
		}
		if m.rowFocused {
			var cmd tea.Cmd
			m.row, cmd = m.row.Update(msg)
			return m, cmd
		}
		return m, nil

	case RowExitMsg:
		m.rowFocused = false
		return m, nil
	}

	var cmd tea.Cmd
	m.row, cmd = m.row.Update(msg)
	return m, cmd
}

func (m *DetailView) View() string {
	title := m.title
	if m.year > 0 {
		title = fmt.Sprintf("%s (%d)", m.title, m.year)
	}
	header := headerStyle.Render(title)

	style := summaryStyle
	if !m.rowFocused {
		style = summaryFocusedStyle
	}
	summary := style.Render(m.summary)

	help := helpStyle.Render("←/→ browse people | ↑/↓ switch focus | q quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, summary, m.row.View(), help)
}

// ShowDetail runs the detail screen until the user quits.
func ShowDetail(view *DetailView) error {
	_, err := runProgram(view)
	return err
}

// RunPlayer runs the playback screen until playback ends or the user
// dismisses it.
func RunPlayer(cfg PlayerConfig) error {
	_, err := runProgram(NewPlayerView(cfg))
	return err
}
