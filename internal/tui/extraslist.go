package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mvartia/plexwatch/internal/extras"
)

const (
	defaultListWidth  = 72
	defaultListHeight = 20
)

// ExtrasAction represents the user's action in the extras picker.
type ExtrasAction int

const (
	// ExtrasNone indicates no action was taken.
	ExtrasNone ExtrasAction = iota
	// ExtrasSelected indicates the user chose an extra to play.
	ExtrasSelected
	// ExtrasDismissed indicates the user backed out of the picker.
	ExtrasDismissed
)

// ExtrasResult holds the outcome of the extras picker.
type ExtrasResult struct {
	Action    ExtrasAction
	Selection *extras.Extra
}

type extraItem struct {
	extras.Extra
}

func (i extraItem) Title() string {
	return fmt.Sprintf("[%s] %s", strings.ToUpper(i.Label()), i.Extra.Title)
}

func (i extraItem) FilterValue() string {
	return i.Extra.Title
}

func (i extraItem) Description() string {
	return i.Label()
}

type extraStyles struct {
	normal     lipgloss.Style
	selected   lipgloss.Style
	labelStyle lipgloss.Style
	titleStyle lipgloss.Style
}

func newExtraStyles() extraStyles {
	container := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(lipgloss.Color("252"))

	selected := container.Copy().
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("237")).
		Bold(true)

	return extraStyles{
		normal:   container,
		selected: selected,
		labelStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("110")),
		titleStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("254")),
	}
}

type extraDelegate struct {
	styles extraStyles
}

func newExtraDelegate() extraDelegate {
	return extraDelegate{styles: newExtraStyles()}
}

func (d extraDelegate) Height() int                         { return 1 }
func (d extraDelegate) Spacing() int                        { return 0 }
func (d extraDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d extraDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	extra, ok := item.(extraItem)
	if !ok {
		return
	}

	label := d.styles.labelStyle.Render(fmt.Sprintf("[%s]", strings.ToUpper(extra.Label())))
	title := d.styles.titleStyle.Render(truncate(extra.Extra.Title, m.Width()-lipgloss.Width(extra.Label())-6))
	line := lipgloss.JoinHorizontal(lipgloss.Left, label, " ", title)

	container := d.styles.normal
	if idx == m.Index() {
		container = d.styles.selected
	}
	_, _ = fmt.Fprint(w, container.Render(line))
}

type extrasModel struct {
	list      list.Model
	itemTitle string
	result    ExtrasResult
}

func newExtrasModel(itemTitle string, items []extraItem) *extrasModel {
	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = item
	}

	l := list.New(listItems, newExtraDelegate(), defaultListWidth, defaultListHeight)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle()

	return &extrasModel{
		list:      l,
		itemTitle: itemTitle,
		result:    ExtrasResult{Action: ExtrasNone},
	}
}

func (m *extrasModel) Init() tea.Cmd { return nil }

func (m *extrasModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if selected, ok := m.list.SelectedItem().(extraItem); ok {
				extra := selected.Extra
				m.result = ExtrasResult{
					Action:    ExtrasSelected,
					Selection: &extra,
				}
				return m, tea.Quit
			}
		case "esc", "q", "ctrl+c":
			m.result = ExtrasResult{Action: ExtrasDismissed}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		width := clamp(defaultListWidth, msg.Width-4, 40)
		height := clamp(defaultListHeight, msg.Height-6, 5)
		m.list.SetSize(width, height)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *extrasModel) View() string {
	header := headerStyle.Render(fmt.Sprintf("Extras for: %s", m.itemTitle))
	help := helpStyle.Render("Up/Down navigate | Enter play | esc back")
	return lipgloss.JoinVertical(lipgloss.Left, header, m.list.View(), help)
}

// SelectExtra presents the extras picker for one item. An empty list is
// returned as a dismissal without showing the UI.
func SelectExtra(itemTitle string, available []extras.Extra) (ExtrasResult, error) {
	if len(available) == 0 {
		return ExtrasResult{Action: ExtrasDismissed}, nil
	}

	items := make([]extraItem, len(available))
	for i, extra := range available {
		items[i] = extraItem{Extra: extra}
	}

	finalModel, err := runProgram(newExtrasModel(itemTitle, items))
	if err != nil {
		return ExtrasResult{}, err
	}

	if typed, ok := finalModel.(*extrasModel); ok {
		return typed.result, nil
	}
	return ExtrasResult{}, fmt.Errorf("unexpected program result")
}

func clamp(defaultValue, available, minimum int) int {
	width := defaultValue
	if available > 0 && available < defaultValue {
		width = available
	}
	if width < minimum {
		width = minimum
	}
	return width
}
