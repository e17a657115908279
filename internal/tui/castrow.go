package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mvartia/plexwatch/internal/people"
	"github.com/mvartia/plexwatch/internal/plex"
	"github.com/mvartia/plexwatch/internal/thumb"
)

// RowExitMsg is emitted when the user moves focus up and out of the row.
// Parents that embed the row handle it to move focus to the element above.
type RowExitMsg struct{}

type thumbLoadedMsg struct {
	personID string
	preview  string
}

type thumbFailedMsg struct {
	personID string
}

// CastRowConfig wires a CastRow to the server it loads thumbnails from.
type CastRowConfig struct {
	ServerURL string
	Token     string
	Doer      thumb.HTTPDoer
	// ExitUp enables the up-move exit: when set, pressing up clears local
	// focus and emits RowExitMsg instead of being ignored.
	ExitUp bool
}

// CastRow renders directors, cast, and writers as one horizontal sequence of
// person cards with a single focused card.
type CastRow struct {
	cfg    CastRowConfig
	groups people.Groups
	order  []people.Person

	focusID string
	offset  int
	visible int

	images  map[string]cardImage
	spinner spinner.Model
}

// NewCastRow builds a row for the given groups. Focus starts at the default
// target: the first director, else the first cast member, else the first
// writer.
func NewCastRow(groups people.Groups, cfg CastRowConfig) *CastRow {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	row := &CastRow{
		cfg:     cfg,
		visible: 4,
		images:  make(map[string]cardImage),
		spinner: sp,
	}
	row.setGroups(groups)
	return row
}

func (r *CastRow) setGroups(groups people.Groups) {
	r.groups = groups
	r.order = groups.All()
	r.offset = 0
	r.images = make(map[string]cardImage)

	if focus, ok := groups.DefaultFocus(); ok {
		r.focusID = focus
	} else {
		r.focusID = ""
	}
}

// SetGroups replaces the row contents, resetting focus to the default target
// without animation. Called when the displayed item changes.
func (r *CastRow) SetGroups(groups people.Groups) tea.Cmd {
	r.setGroups(groups)
	return r.fetchThumbsCmd()
}

// FocusID returns the identifier of the focused card, or "" when the row is
// empty or focus has moved out of the row.
func (r *CastRow) FocusID() string {
	return r.focusID
}

// Focus gives focus back to the row at its default target.
func (r *CastRow) Focus() {
	if focus, ok := r.groups.DefaultFocus(); ok {
		r.focusID = focus
		r.ensureVisible()
	}
}

func (r *CastRow) Init() tea.Cmd {
	return tea.Batch(r.spinner.Tick, r.fetchThumbsCmd())
}

// fetchThumbsCmd starts one thumbnail fetch per person that has one.
func (r *CastRow) fetchThumbsCmd() tea.Cmd {
	var cmds []tea.Cmd
	for _, person := range r.order {
		if person.Thumb == "" {
			r.images[person.ID] = cardImage{state: ImageFailed}
			continue
		}
		url := plex.ThumbURL(r.cfg.ServerURL, r.cfg.Token, person.Thumb)
		cmds = append(cmds, r.fetchThumbCmd(person.ID, url))
	}
	return tea.Batch(cmds...)
}

func (r *CastRow) fetchThumbCmd(personID, url string) tea.Cmd {
	doer := r.cfg.Doer
	return func() tea.Msg {
		preview, err := thumb.CachedFetch(context.Background(), doer, url, cardWidth-2)
		if err != nil {
			return thumbFailedMsg{personID: personID}
		}
		return thumbLoadedMsg{personID: personID, preview: preview}
	}
}

func (r *CastRow) Update(msg tea.Msg) (*CastRow, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return r.handleKey(msg)

	case thumbLoadedMsg:
		r.images[msg.personID] = cardImage{state: ImageLoaded, preview: msg.preview}
		return r, nil

	case thumbFailedMsg:
		r.images[msg.personID] = cardImage{state: ImageFailed}
		return r, nil

	case spinner.TickMsg:
		if !r.anyPending() {
			return r, nil
		}
		var cmd tea.Cmd
		r.spinner, cmd = r.spinner.Update(msg)
		return r, cmd

	case tea.WindowSizeMsg:
		visible := msg.Width / (cardWidth + 2)
		if visible < 1 {
			visible = 1
		}
		r.visible = visible
		r.ensureVisible()
		return r, nil
	}

	return r, nil
}

func (r *CastRow) handleKey(msg tea.KeyMsg) (*CastRow, tea.Cmd) {
	if r.focusID == "" || len(r.order) == 0 {
		return r, nil
	}

	idx := r.focusIndex()
	switch msg.String() {
	case "left":
		if idx > 0 {
			r.focusID = r.order[idx-1].ID
			r.ensureVisible()
		}
	case "right":
		if idx >= 0 && idx < len(r.order)-1 {
			r.focusID = r.order[idx+1].ID
			r.ensureVisible()
		}
	case "up":
		if r.cfg.ExitUp {
			r.focusID = ""
			return r, func() tea.Msg { return RowExitMsg{} }
		}
	}
	return r, nil
}

func (r *CastRow) focusIndex() int {
	for i, person := range r.order {
		if person.ID == r.focusID {
			return i
		}
	}
	return -1
}

// ensureVisible scrolls the viewport so the focused card stays in view.
func (r *CastRow) ensureVisible() {
	idx := r.focusIndex()
	if idx < 0 {
		return
	}
	if idx < r.offset {
		r.offset = idx
	}
	if idx >= r.offset+r.visible {
		r.offset = idx - r.visible + 1
	}
}

func (r *CastRow) anyPending() bool {
	for _, person := range r.order {
		if img, ok := r.images[person.ID]; !ok || img.state == ImagePending {
			return true
		}
	}
	return false
}

func (r *CastRow) View() string {
	if len(r.order) == 0 {
		return ""
	}

	end := r.offset + r.visible
	if end > len(r.order) {
		end = len(r.order)
	}

	cards := make([]string, 0, end-r.offset)
	frame := r.spinner.View()
	for _, person := range r.order[r.offset:end] {
		img := r.images[person.ID]
		cards = append(cards, renderCard(person, img, person.ID == r.focusID, frame))
	}

	header := headerStyle.Render("Cast & Crew")
	row := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	return lipgloss.JoinVertical(lipgloss.Left, header, row)
}
