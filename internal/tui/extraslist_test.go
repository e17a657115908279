package tui

import (
	"bytes"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvartia/plexwatch/internal/extras"
)

func testExtras() []extras.Extra {
	return []extras.Extra{
		{RatingKey: "5301", Title: "Heat - Theatrical Trailer", ExtraType: extras.TypeTrailer},
		{RatingKey: "5302", Title: "The Making of Heat", ExtraType: extras.TypeBehindTheScenes},
		{RatingKey: "5303", Title: "Unknown Bonus", ExtraType: 42},
	}
}

func TestExtraItemTitleIncludesLabel(t *testing.T) {
	item := extraItem{Extra: testExtras()[0]}
	assert.Equal(t, "[TRAILER] Heat - Theatrical Trailer", item.Title())
	assert.Equal(t, "Heat - Theatrical Trailer", item.FilterValue())
}

func TestExtraItemUnknownTypeLabel(t *testing.T) {
	item := extraItem{Extra: testExtras()[2]}
	assert.Equal(t, "[EXTRA] Unknown Bonus", item.Title())
}

func TestExtraDelegateRenderTruncatesOnCells(t *testing.T) {
	delegate := newExtraDelegate()
	item := extraItem{Extra: extras.Extra{
		RatingKey: "5304",
		Title:     "Señorita Extraordinaria",
		ExtraType: extras.TypeTrailer,
	}}

	m := list.New([]list.Item{item}, delegate, 30, 5)

	var buf bytes.Buffer
	delegate.Render(&buf, m, 0, item)

	rendered := buf.String()
	// Width 30 leaves 17 cells for the title after the label and padding.
	assert.Contains(t, rendered, "Señorita Extra...")
	assert.True(t, utf8.ValidString(rendered))
}

func TestExtrasModelSelect(t *testing.T) {
	items := make([]extraItem, len(testExtras()))
	for i, extra := range testExtras() {
		items[i] = extraItem{Extra: extra}
	}
	m := newExtrasModel("Heat", items)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model := updated.(*extrasModel)

	assert.Equal(t, ExtrasSelected, model.result.Action)
	require.NotNil(t, model.result.Selection)
	assert.Equal(t, "5301", model.result.Selection.RatingKey)
	assert.NotNil(t, cmd)
}

func TestExtrasModelDismiss(t *testing.T) {
	m := newExtrasModel("Heat", []extraItem{{Extra: testExtras()[0]}})

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	model := updated.(*extrasModel)

	assert.Equal(t, ExtrasDismissed, model.result.Action)
	assert.Nil(t, model.result.Selection)
}

func TestSelectExtraEmptyList(t *testing.T) {
	result, err := SelectExtra("Heat", nil)

	require.NoError(t, err)
	assert.Equal(t, ExtrasDismissed, result.Action)
}

func TestSelectExtraRunsProgram(t *testing.T) {
	original := runProgram
	defer func() { runProgram = original }()

	runProgram = func(m tea.Model) (tea.Model, error) {
		model := m.(*extrasModel)
		updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
		return updated, nil
	}

	result, err := SelectExtra("Heat", testExtras())

	require.NoError(t, err)
	assert.Equal(t, ExtrasSelected, result.Action)
	require.NotNil(t, result.Selection)
	assert.Equal(t, "5301", result.Selection.RatingKey)
}
