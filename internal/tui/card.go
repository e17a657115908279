package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mvartia/plexwatch/internal/people"
)

const (
	cardWidth       = 20
	cardImageHeight = 6
)

// ImageState tracks the lifecycle of a card's thumbnail.
type ImageState int

const (
	// ImagePending means the thumbnail fetch has not completed yet.
	ImagePending ImageState = iota
	// ImageLoaded means the rendered preview is available.
	ImageLoaded
	// ImageFailed means the fetch or decode failed; a placeholder is shown.
	ImageFailed
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(cardWidth)

	cardFocusedStyle = cardStyle.Copy().
				BorderForeground(lipgloss.Color("214"))

	cardNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("254"))

	cardRoleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("247")).
			Faint(true)

	directorBadgeStyle = lipgloss.NewStyle().
				Bold(true).
				Padding(0, 1).
				Background(lipgloss.Color("62")).
				Foreground(lipgloss.Color("230"))

	placeholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))
)

// cardImage is the thumbnail slot of one card.
type cardImage struct {
	state   ImageState
	preview string
}

// renderCard draws a fixed-size person card. The spinner frame animates the
// pending image placeholder.
func renderCard(person people.Person, img cardImage, focused bool, spinnerFrame string) string {
	var imageZone string
	switch img.state {
	case ImageLoaded:
		imageZone = img.preview
	case ImageFailed:
		imageZone = placeholderBlock("▒")
	default:
		imageZone = placeholderBlock("·")
		if spinnerFrame != "" {
			imageZone = spinnerFrame + "\n" + imageZone
			lines := strings.Split(imageZone, "\n")
			imageZone = strings.Join(lines[:cardImageHeight], "\n")
		}
	}

	innerWidth := cardWidth - 2
	name := cardNameStyle.Render(truncate(person.Name, innerWidth))

	parts := []string{imageZone, name}
	if person.Director {
		parts = append(parts, directorBadgeStyle.Render("DIRECTOR"))
	} else if person.Role != "" {
		parts = append(parts, cardRoleStyle.Render(truncate(person.Role, innerWidth)))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)
	if focused {
		return cardFocusedStyle.Render(content)
	}
	return cardStyle.Render(content)
}

func placeholderBlock(fill string) string {
	row := strings.Repeat(fill, cardWidth-2)
	rows := make([]string, cardImageHeight)
	for i := range rows {
		rows[i] = row
	}
	return placeholderStyle.Render(strings.Join(rows, "\n"))
}

func truncate(value string, width int) string {
	value = strings.Join(strings.Fields(value), " ")
	runes := []rune(value)
	if width <= 0 || len(runes) <= width {
		return value
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
