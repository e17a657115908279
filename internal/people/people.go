// Package people models cast and crew members for display.
package people

import (
	"fmt"

	"github.com/mvartia/plexwatch/internal/plex"
)

// Person is one cast or crew member.
type Person struct {
	// ID is a stable focus identifier, unique within a Groups value.
	ID string
	// Name is the person's display name.
	Name string
	// Role is the character name or crew function; may be empty.
	Role string
	// Thumb is the raw thumbnail path from the server; may be empty.
	Thumb string
	// Director marks the badge variant on the person card.
	Director bool
}

// Groups holds the three ordered role groups of a detail screen.
type Groups struct {
	Directors []Person
	Cast      []Person
	Writers   []Person
}

// FromMetadata builds the display groups from item metadata. Writers whose
// name exactly matches a director's name are suppressed to avoid showing the
// same person twice.
func FromMetadata(meta *plex.Metadata) Groups {
	var groups Groups
	if meta == nil {
		return groups
	}

	directorNames := make(map[string]bool, len(meta.Director))
	for i, tag := range meta.Director {
		directorNames[tag.Tag] = true
		groups.Directors = append(groups.Directors, Person{
			ID:       fmt.Sprintf("director-%d", i),
			Name:     tag.Tag,
			Role:     "Director",
			Thumb:    tag.Thumb,
			Director: true,
		})
	}

	for i, tag := range meta.Role {
		groups.Cast = append(groups.Cast, Person{
			ID:    fmt.Sprintf("cast-%d", i),
			Name:  tag.Tag,
			Role:  tag.Role,
			Thumb: tag.Thumb,
		})
	}

	for i, tag := range meta.Writer {
		if directorNames[tag.Tag] {
			continue
		}
		groups.Writers = append(groups.Writers, Person{
			ID:    fmt.Sprintf("writer-%d", i),
			Name:  tag.Tag,
			Role:  "Writer",
			Thumb: tag.Thumb,
		})
	}

	return groups
}

// All returns the groups flattened in display order: directors, cast, writers.
func (g Groups) All() []Person {
	all := make([]Person, 0, len(g.Directors)+len(g.Cast)+len(g.Writers))
	all = append(all, g.Directors...)
	all = append(all, g.Cast...)
	all = append(all, g.Writers...)
	return all
}

// Empty reports whether no group has members.
func (g Groups) Empty() bool {
	return len(g.Directors) == 0 && len(g.Cast) == 0 && len(g.Writers) == 0
}

// DefaultFocus returns the focus identifier of the default focus target:
// the first director, else the first cast member, else the first writer.
// The second return value is false when all groups are empty.
func (g Groups) DefaultFocus() (string, bool) {
	switch {
	case len(g.Directors) > 0:
		return g.Directors[0].ID, true
	case len(g.Cast) > 0:
		return g.Cast[0].ID, true
	case len(g.Writers) > 0:
		return g.Writers[0].ID, true
	default:
		return "", false
	}
}

// Contains reports whether id references a member of any group.
func (g Groups) Contains(id string) bool {
	for _, person := range g.All() {
		if person.ID == id {
			return true
		}
	}
	return false
}
