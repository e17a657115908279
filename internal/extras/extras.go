// Package extras models trailers and other bonus content attached to a
// library item.
package extras

import "github.com/mvartia/plexwatch/internal/plex"

// Extra type codes as reported by the server.
const (
	TypeTrailer = iota + 1
	TypeDeletedScene
	TypeFeaturette
	TypeBehindTheScenes
	TypeInterview
	TypeScene
	TypeShort
)

// Extra is one playable bonus item.
type Extra struct {
	RatingKey string
	Title     string
	ExtraType int
	Key       string
}

// FromMetadata converts server metadata entries into Extra values.
func FromMetadata(entries []plex.Metadata) []Extra {
	result := make([]Extra, 0, len(entries))
	for _, entry := range entries {
		result = append(result, Extra{
			RatingKey: entry.RatingKey,
			Title:     entry.Title,
			ExtraType: entry.ExtraType,
			Key:       entry.Key,
		})
	}
	return result
}

// TypeLabel maps an extra type code to its display label. Codes outside the
// known range map to "Extra".
func TypeLabel(extraType int) string {
	switch extraType {
	case TypeTrailer:
		return "Trailer"
	case TypeDeletedScene:
		return "Deleted Scene"
	case TypeFeaturette:
		return "Featurette"
	case TypeBehindTheScenes:
		return "Behind the Scenes"
	case TypeInterview:
		return "Interview"
	case TypeScene:
		return "Scene"
	case TypeShort:
		return "Short"
	default:
		return "Extra"
	}
}

// Label returns the display label for this extra's type.
func (e Extra) Label() string {
	return TypeLabel(e.ExtraType)
}
