package plex

// Envelope is the top-level JSON object returned by Plex-compatible servers.
type Envelope struct {
	MediaContainer MediaContainer `json:"MediaContainer"`
}

// MediaContainer wraps every metadata response from the server.
type MediaContainer struct {
	Size     int        `json:"size"`
	Metadata []Metadata `json:"Metadata"`
}

// Metadata describes a single library item (movie, episode, trailer, extra).
type Metadata struct {
	RatingKey string  `json:"ratingKey"`
	Key       string  `json:"key"`
	Type      string  `json:"type"`
	Title     string  `json:"title"`
	Summary   string  `json:"summary"`
	Thumb     string  `json:"thumb"`
	Art       string  `json:"art"`
	Year      int     `json:"year"`
	Duration  int64   `json:"duration"`
	ExtraType int     `json:"extraType"`
	Media     []Media `json:"Media"`
	Director  []Tag   `json:"Director"`
	Writer    []Tag   `json:"Writer"`
	Role      []Tag   `json:"Role"`
}

// Media is one encoding of an item; each holds one or more file parts.
type Media struct {
	ID              int    `json:"id"`
	VideoCodec      string `json:"videoCodec"`
	AudioCodec      string `json:"audioCodec"`
	VideoResolution string `json:"videoResolution"`
	Container       string `json:"container"`
	Parts           []Part `json:"Part"`
}

// Part is a server-side reference to a concrete playable file.
type Part struct {
	ID  int    `json:"id"`
	Key string `json:"key"`
}

// Tag is a person or label attached to an item. For cast entries Role holds
// the character name; Thumb is a server-relative or absolute image path.
type Tag struct {
	ID    int    `json:"id"`
	Tag   string `json:"tag"`
	Role  string `json:"role"`
	Thumb string `json:"thumb"`
}

// FirstPartKey returns the key of the first present part across the item's
// media entries, or an empty string when the item has no playable part.
func (m *Metadata) FirstPartKey() string {
	for _, media := range m.Media {
		for _, part := range media.Parts {
			if part.Key != "" {
				return part.Key
			}
		}
	}
	return ""
}
