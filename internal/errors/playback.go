package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoRatingKey is returned when an item has no rating key to resolve.
	ErrNoRatingKey = errors.New("item has no rating key")
	// ErrNoPlayablePart is returned when metadata contains no playable part.
	ErrNoPlayablePart = errors.New("no playable media part in metadata")
)

// PlaybackSetupError reports that every playback strategy attempted for an
// item failed. It carries the attempted strategy names in order.
type PlaybackSetupError struct {
	RatingKey string
	Attempts  []string
	Err       error
}

func (e *PlaybackSetupError) Error() string {
	return fmt.Sprintf("playback setup failed for %s (tried %s): %v",
		e.RatingKey, strings.Join(e.Attempts, ", "), e.Err)
}

func (e *PlaybackSetupError) Unwrap() error {
	return e.Err
}

// NewPlaybackSetupError creates a PlaybackSetupError for the given item.
func NewPlaybackSetupError(ratingKey string, attempts []string, err error) *PlaybackSetupError {
	return &PlaybackSetupError{RatingKey: ratingKey, Attempts: attempts, Err: err}
}

// IsPlaybackSetupError reports whether err is a PlaybackSetupError (even when wrapped).
func IsPlaybackSetupError(err error) bool {
	var setupErr *PlaybackSetupError
	return errors.As(err, &setupErr)
}
