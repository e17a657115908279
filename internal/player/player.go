// Package player abstracts the media playback engine. The primary
// implementation drives mpv over its JSON IPC socket.
package player

import "context"

// Player is a media playback surface. Implementations own exactly one
// playback process at a time; Load replaces any active media.
type Player interface {
	// Load starts playback of url with the given window title and HTTP
	// headers. The headers must include the server auth token.
	Load(ctx context.Context, url, title string, headers map[string]string) error

	// TogglePause inverts the pause state of the active media.
	TogglePause() error

	// SeekRelative moves the playback position by the given number of
	// seconds (negative values seek backwards).
	SeekRelative(seconds int) error

	// Stop terminates playback and releases the playback process.
	// Stopping an idle player is a no-op.
	Stop() error

	// Done returns a channel that is closed when the playback session ends,
	// whether by Stop, end of media, or the player process exiting.
	Done() <-chan struct{}
}
