package player

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	mpvBinary         = "mpv"
	socketDialTimeout = 5 * time.Second
	socketDialRetry   = 100 * time.Millisecond
)

// ErrNotLoaded is returned for transport commands sent before Load.
var ErrNotLoaded = errors.New("no active playback")

// MPV drives an mpv process over its JSON IPC socket.
type MPV struct {
	mu         sync.Mutex
	binary     string
	socketPath string
	cmd        *exec.Cmd
	conn       net.Conn
	done       chan struct{}
	stopped    bool
}

var _ Player = (*MPV)(nil)

// NewMPV creates an idle mpv-backed player.
func NewMPV() *MPV {
	return &MPV{binary: mpvBinary}
}

// Load spawns mpv for the given URL and connects to its IPC socket.
func (m *MPV) Load(ctx context.Context, url, title string, headers map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cmd != nil {
		return errors.New("player already active")
	}

	m.socketPath = filepath.Join(os.TempDir(), fmt.Sprintf("plexwatch-mpv-%d.sock", os.Getpid()))
	args := buildArgs(url, title, m.socketPath, headers)

	cmd := exec.CommandContext(ctx, m.binary, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	conn, err := dialSocket(ctx, m.socketPath)
	if err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return fmt.Errorf("connect mpv ipc: %w", err)
	}

	m.cmd = cmd
	m.conn = conn
	m.stopped = false
	m.done = make(chan struct{})

	done := m.done
	go func() {
		err := cmd.Wait()
		if err != nil {
			slog.Debug("mpv exited", "error", err)
		}
		m.mu.Lock()
		m.cmd = nil
		if m.conn != nil {
			_ = m.conn.Close()
			m.conn = nil
		}
		m.mu.Unlock()
		close(done)
	}()

	return nil
}

// TogglePause inverts the pause property of the active media.
func (m *MPV) TogglePause() error {
	return m.sendCommand("cycle", "pause")
}

// SeekRelative moves the playback position by seconds.
func (m *MPV) SeekRelative(seconds int) error {
	return m.sendCommand("seek", seconds, "relative")
}

// Stop quits mpv and waits for the session to end. Safe to call twice.
func (m *MPV) Stop() error {
	m.mu.Lock()
	if m.stopped || m.cmd == nil {
		m.mu.Unlock()
		return nil
	}
	m.stopped = true
	done := m.done
	m.mu.Unlock()

	if err := m.sendCommand("quit"); err != nil {
		// IPC may already be gone; fall back to killing the process.
		m.mu.Lock()
		if m.cmd != nil && m.cmd.Process != nil {
			_ = m.cmd.Process.Kill()
		}
		m.mu.Unlock()
	}

	if done != nil {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
		}
	}
	return nil
}

// Done returns the channel closed when the playback session ends.
func (m *MPV) Done() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.done
}

func (m *MPV) sendCommand(args ...any) error {
	m.mu.Lock()
	conn := m.conn
	m.mu.Unlock()

	if conn == nil {
		return ErrNotLoaded
	}

	payload, err := json.Marshal(map[string]any{"command": args})
	if err != nil {
		return err
	}
	payload = append(payload, '\n')

	if _, err := conn.Write(payload); err != nil {
		return fmt.Errorf("mpv ipc write: %w", err)
	}
	return nil
}

func dialSocket(ctx context.Context, path string) (net.Conn, error) {
	deadline := time.Now().Add(socketDialTimeout)
	for {
		conn, err := net.Dial("unix", path)
		if err == nil {
			return conn, nil
		}
		if time.Now().After(deadline) {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(socketDialRetry):
		}
	}
}

// buildArgs constructs the mpv command line. Header keys are sorted so the
// argument list is deterministic.
func buildArgs(url, title, socketPath string, headers map[string]string) []string {
	args := []string{
		"--input-ipc-server=" + socketPath,
		"--no-terminal",
		"--force-window=yes",
	}
	if title != "" {
		args = append(args, "--force-media-title="+title)
	}
	if len(headers) > 0 {
		keys := make([]string, 0, len(headers))
		for key := range headers {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		fields := make([]string, 0, len(keys))
		for _, key := range keys {
			fields = append(fields, fmt.Sprintf("%s: %s", key, headers[key]))
		}
		args = append(args, "--http-header-fields="+strings.Join(fields, ","))
	}
	return append(args, url)
}
