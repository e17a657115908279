package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mvartia/plexwatch/internal/device"
	"github.com/mvartia/plexwatch/internal/player"
	"github.com/mvartia/plexwatch/internal/plex"
	"github.com/mvartia/plexwatch/internal/stream"
)

// overlayTimeout is how long the transport overlay stays visible after the
// last interaction.
const overlayTimeout = 5 * time.Second

// PlaybackResolver turns a rating key into a playable URL; satisfied by
// *stream.Resolver.
type PlaybackResolver interface {
	Resolve(ctx context.Context, ratingKey string) (*stream.Resolved, error)
}

type playerState int

const (
	stateLoading playerState = iota
	statePlaying
	statePaused
	stateFailed
	stateDismissed
)

func (s playerState) String() string {
	switch s {
	case stateLoading:
		return "loading"
	case statePlaying:
		return "playing"
	case statePaused:
		return "paused"
	case stateFailed:
		return "failed"
	case stateDismissed:
		return "dismissed"
	default:
		return "unknown"
	}
}

type resolvedMsg struct {
	resolved *stream.Resolved
}

type resolveFailedMsg struct {
	err error
}

type playerDoneMsg struct{}

// overlayTickMsg hides the overlay when its generation still matches the
// current one. Every interaction bumps the generation, so ticks scheduled
// before an interaction expire without effect.
type overlayTickMsg struct {
	generation int
}

// PlayerConfig wires a PlayerView to its collaborators.
type PlayerConfig struct {
	RatingKey string
	Title     string
	TypeLabel string
	Resolver  PlaybackResolver
	Player    player.Player
	Profile   device.Profile
	Token     string
	// SeekStep is the relative seek distance in seconds; defaults to 10.
	SeekStep int
}

// PlayerView is the playback screen. It resolves the stream URL, drives the
// player, and renders a transport overlay that auto-hides after 5 seconds of
// inactivity.
type PlayerView struct {
	cfg    PlayerConfig
	ctx    context.Context
	cancel context.CancelFunc

	state          playerState
	failure        error
	spinner        spinner.Model
	overlayVisible bool
	overlayGen     int
	width          int
}

// NewPlayerView creates a playback screen for one item. The view owns a
// context that is cancelled on dismiss, aborting any in-flight resolution.
func NewPlayerView(cfg PlayerConfig) *PlayerView {
	if cfg.SeekStep <= 0 {
		cfg.SeekStep = 10
	}

	ctx, cancel := context.WithCancel(context.Background())

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return &PlayerView{
		cfg:     cfg,
		ctx:     ctx,
		cancel:  cancel,
		state:   stateLoading,
		spinner: sp,
	}
}

func (m *PlayerView) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.resolveCmd())
}

func (m *PlayerView) resolveCmd() tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		resolved, err := m.cfg.Resolver.Resolve(ctx, m.cfg.RatingKey)
		if err != nil {
			return resolveFailedMsg{err: err}
		}
		return resolvedMsg{resolved: resolved}
	}
}

func (m *PlayerView) waitDoneCmd() tea.Cmd {
	done := m.cfg.Player.Done()
	if done == nil {
		return nil
	}
	return func() tea.Msg {
		<-done
		return playerDoneMsg{}
	}
}

func (m *PlayerView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case resolvedMsg:
		if m.state == stateDismissed {
			return m, nil
		}
		headers := map[string]string{plex.TokenHeader: m.cfg.Token}
		if err := m.cfg.Player.Load(m.ctx, msg.resolved.URL.String(), m.cfg.Title, headers); err != nil {
			m.state = stateFailed
			m.failure = err
			return m, nil
		}
		slog.Debug("Playback started",
			"ratingKey", m.cfg.RatingKey,
			"strategy", msg.resolved.Strategy.String())
		m.state = statePlaying
		return m, tea.Batch(m.showOverlay(), m.waitDoneCmd())

	case resolveFailedMsg:
		if m.state == stateDismissed {
			return m, nil
		}
		m.state = stateFailed
		m.failure = msg.err
		return m, nil

	case playerDoneMsg:
		if m.state == stateDismissed {
			return m, nil
		}
		return m.dismiss()

	case overlayTickMsg:
		if msg.generation == m.overlayGen {
			m.overlayVisible = false
		}
		return m, nil

	case spinner.TickMsg:
		if m.state != stateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	}

	return m, nil
}

func (m *PlayerView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Remote-equipped devices get a dedicated back key.
	if m.cfg.Profile.RemoteInput && key == "backspace" {
		return m.dismiss()
	}

	switch key {
	case "esc", "q", "ctrl+c":
		return m.dismiss()

	case " ", "enter", "p":
		switch m.state {
		case statePlaying:
			if err := m.cfg.Player.TogglePause(); err != nil {
				slog.Debug("Pause toggle failed", "error", err)
				return m, nil
			}
			m.state = statePaused
		case statePaused:
			if err := m.cfg.Player.TogglePause(); err != nil {
				slog.Debug("Pause toggle failed", "error", err)
				return m, nil
			}
			m.state = statePlaying
		}
		return m, m.showOverlay()

	case "left":
		if m.state == statePlaying || m.state == statePaused {
			if err := m.cfg.Player.SeekRelative(-m.cfg.SeekStep); err != nil {
				slog.Debug("Seek failed", "error", err)
			}
		}
		return m, m.showOverlay()

	case "right":
		if m.state == statePlaying || m.state == statePaused {
			if err := m.cfg.Player.SeekRelative(m.cfg.SeekStep); err != nil {
				slog.Debug("Seek failed", "error", err)
			}
		}
		return m, m.showOverlay()

	case "up", "down":
		return m, m.showOverlay()

	case "r":
		if m.state == stateFailed {
			m.state = stateLoading
			m.failure = nil
			return m, tea.Batch(m.spinner.Tick, m.resolveCmd())
		}
	}

	return m, nil
}

// showOverlay makes the transport overlay visible and schedules the
// auto-hide tick for the new generation.
func (m *PlayerView) showOverlay() tea.Cmd {
	m.overlayVisible = true
	m.overlayGen++
	gen := m.overlayGen
	return tea.Tick(overlayTimeout, func(time.Time) tea.Msg {
		return overlayTickMsg{generation: gen}
	})
}

func (m *PlayerView) dismiss() (tea.Model, tea.Cmd) {
	m.state = stateDismissed
	m.overlayVisible = false
	m.overlayGen++
	m.cancel()
	if err := m.cfg.Player.Stop(); err != nil {
		slog.Debug("Player stop failed", "error", err)
	}
	return m, tea.Quit
}

func (m *PlayerView) View() string {
	switch m.state {
	case stateLoading:
		return fmt.Sprintf("%s Resolving %s...", m.spinner.View(), m.cfg.Title)

	case stateFailed:
		message := "Playback could not be started."
		if m.failure != nil {
			message = m.failure.Error()
		}
		box := errorBoxStyle.Render(message)
		help := helpStyle.Render("r retry | esc back")
		return lipgloss.JoinVertical(lipgloss.Left, box, help)

	case statePlaying, statePaused:
		if !m.overlayVisible {
			return ""
		}
		return m.renderOverlay()

	default:
		return ""
	}
}

func (m *PlayerView) renderOverlay() string {
	glyph := "▶"
	if m.state == statePaused {
		glyph = "⏸"
	}

	title := overlayTitleStyle.Render(m.cfg.Title)
	label := overlayLabelStyle.Render(fmt.Sprintf("[%s]", strings.ToUpper(m.cfg.TypeLabel)))
	transport := fmt.Sprintf("%s  ←/→ seek %ds", glyph, m.cfg.SeekStep)

	dismissHint := "esc dismiss"
	if m.cfg.Profile.RemoteInput {
		dismissHint = "back dismiss"
	}
	help := helpStyle.Render("space play/pause | " + dismissHint)

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Left, label, " ", title),
		transport,
		help,
	)
	return overlayStyle.Render(content)
}
