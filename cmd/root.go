package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/mvartia/plexwatch/internal/cache"
	"github.com/mvartia/plexwatch/internal/config"
	"github.com/mvartia/plexwatch/internal/device"
	"github.com/mvartia/plexwatch/internal/extras"
	"github.com/mvartia/plexwatch/internal/people"
	"github.com/mvartia/plexwatch/internal/player"
	"github.com/mvartia/plexwatch/internal/plex"
	"github.com/mvartia/plexwatch/internal/stream"
	"github.com/mvartia/plexwatch/internal/tui"
)

var (
	runDetail   = tui.ShowDetail
	selectExtra = tui.SelectExtra
	runPlayback = tui.RunPlayer
)

// CLI represents the complete command structure for the plexwatch application
type CLI struct {
	// Global flags
	Server  string `help:"Media server base URL (overrides config)"`
	Token   string `help:"Server auth token (overrides config)"`
	Profile string `help:"Device capability profile name (desktop, tv)"`

	// Cache flags
	CacheDBFile string `help:"Path to cache SQLite database file" default:"./cache.db"`
	CacheTTL    string `help:"Cache time-to-live duration (e.g., 720h for 30 days)" default:"720h"`

	Watch  WatchCmd  `cmd:"" help:"Show details and cast & crew for a library item"`
	Extras ExtrasCmd `cmd:"" help:"Browse and play trailers and extras for a library item"`
	Play   PlayCmd   `cmd:"" help:"Play a library item directly"`
	Cache  CacheCmd  `cmd:"" help:"Cache management commands"`
}

// WatchCmd represents the watch command
type WatchCmd struct {
	RatingKey string `arg:"" help:"Rating key of the library item"`
}

// ExtrasCmd represents the extras command
type ExtrasCmd struct {
	RatingKey string `arg:"" help:"Rating key of the library item"`
}

// PlayCmd represents the play command
type PlayCmd struct {
	RatingKey string `arg:"" help:"Rating key of the item to play"`
}

// CacheCmd represents cache management commands
type CacheCmd struct {
	Invalidate cache.InvalidateCacheCmd `cmd:"" help:"Invalidate cached data for a source"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging()
	initConfig()

	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("plexwatch"),
		kong.Description("A terminal client for browsing and playing media from a Plex-compatible server."),
		kong.UsageOnError(),
	)

	// Update global config based on parsed flags
	updateGlobalConfig(&cli)

	err := ctx.Run()
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetDefault("plex.server", "http://127.0.0.1:32400")
	viper.SetDefault("device.profile", "desktop")
	viper.SetDefault("device.profiles_file", "")
	viper.SetDefault("player.seekstep", 10)

	// Cache defaults
	viper.SetDefault("cache.dbfile", "./cache.db")
	viper.SetDefault("cache.ttl", "720h") // 30 days

	// Enable environment variable support
	viper.AutomaticEnv()
	// Bind specific environment variables to config keys
	if err := viper.BindEnv("plex.token", "PLEX_TOKEN"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}
	if err := viper.BindEnv("plex.server", "PLEX_SERVER"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Info("Config file not found, writing default config file...")
			if err := viper.SafeWriteConfig(); err != nil {
				slog.Error("Error writing config file", "error", err)
			}
			os.Exit(0)
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	// Initialize global config
	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	if cli.Server != "" {
		viper.Set("plex.server", cli.Server)
		config.SetServerURL(cli.Server)
	}
	if cli.Token != "" {
		viper.Set("plex.token", cli.Token)
		config.SetToken(cli.Token)
	}
	if cli.Profile != "" {
		viper.Set("device.profile", cli.Profile)
		config.SetDeviceProfile(cli.Profile)
	}

	// Update cache config
	viper.Set("cache.dbfile", cli.CacheDBFile)
	viper.Set("cache.ttl", cli.CacheTTL)
}

func newClient() (*plex.Client, error) {
	if config.Token == "" {
		return nil, fmt.Errorf("server token is required (provide via --token flag, plex.token in config, or PLEX_TOKEN)")
	}
	return plex.NewClient(config.ServerURL, config.Token), nil
}

// playItem opens the playback screen for one rating key.
func playItem(client *plex.Client, ratingKey, title, typeLabel string) error {
	profile, err := device.Load(viper.GetString("device.profiles_file"), config.DeviceProfile)
	if err != nil {
		return err
	}

	resolver := stream.NewResolver(client.BaseURL(), client.Token(), client)

	return runPlayback(tui.PlayerConfig{
		RatingKey: ratingKey,
		Title:     title,
		TypeLabel: typeLabel,
		Resolver:  resolver,
		Player:    player.NewMPV(),
		Profile:   profile,
		Token:     client.Token(),
		SeekStep:  config.SeekStepSeconds,
	})
}

// Run methods for each command

func (w *WatchCmd) Run() error {
	client, err := newClient()
	if err != nil {
		return err
	}

	meta, fromCache, err := client.CachedGetMetadata(context.Background(), w.RatingKey)
	if err != nil {
		if plex.IsNotFound(err) {
			return fmt.Errorf("item %s not found on server", w.RatingKey)
		}
		return err
	}
	slog.Debug("Metadata loaded", "ratingKey", w.RatingKey, "fromCache", fromCache)

	row := tui.NewCastRow(people.FromMetadata(meta), tui.CastRowConfig{
		ServerURL: client.BaseURL(),
		Token:     client.Token(),
		Doer:      http.DefaultClient,
		ExitUp:    true,
	})

	return runDetail(tui.NewDetailView(meta.Title, meta.Year, meta.Summary, row))
}

func (e *ExtrasCmd) Run() error {
	client, err := newClient()
	if err != nil {
		return err
	}

	meta, _, err := client.CachedGetMetadata(context.Background(), e.RatingKey)
	if err != nil {
		if plex.IsNotFound(err) {
			return fmt.Errorf("item %s not found on server", e.RatingKey)
		}
		return err
	}

	entries, fromCache, err := client.CachedGetExtras(context.Background(), e.RatingKey)
	if err != nil && !plex.IsNotFound(err) {
		return err
	}
	slog.Debug("Extras loaded", "ratingKey", e.RatingKey, "count", len(entries), "fromCache", fromCache)

	result, err := selectExtra(meta.Title, extras.FromMetadata(entries))
	if err != nil {
		return err
	}
	if result.Action != tui.ExtrasSelected || result.Selection == nil {
		return nil
	}

	selection := result.Selection
	return playItem(client, selection.RatingKey, selection.Title, selection.Label())
}

func (p *PlayCmd) Run() error {
	client, err := newClient()
	if err != nil {
		return err
	}

	meta, _, err := client.CachedGetMetadata(context.Background(), p.RatingKey)
	if err != nil {
		if plex.IsNotFound(err) {
			return fmt.Errorf("item %s not found on server", p.RatingKey)
		}
		return err
	}

	typeLabel := extras.TypeLabel(meta.ExtraType)
	if meta.ExtraType == 0 && meta.Type != "" {
		typeLabel = strings.ToUpper(meta.Type[:1]) + meta.Type[1:]
	}

	return playItem(client, meta.RatingKey, meta.Title, typeLabel)
}

func initLogging() {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("PLEXWATCH_LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	// Create a human-readable handler for logging
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: level,
	})

	// Set the default logger
	slog.SetDefault(slog.New(handler))
}
