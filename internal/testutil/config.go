package testutil

import (
	"testing"

	"github.com/spf13/viper"

	"github.com/mvartia/plexwatch/internal/config"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	ServerURL       string
	Token           string
	DeviceProfile   string
	SeekStepSeconds int
}

// SaveConfigState captures the current state of config package variables.
func SaveConfigState() ConfigState {
	return ConfigState{
		ServerURL:       config.ServerURL,
		Token:           config.Token,
		DeviceProfile:   config.DeviceProfile,
		SeekStepSeconds: config.SeekStepSeconds,
	}
}

// RestoreConfigState restores the config package variables to a saved state.
func RestoreConfigState(state ConfigState) {
	config.ServerURL = state.ServerURL
	config.Token = state.Token
	config.DeviceProfile = state.DeviceProfile
	config.SeekStepSeconds = state.SeekStepSeconds
}

// ResetConfig saves the current config state and schedules restoration
// when the test completes. It also resets viper.
func ResetConfig(t *testing.T) {
	t.Helper()

	// Save current config state
	state := SaveConfigState()

	// Reset viper
	viper.Reset()

	// Schedule restoration on test cleanup
	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetTestConfig sets up a test configuration with common defaults.
// It saves the current state and restores it when the test completes.
func SetTestConfig(t *testing.T) {
	t.Helper()

	// Save current config state
	state := SaveConfigState()

	// Reset viper and set test defaults
	viper.Reset()

	// Set common test defaults
	config.ServerURL = "http://plex.test:32400"
	config.Token = "test-plex-token"
	config.DeviceProfile = "desktop"
	config.SeekStepSeconds = 10

	// Schedule restoration on test cleanup
	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetTestConfigOption is a functional option for configuring test config.
type SetTestConfigOption func(*testConfigOptions)

type testConfigOptions struct {
	serverURL     string
	token         string
	deviceProfile string
	seekStep      int
}

// WithServerURL sets the media server base URL option.
func WithServerURL(url string) SetTestConfigOption {
	return func(o *testConfigOptions) {
		o.serverURL = url
	}
}

// WithToken sets the auth token option.
func WithToken(token string) SetTestConfigOption {
	return func(o *testConfigOptions) {
		o.token = token
	}
}

// WithDeviceProfile sets the device capability profile option.
func WithDeviceProfile(profile string) SetTestConfigOption {
	return func(o *testConfigOptions) {
		o.deviceProfile = profile
	}
}

// SetTestConfigWithOptions sets up a test configuration with custom options.
// It saves the current state and restores it when the test completes.
func SetTestConfigWithOptions(t *testing.T, opts ...SetTestConfigOption) {
	t.Helper()

	// Save current config state
	state := SaveConfigState()

	// Reset viper
	viper.Reset()

	// Set defaults
	options := testConfigOptions{
		serverURL:     "http://plex.test:32400",
		token:         "test-plex-token",
		deviceProfile: "desktop",
		seekStep:      10,
	}

	// Apply options
	for _, opt := range opts {
		opt(&options)
	}

	// Apply to config
	config.ServerURL = options.serverURL
	config.Token = options.token
	config.DeviceProfile = options.deviceProfile
	config.SeekStepSeconds = options.seekStep

	// Schedule restoration on test cleanup
	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetViperValue sets a viper configuration value and schedules cleanup.
func SetViperValue(t *testing.T, key string, value any) {
	t.Helper()

	// Get the old value (if any)
	oldValue := viper.Get(key)
	hadValue := viper.IsSet(key)

	// Set the new value
	viper.Set(key, value)

	// Schedule cleanup
	t.Cleanup(func() {
		if hadValue {
			viper.Set(key, oldValue)
		}
		// Note: viper doesn't have an Unset function, so we can't
		// restore the "unset" state. This is a known limitation.
	})
}

// SetupTestCache configures viper for test caching with a temporary directory.
// It creates the cache directory and sets up viper configuration.
func SetupTestCache(t *testing.T, env *TestEnv) string {
	t.Helper()

	// Create cache directory
	cacheDir := env.Path("cache")
	env.MkdirAll("cache")

	// Configure viper
	viper.Set("cache.dbfile", env.Path("cache", "test-cache.db"))
	viper.Set("cache.ttl", "24h")

	return cacheDir
}
