package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// ServerURL is the base URL of the Plex-compatible media server
	ServerURL string
	// Token is the X-Plex-Token used to authenticate against the server
	Token string
	// DeviceProfile is the name of the active device capability profile
	DeviceProfile string
	// SeekStepSeconds is the relative seek distance for transport controls
	SeekStepSeconds int
)

// InitConfig initializes the global configuration
func InitConfig() {
	// Set default values
	viper.SetDefault("plex.server", "http://127.0.0.1:32400")
	viper.SetDefault("device.profile", "desktop")
	viper.SetDefault("player.seekstep", 10)

	// Get values from viper
	ServerURL = strings.TrimSuffix(viper.GetString("plex.server"), "/")
	Token = viper.GetString("plex.token")
	DeviceProfile = viper.GetString("device.profile")
	SeekStepSeconds = viper.GetInt("player.seekstep")
}

// SetServerURL sets the media server base URL, trimming any trailing slash
func SetServerURL(serverURL string) {
	ServerURL = strings.TrimSuffix(serverURL, "/")
}

// SetToken sets the auth token
func SetToken(token string) {
	Token = token
}

// SetDeviceProfile sets the active device capability profile name
func SetDeviceProfile(profile string) {
	DeviceProfile = profile
}
