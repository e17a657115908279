// Package device describes client playback capabilities. Capability
// profiles replace platform build-tag branching: the active profile is
// selected at startup and consulted wherever behavior differs between
// device classes (television remote vs. desktop keyboard).
package device

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile captures the capabilities of one device class.
type Profile struct {
	// Name identifies the profile ("tv", "desktop", ...).
	Name string `yaml:"name"`
	// RemoteInput enables television-remote command aliases
	// (dedicated play/pause key, menu/back exit key).
	RemoteInput bool `yaml:"remote_input"`
	// SupportsHEVC reports whether the device decodes HEVC natively.
	SupportsHEVC bool `yaml:"supports_hevc"`
	// MaxResolution is the highest vertical resolution the device renders.
	MaxResolution int `yaml:"max_resolution"`
	// MaxBitrate is the highest stream bitrate in kbit/s, 0 for unlimited.
	MaxBitrate int `yaml:"max_bitrate"`
}

// Builtin profiles used when no profiles file is configured.
var builtins = map[string]Profile{
	"desktop": {
		Name:          "desktop",
		RemoteInput:   false,
		SupportsHEVC:  true,
		MaxResolution: 2160,
	},
	"tv": {
		Name:          "tv",
		RemoteInput:   true,
		SupportsHEVC:  true,
		MaxResolution: 2160,
	},
}

type profilesFile struct {
	Profiles []Profile `yaml:"profiles"`
}

// Load returns the named profile, consulting the YAML profiles file at path
// when one is given and falling back to the builtin profiles. Unknown names
// fall back to the desktop profile.
func Load(path, name string) (Profile, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Profile{}, fmt.Errorf("read device profiles: %w", err)
		}

		var file profilesFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return Profile{}, fmt.Errorf("parse device profiles: %w", err)
		}

		for _, profile := range file.Profiles {
			if profile.Name == name {
				return profile, nil
			}
		}
	}

	if profile, ok := builtins[name]; ok {
		return profile, nil
	}
	return builtins["desktop"], nil
}
