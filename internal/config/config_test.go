package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetServerURL(t *testing.T) {
	// Save the original value to restore after the test
	originalValue := ServerURL

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain URL",
			input:    "http://plex.local:32400",
			expected: "http://plex.local:32400",
		},
		{
			name:     "trailing slash trimmed",
			input:    "http://plex.local:32400/",
			expected: "http://plex.local:32400",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			SetServerURL(tc.input)

			assert.Equal(t, tc.expected, ServerURL)
		})
	}

	// Restore the original value
	ServerURL = originalValue
}

func TestSetToken(t *testing.T) {
	originalValue := Token

	SetToken("abc123")
	assert.Equal(t, "abc123", Token)

	Token = originalValue
}

func TestSetDeviceProfile(t *testing.T) {
	originalValue := DeviceProfile

	SetDeviceProfile("tv")
	assert.Equal(t, "tv", DeviceProfile)

	DeviceProfile = originalValue
}
