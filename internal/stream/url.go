// Package stream builds playback URLs for Plex-compatible servers and
// resolves the best strategy for a given item.
package stream

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Strategy selects how the server delivers a stream to the player.
type Strategy int

const (
	// DirectPlay streams the original file part untouched. Requires a part key.
	DirectPlay Strategy = iota
	// DirectStream remuxes the file into a compatible container without re-encoding.
	DirectStream
	// HLSTranscode re-encodes the item into an HLS stream.
	HLSTranscode
)

func (s Strategy) String() string {
	switch s {
	case DirectPlay:
		return "direct-play"
	case DirectStream:
		return "direct-stream"
	case HLSTranscode:
		return "hls-transcode"
	default:
		return "unknown"
	}
}

var (
	// ErrMissingServer is returned when no server URL is supplied.
	ErrMissingServer = errors.New("missing server URL")
	// ErrMissingRatingKey is returned when no item identifier is supplied.
	ErrMissingRatingKey = errors.New("missing rating key")
	// ErrMissingPartKey is returned when direct play is requested without a part key.
	ErrMissingPartKey = errors.New("direct play requires a part key")
	// ErrUnknownStrategy is returned for an unrecognized strategy value.
	ErrUnknownStrategy = errors.New("unknown playback strategy")
)

// BuildURL constructs a playback URL for the given item and strategy.
// The returned URL always carries the auth token as a query parameter.
func BuildURL(serverURL, token, ratingKey, partKey string, strategy Strategy) (*url.URL, error) {
	if serverURL == "" {
		return nil, ErrMissingServer
	}
	if ratingKey == "" {
		return nil, ErrMissingRatingKey
	}

	base := strings.TrimSuffix(serverURL, "/")

	switch strategy {
	case DirectPlay:
		if partKey == "" {
			return nil, ErrMissingPartKey
		}
		if !strings.HasPrefix(partKey, "/") {
			partKey = "/" + partKey
		}
		return parseWithToken(base+partKey, token, nil)

	case DirectStream:
		endpoint := fmt.Sprintf("%s/library/metadata/%s/stream", base, url.PathEscape(ratingKey))
		params := url.Values{}
		params.Set("download", "0")
		return parseWithToken(endpoint, token, params)

	case HLSTranscode:
		endpoint := base + "/video/:/transcode/universal/start.m3u8"
		params := url.Values{}
		params.Set("path", "/library/metadata/"+ratingKey)
		params.Set("protocol", "hls")
		params.Set("fastSeek", "1")
		return parseWithToken(endpoint, token, params)

	default:
		return nil, ErrUnknownStrategy
	}
}

func parseWithToken(endpoint, token string, params url.Values) (*url.URL, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("build stream URL: %w", err)
	}

	query := u.Query()
	for key, values := range params {
		for _, value := range values {
			query.Set(key, value)
		}
	}
	if token != "" && query.Get("X-Plex-Token") == "" {
		query.Set("X-Plex-Token", token)
	}
	u.RawQuery = query.Encode()
	return u, nil
}
