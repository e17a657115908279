package stream

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvartia/plexwatch/internal/testutil"
)

func TestStrategyString(t *testing.T) {
	assert.Equal(t, "direct-play", DirectPlay.String())
	assert.Equal(t, "direct-stream", DirectStream.String())
	assert.Equal(t, "hls-transcode", HLSTranscode.String())
	assert.Equal(t, "unknown", Strategy(99).String())
}

func TestBuildURLDirectPlay(t *testing.T) {
	u, err := BuildURL("http://plex.test:32400", "tok", "5201", "/library/parts/9101/file.mkv", DirectPlay)
	require.NoError(t, err)

	assert.Equal(t, "/library/parts/9101/file.mkv", u.Path)
	assert.Equal(t, "tok", u.Query().Get("X-Plex-Token"))
}

func TestBuildURLDirectPlayRequiresPartKey(t *testing.T) {
	_, err := BuildURL("http://plex.test:32400", "tok", "5201", "", DirectPlay)
	assert.ErrorIs(t, err, ErrMissingPartKey)
}

func TestBuildURLDirectStream(t *testing.T) {
	u, err := BuildURL("http://plex.test:32400", "tok", "5201", "", DirectStream)
	require.NoError(t, err)

	assert.Equal(t, "/library/metadata/5201/stream", u.Path)
	assert.Equal(t, "0", u.Query().Get("download"))
	assert.Equal(t, "tok", u.Query().Get("X-Plex-Token"))
}

func TestBuildURLHLSTranscode(t *testing.T) {
	u, err := BuildURL("http://plex.test:32400", "tok", "5201", "", HLSTranscode)
	require.NoError(t, err)

	assert.Contains(t, u.Path, "/transcode/universal/start.m3u8")
	assert.Equal(t, "/library/metadata/5201", u.Query().Get("path"))
	assert.Equal(t, "hls", u.Query().Get("protocol"))
	assert.Equal(t, "tok", u.Query().Get("X-Plex-Token"))
}

func TestBuildURLGolden(t *testing.T) {
	golden := testutil.NewGoldenHelper(t, "testdata")

	var lines []string
	for _, strategy := range []Strategy{DirectPlay, DirectStream, HLSTranscode} {
		u, err := BuildURL("http://plex.test:32400/", "secret", "5301", "library/parts/9101/file.mkv", strategy)
		require.NoError(t, err)
		lines = append(lines, fmt.Sprintf("%s: %s", strategy, u.String()))
	}

	golden.AssertGoldenString("stream_urls.golden", strings.Join(lines, "\n")+"\n")
}

func TestBuildURLValidation(t *testing.T) {
	testCases := []struct {
		name      string
		serverURL string
		ratingKey string
		strategy  Strategy
		expected  error
	}{
		{
			name:      "missing server",
			serverURL: "",
			ratingKey: "5201",
			strategy:  DirectStream,
			expected:  ErrMissingServer,
		},
		{
			name:      "missing rating key",
			serverURL: "http://plex.test:32400",
			ratingKey: "",
			strategy:  DirectStream,
			expected:  ErrMissingRatingKey,
		},
		{
			name:      "unknown strategy",
			serverURL: "http://plex.test:32400",
			ratingKey: "5201",
			strategy:  Strategy(42),
			expected:  ErrUnknownStrategy,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildURL(tc.serverURL, "tok", tc.ratingKey, "", tc.strategy)
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func TestBuildURLEmptyTokenOmitsParam(t *testing.T) {
	u, err := BuildURL("http://plex.test:32400", "", "5201", "", DirectStream)
	require.NoError(t, err)

	assert.Equal(t, "", u.Query().Get("X-Plex-Token"))
}
