package stream

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/mvartia/plexwatch/internal/errors"
	"github.com/mvartia/plexwatch/internal/plex"
)

type fakeFetcher struct {
	meta  *plex.Metadata
	err   error
	calls int
}

func (f *fakeFetcher) GetMetadata(ctx context.Context, ratingKey string) (*plex.Metadata, error) {
	f.calls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.meta, nil
}

func TestResolveDirectPlay(t *testing.T) {
	fetcher := &fakeFetcher{
		meta: &plex.Metadata{
			RatingKey: "5201",
			Media: []plex.Media{
				{Parts: []plex.Part{{Key: "/library/parts/9101/file.mkv"}}},
			},
		},
	}
	resolver := NewResolver("http://plex.test:32400", "tok", fetcher)

	resolved, err := resolver.Resolve(context.Background(), "5201")
	require.NoError(t, err)
	assert.Equal(t, DirectPlay, resolved.Strategy)
	assert.Equal(t, "/library/parts/9101/file.mkv", resolved.URL.Path)
	assert.Equal(t, 1, fetcher.calls)
}

func TestResolveFallsBackWhenNoPart(t *testing.T) {
	fetcher := &fakeFetcher{
		meta: &plex.Metadata{RatingKey: "5201"},
	}
	resolver := NewResolver("http://plex.test:32400", "tok", fetcher)

	resolved, err := resolver.Resolve(context.Background(), "5201")
	require.NoError(t, err)
	assert.Equal(t, DirectStream, resolved.Strategy)
	assert.Equal(t, "/library/metadata/5201/stream", resolved.URL.Path)
	// Metadata is fetched once; the fallback does not refetch.
	assert.Equal(t, 1, fetcher.calls)
}

func TestResolveFallsBackWhenMetadataFetchFails(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("server unreachable")}
	resolver := NewResolver("http://plex.test:32400", "tok", fetcher)

	resolved, err := resolver.Resolve(context.Background(), "5201")
	require.NoError(t, err)
	assert.Equal(t, DirectStream, resolved.Strategy)
}

func TestResolveTerminalFailure(t *testing.T) {
	// An empty server URL makes both strategies fail; the resolver must
	// return an explicit error instead of hanging.
	fetcher := &fakeFetcher{err: errors.New("server unreachable")}
	resolver := NewResolver("", "tok", fetcher)

	_, err := resolver.Resolve(context.Background(), "5201")
	require.Error(t, err)
	assert.True(t, apperrors.IsPlaybackSetupError(err))

	var setupErr *apperrors.PlaybackSetupError
	require.True(t, errors.As(err, &setupErr))
	assert.Equal(t, []string{"direct-play", "direct-stream"}, setupErr.Attempts)
}

func TestResolveMissingRatingKey(t *testing.T) {
	resolver := NewResolver("http://plex.test:32400", "tok", &fakeFetcher{})

	_, err := resolver.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrNoRatingKey)
}

func TestResolveHonorsContextCancellation(t *testing.T) {
	fetcher := &fakeFetcher{
		meta: &plex.Metadata{RatingKey: "5201"},
	}
	resolver := NewResolver("http://plex.test:32400", "tok", fetcher)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := resolver.Resolve(ctx, "5201")
	assert.ErrorIs(t, err, context.Canceled)
}
