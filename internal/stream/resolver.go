package stream

import (
	"context"
	"log/slog"
	"net/url"

	apperrors "github.com/mvartia/plexwatch/internal/errors"
	"github.com/mvartia/plexwatch/internal/plex"
)

// MetadataFetcher fetches item metadata; satisfied by *plex.Client.
type MetadataFetcher interface {
	GetMetadata(ctx context.Context, ratingKey string) (*plex.Metadata, error)
}

// Resolved is the outcome of a successful resolution: a ready-to-play URL
// and the strategy that produced it.
type Resolved struct {
	URL      *url.URL
	Strategy Strategy
}

// Resolver turns a rating key into a playable URL. It tries direct play via
// the item's first media part, falls back to direct stream exactly once, and
// reports a terminal error when neither works.
type Resolver struct {
	serverURL string
	token     string
	fetcher   MetadataFetcher
}

// NewResolver creates a Resolver backed by the given metadata fetcher.
func NewResolver(serverURL, token string, fetcher MetadataFetcher) *Resolver {
	return &Resolver{
		serverURL: serverURL,
		token:     token,
		fetcher:   fetcher,
	}
}

// Resolve runs the resolution policy for one item. The context is expected
// to be tied to the lifetime of the screen requesting playback; cancelling
// it aborts the in-flight metadata fetch.
func (r *Resolver) Resolve(ctx context.Context, ratingKey string) (*Resolved, error) {
	if ratingKey == "" {
		return nil, apperrors.ErrNoRatingKey
	}

	attempts := make([]string, 0, 2)

	directPlay, err := r.tryDirectPlay(ctx, ratingKey)
	if err == nil {
		return directPlay, nil
	}
	attempts = append(attempts, DirectPlay.String())
	slog.Debug("Direct play unavailable, falling back", "ratingKey", ratingKey, "error", err)

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	fallback, fallbackErr := BuildURL(r.serverURL, r.token, ratingKey, "", DirectStream)
	if fallbackErr == nil {
		return &Resolved{URL: fallback, Strategy: DirectStream}, nil
	}
	attempts = append(attempts, DirectStream.String())

	return nil, apperrors.NewPlaybackSetupError(ratingKey, attempts, fallbackErr)
}

func (r *Resolver) tryDirectPlay(ctx context.Context, ratingKey string) (*Resolved, error) {
	meta, err := r.fetcher.GetMetadata(ctx, ratingKey)
	if err != nil {
		return nil, err
	}

	partKey := meta.FirstPartKey()
	if partKey == "" {
		return nil, apperrors.ErrNoPlayablePart
	}

	u, err := BuildURL(r.serverURL, r.token, ratingKey, partKey, DirectPlay)
	if err != nil {
		return nil, err
	}
	return &Resolved{URL: u, Strategy: DirectPlay}, nil
}
