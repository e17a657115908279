package plex

import (
	"context"
	"errors"
	"fmt"
)

// GetMetadata fetches full metadata for a single library item.
func (c *Client) GetMetadata(ctx context.Context, ratingKey string) (*Metadata, error) {
	if ratingKey == "" {
		return nil, fmt.Errorf("get metadata: %w", ErrNotFound)
	}

	endpoint := fmt.Sprintf("%s/library/metadata/%s", c.baseURL, ratingKey)

	var envelope Envelope
	if err := c.getJSON(ctx, endpoint, &envelope); err != nil {
		return nil, fmt.Errorf("get metadata for %s: %w", ratingKey, err)
	}

	if len(envelope.MediaContainer.Metadata) == 0 {
		return nil, fmt.Errorf("get metadata for %s: %w", ratingKey, ErrEmptyContainer)
	}

	return &envelope.MediaContainer.Metadata[0], nil
}

// GetExtras fetches the extras (trailers, featurettes, interviews) attached
// to a library item.
func (c *Client) GetExtras(ctx context.Context, ratingKey string) ([]Metadata, error) {
	if ratingKey == "" {
		return nil, fmt.Errorf("get extras: %w", ErrNotFound)
	}

	endpoint := fmt.Sprintf("%s/library/metadata/%s/extras", c.baseURL, ratingKey)

	var envelope Envelope
	if err := c.getJSON(ctx, endpoint, &envelope); err != nil {
		return nil, fmt.Errorf("get extras for %s: %w", ratingKey, err)
	}

	return envelope.MediaContainer.Metadata, nil
}

// IsNotFound reports whether err represents a missing item on the server.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrEmptyContainer)
}
