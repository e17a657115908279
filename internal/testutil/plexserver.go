package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// NewPlexServer starts an httptest server that answers the given paths with
// JSON media container payloads. Unknown paths return 404. The server is
// closed on test cleanup.
func NewPlexServer(t *testing.T, responses map[string]string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := responses[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

// MetadataResponse builds a single-item metadata container payload with one
// playable media part.
func MetadataResponse(ratingKey, title string) string {
	return fmt.Sprintf(`{
		"MediaContainer": {
			"size": 1,
			"Metadata": [{
				"ratingKey": %q,
				"key": "/library/metadata/%s",
				"type": "movie",
				"title": %q,
				"Media": [{
					"id": 1,
					"Part": [{"id": 9101, "key": "/library/parts/9101/file.mkv"}]
				}]
			}]
		}
	}`, ratingKey, ratingKey, title)
}

// ExtrasResponse builds an extras container payload with one trailer.
func ExtrasResponse(ratingKey, title string) string {
	return fmt.Sprintf(`{
		"MediaContainer": {
			"size": 1,
			"Metadata": [{
				"ratingKey": %q,
				"key": "/library/metadata/%s",
				"type": "clip",
				"title": %q,
				"extraType": 1,
				"Media": [{
					"id": 2,
					"Part": [{"id": 9201, "key": "/library/parts/9201/trailer.mkv"}]
				}]
			}]
		}
	}`, ratingKey, ratingKey, title)
}
