// Package thumb downloads thumbnail images and renders them as ANSI
// half-block previews for terminal display.
package thumb

import (
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"

	"github.com/mvartia/plexwatch/internal/cache"
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Fetch downloads the image at url and renders it as a terminal preview
// that is width cells wide. The context governs the download.
func Fetch(ctx context.Context, doer HTTPDoer, url string, width int) (string, error) {
	if url == "" {
		return "", fmt.Errorf("fetch thumbnail: empty URL")
	}
	if width <= 0 {
		width = 16
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := doer.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch thumbnail: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("fetch thumbnail: unexpected status %d", resp.StatusCode)
	}

	img, err := imaging.Decode(resp.Body, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decode thumbnail: %w", err)
	}

	return Render(img, width), nil
}

// CachedFetch is Fetch backed by the sqlite thumb cache, keyed by URL and
// preview width.
func CachedFetch(ctx context.Context, doer HTTPDoer, url string, width int) (string, error) {
	key := fmt.Sprintf("%s|%d", url, width)
	rendered, _, err := cache.GetOrFetch("thumb_cache", key, func() (string, error) {
		return Fetch(ctx, doer, url, width)
	})
	return rendered, err
}

// Render downscales img to width cells and renders it with unicode upper
// half blocks, two pixel rows per terminal row.
func Render(img image.Image, width int) string {
	resized := imaging.Resize(img, width, 0, imaging.Lanczos)
	bounds := resized.Bounds()

	var sb strings.Builder
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			top := hexColor(resized.At(x, y))
			bottom := top
			if y+1 < bounds.Max.Y {
				bottom = hexColor(resized.At(x, y+1))
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom))
			sb.WriteString(style.Render("▀"))
		}
		if y+2 < bounds.Max.Y {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func hexColor(c interface{ RGBA() (r, g, b, a uint32) }) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
