package plex

import (
	"net/url"
	"strings"
)

// ThumbURL builds a fetchable URL for a thumbnail path. Paths that already
// carry a scheme are returned unmodified. Server-relative paths are joined to
// the client's base URL and get the auth token appended as a query parameter
// unless one is already present.
func (c *Client) ThumbURL(thumbPath string) string {
	return ThumbURL(c.baseURL, c.token, thumbPath)
}

// ThumbURL is the package-level variant of Client.ThumbURL for callers that
// only hold a server URL and token.
func ThumbURL(serverURL, token, thumbPath string) string {
	if thumbPath == "" {
		return ""
	}
	if strings.Contains(thumbPath, "://") {
		return thumbPath
	}

	base := strings.TrimSuffix(serverURL, "/")
	if !strings.HasPrefix(thumbPath, "/") {
		thumbPath = "/" + thumbPath
	}

	u, err := url.Parse(base + thumbPath)
	if err != nil {
		return base + thumbPath
	}

	query := u.Query()
	if token != "" && query.Get(TokenParam) == "" {
		query.Set(TokenParam, token)
		u.RawQuery = query.Encode()
	}
	return u.String()
}
