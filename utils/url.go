package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizeStreamURL validates and re-encodes a playback URL received from
// an external stream source. Candidates are forwarded straight to browsers,
// so anything but http/https (file:, data:, smb:, ...) is refused, and raw
// spaces, which some sources leave in file paths, are percent-encoded.
func NormalizeStreamURL(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid stream url: %w", err)
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", fmt.Errorf("unsupported stream url scheme %q", scheme)
	}

	normalized := scheme + "://" + parsed.Host + parsed.EscapedPath()
	if parsed.RawQuery != "" {
		normalized += "?" + strings.ReplaceAll(parsed.RawQuery, " ", "%20")
	}
	return normalized, nil
}
