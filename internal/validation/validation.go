// Package validation validates external identifiers and normalizes cache keys.
package validation

import (
	"regexp"
	"strings"
)

// VideoIDPattern matches YouTube video IDs: 11 characters of the URL-safe
// base64 alphabet.
var VideoIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

// PlaylistIDPattern matches YouTube playlist IDs, e.g. "PLabc...".
var PlaylistIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{13,64}$`)

// ValidateVideoID checks if an ID matches the expected video ID format.
func ValidateVideoID(id string) bool {
	return VideoIDPattern.MatchString(id)
}

// ValidatePlaylistID checks if an ID matches the expected playlist ID format.
func ValidatePlaylistID(id string) bool {
	return PlaylistIDPattern.MatchString(id)
}

// NormalizeKey builds a cache key from one or more natural identifiers.
// Parts are trimmed, lower-cased and joined with underscores so identical
// logical inputs always produce the same key.
func NormalizeKey(parts ...string) string {
	normalized := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			normalized = append(normalized, p)
		}
	}
	return strings.Join(normalized, "_")
}
