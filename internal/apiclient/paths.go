package apiclient

import (
	"net/url"
	"strings"
)

// JoinURL concatenates a base URL and a request path so that exactly one slash
// separates them, regardless of a trailing slash on base or a leading slash on path.
func JoinURL(base, path string) string {
	return strings.TrimRight(base, "/") + normalizePath(path)
}

func normalizePath(path string) string {
	return "/" + strings.TrimLeft(path, "/")
}

// EscapePath percent-encodes each "/"-separated segment of value independently.
// Separators stay literal; everything else that is unsafe inside a segment is escaped.
func EscapePath(value string) string {
	segments := strings.Split(value, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

// EscapeSegment percent-encodes value as a single path segment, including any "/".
func EscapeSegment(value string) string {
	return url.PathEscape(value)
}
