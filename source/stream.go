// Package source defines the stream candidates exchanged between scrapers and the resolver.
package source

import (
	"net/url"
	"path"
	"strings"
)

// MediaType distinguishes series from movies in metadata lookups.
type MediaType string

const (
	Series MediaType = "series"
	Movie  MediaType = "movie"
)

// ParseMediaType maps user input onto a MediaType. Anything that is not a movie is a series.
func ParseMediaType(s string) MediaType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie", "film":
		return Movie
	default:
		return Series
	}
}

// Stream is a candidate link produced by a site scraper.
type Stream struct {
	Name    string  `json:"name"`
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Quality string  `json:"quality,omitempty"`
	Headers Headers `json:"headers,omitempty"`
}

// String returns the title or URL for display.
func (s Stream) String() string {
	if s.Title != "" {
		return s.Title
	}
	return s.URL
}

// Extension returns the lowercased extension of the URL path without the dot.
func (s Stream) Extension() string {
	u, err := url.Parse(s.URL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(path.Ext(u.Path)), ".")
}

// Resolved is the outcome of resolving a Stream.
type Resolved struct {
	Stream

	// IsDirect is set when URL points at playable media and Headers are enough to fetch it.
	IsDirect bool `json:"isDirect"`
	// OriginalURL keeps the embed page the media was extracted from.
	OriginalURL string `json:"originalUrl,omitempty"`
}
