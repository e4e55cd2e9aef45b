// Package cinemeta is a client for the Cinemeta metadata addon,
// the canonical source of (season, episode) lists keyed by IMDb id.
package cinemeta

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/anisan-cli/peel/network"
	"github.com/anisan-cli/peel/source"
	"github.com/samber/lo"
)

// ErrNoAirDate is returned when the requested entry has no release date.
var ErrNoAirDate = errors.New("no air date")

// Video is one episode of a series.
type Video struct {
	ID       string `json:"id,omitempty"`
	Title    string `json:"title,omitempty"`
	Season   int    `json:"season"`
	Episode  int    `json:"episode"`
	Released string `json:"released,omitempty"`
}

// Meta is the metadata of a movie or series.
type Meta struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	Name     string  `json:"name"`
	Released string  `json:"released,omitempty"`
	Videos   []Video `json:"videos,omitempty"`
}

type metaResponse struct {
	Meta *Meta `json:"meta"`
}

// Client queries the addon rooted at base.
type Client struct {
	base string
	get  network.Getter
}

// New returns a client for the addon at base, e.g. https://v3-cinemeta.strem.io.
func New(base string, g network.Getter) *Client {
	return &Client{base: strings.TrimSuffix(base, "/"), get: g}
}

// Meta returns the metadata of imdbID.
func (c *Client) Meta(ctx context.Context, mediaType source.MediaType, imdbID string) (*Meta, error) {
	kind := "series"
	if mediaType == source.Movie {
		kind = "movie"
	}

	var resp metaResponse
	endpoint := fmt.Sprintf("%s/meta/%s/%s.json", c.base, kind, url.PathEscape(imdbID))
	if err := network.GetJSON(ctx, c.get, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("cinemeta: %w", err)
	}
	if resp.Meta == nil {
		return nil, fmt.Errorf("cinemeta: no meta for %s %s", kind, imdbID)
	}
	return resp.Meta, nil
}

// Episodes returns the videos of a series as listed by the addon.
func (c *Client) Episodes(ctx context.Context, imdbID string) ([]Video, error) {
	meta, err := c.Meta(ctx, source.Series, imdbID)
	if err != nil {
		return nil, err
	}
	return meta.Videos, nil
}

// AirDate returns the release day of an episode, or of the movie itself.
func (c *Client) AirDate(ctx context.Context, imdbID string, mediaType source.MediaType, season, episode int) (time.Time, error) {
	meta, err := c.Meta(ctx, mediaType, imdbID)
	if err != nil {
		return time.Time{}, err
	}

	released := meta.Released
	if mediaType != source.Movie {
		video, ok := lo.Find(meta.Videos, func(v Video) bool {
			return v.Season == season && v.Episode == episode
		})
		if !ok {
			return time.Time{}, fmt.Errorf("cinemeta: %s S%02dE%02d: %w", imdbID, season, episode, ErrNoAirDate)
		}
		released = video.Released
	}

	day, err := ParseDay(released)
	if err != nil {
		return time.Time{}, fmt.Errorf("cinemeta: %s: %w", imdbID, err)
	}
	return day, nil
}

// ParseDay returns the UTC day of an ISO 8601 timestamp such as 2013-04-07T02:00:00.000Z.
func ParseDay(s string) (time.Time, error) {
	day, _, _ := strings.Cut(strings.TrimSpace(s), "T")
	if day == "" {
		return time.Time{}, ErrNoAirDate
	}
	return time.Parse(time.DateOnly, day)
}
