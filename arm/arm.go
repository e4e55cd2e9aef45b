// Package arm is a client for the anime relations mapping API,
// which cross-references ids between TMDB, IMDb, MyAnimeList and other catalogs.
package arm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/anisan-cli/peel/log"
	"github.com/anisan-cli/peel/network"
	"github.com/anisan-cli/peel/source"
	"github.com/samber/lo"
)

// Entry is one mapping. Ids a catalog does not know are zero.
type Entry struct {
	AniDB       int    `json:"anidb,omitempty"`
	AniList     int    `json:"anilist,omitempty"`
	IMDb        string `json:"imdb,omitempty"`
	Kitsu       int    `json:"kitsu,omitempty"`
	MyAnimeList int    `json:"myanimelist,omitempty"`
	TheMovieDB  int    `json:"themoviedb,omitempty"`
	TheTVDB     int    `json:"thetvdb,omitempty"`
}

// Client queries the mapping API rooted at base.
type Client struct {
	base string
	get  network.Getter
	log  *log.Logger
}

// New returns a client for the API at base, e.g. https://arm.haglund.dev/api/v2.
func New(base string, g network.Getter) *Client {
	return &Client{base: strings.TrimSuffix(base, "/"), get: g, log: log.For("arm")}
}

// ByTMDB returns the entries mapped to a TMDB id.
func (c *Client) ByTMDB(ctx context.Context, id string) ([]Entry, error) {
	return c.lookup(ctx, "themoviedb", id)
}

// ByIMDb returns the entries mapped to an IMDb id.
func (c *Client) ByIMDb(ctx context.Context, id string) ([]Entry, error) {
	return c.lookup(ctx, "imdb", id)
}

// IMDb returns the IMDb id of a TMDB entry. The mapping API does not distinguish
// movies from shows so mediaType is unused.
func (c *Client) IMDb(ctx context.Context, tmdbID string, _ source.MediaType) (string, error) {
	entries, err := c.ByTMDB(ctx, tmdbID)
	if err != nil {
		return "", err
	}

	entry, ok := lo.Find(entries, func(e Entry) bool { return e.IMDb != "" })
	if !ok {
		return "", fmt.Errorf("arm: no imdb id for tmdb %s", tmdbID)
	}
	return entry.IMDb, nil
}

// MyAnimeList returns the MyAnimeList ids sharing an IMDb id, in API order.
func (c *Client) MyAnimeList(ctx context.Context, imdbID string) ([]int, error) {
	entries, err := c.ByIMDb(ctx, imdbID)
	if err != nil {
		return nil, err
	}

	ids := lo.FilterMap(entries, func(e Entry, _ int) (int, bool) {
		return e.MyAnimeList, e.MyAnimeList > 0
	})
	return lo.Uniq(ids), nil
}

// lookup handles both response shapes of the API: a single object or a list.
func (c *Client) lookup(ctx context.Context, catalog, id string) ([]Entry, error) {
	if id == "" {
		return nil, fmt.Errorf("arm: empty %s id", catalog)
	}

	var raw json.RawMessage
	endpoint := fmt.Sprintf("%s/%s?id=%s", c.base, catalog, url.QueryEscape(id))
	if err := network.GetJSON(ctx, c.get, endpoint, &raw); err != nil {
		return nil, fmt.Errorf("arm: %w", err)
	}

	trimmed := strings.TrimSpace(string(raw))
	switch {
	case trimmed == "null":
		return nil, nil
	case strings.HasPrefix(trimmed, "["):
		var entries []Entry
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, fmt.Errorf("arm: decode %s: %w", catalog, err)
		}
		return entries, nil
	default:
		var entry Entry
		if err := json.Unmarshal(raw, &entry); err != nil {
			return nil, fmt.Errorf("arm: decode %s: %w", catalog, err)
		}
		c.log.Tracef("%s %s: single entry", catalog, id)
		return []Entry{entry}, nil
	}
}
