package mal

import (
	"context"
	"fmt"
	"strings"

	"github.com/anisan-cli/peel/log"
	"github.com/anisan-cli/peel/network"
)

// maxEpisodePages bounds the pagination of Episodes. Jikan serves 100 episodes per page.
const maxEpisodePages = 20

// Client queries the Jikan API rooted at base.
type Client struct {
	base string
	get  network.Getter
	log  *log.Logger
}

// New returns a client for the API at base, e.g. https://api.jikan.moe/v4.
func New(base string, g network.Getter) *Client {
	return &Client{base: strings.TrimSuffix(base, "/"), get: g, log: log.For("mal")}
}

// Anime returns the entry with the given id.
func (c *Client) Anime(ctx context.Context, id int) (*Anime, error) {
	var resp animeResponse
	if err := network.GetJSON(ctx, c.get, fmt.Sprintf("%s/anime/%d", c.base, id), &resp); err != nil {
		return nil, fmt.Errorf("mal: anime %d: %w", id, err)
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("mal: anime %d: empty response", id)
	}
	return resp.Data, nil
}

// Episodes lists the episodes of an anime, following pagination.
// A failing page after the first ends the listing with what was collected.
func (c *Client) Episodes(ctx context.Context, id int) ([]Episode, error) {
	var episodes []Episode

	for page := 1; page <= maxEpisodePages; page++ {
		endpoint := fmt.Sprintf("%s/anime/%d/episodes", c.base, id)
		if page > 1 {
			endpoint += fmt.Sprintf("?page=%d", page)
		}

		var resp episodesResponse
		if err := network.GetJSON(ctx, c.get, endpoint, &resp); err != nil {
			if page == 1 {
				return nil, fmt.Errorf("mal: episodes of %d: %w", id, err)
			}
			c.log.Warnf("episodes of %d: page %d: %v", id, page, err)
			break
		}

		episodes = append(episodes, resp.Data...)
		if !resp.Pagination.HasNextPage {
			break
		}
	}

	return episodes, nil
}
