// Package mal provides a client for the Jikan REST API, the public mirror of MyAnimeList.
package mal

import "time"

// Anime is a MyAnimeList entry.
type Anime struct {
	MalID    int    `json:"mal_id"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	Episodes int    `json:"episodes"`
	Aired    Aired  `json:"aired"`
}

// IsSingle reports whether the entry is a movie or a one-episode show.
func (a *Anime) IsSingle() bool {
	return a.Type == "Movie" || a.Episodes == 1
}

// Aired is the broadcast window of an anime. To is nil while airing.
type Aired struct {
	From *time.Time `json:"from"`
	To   *time.Time `json:"to"`
}

// Window returns the broadcast window widened by tolerance on both sides.
// An open window ends at now. ok is false when the start is unknown.
func (a Aired) Window(now time.Time, tolerance time.Duration) (start, end time.Time, ok bool) {
	if a.From == nil {
		return time.Time{}, time.Time{}, false
	}

	end = now
	if a.To != nil {
		end = *a.To
	}
	return a.From.Add(-tolerance), end.Add(tolerance), true
}

// Episode is a single episode of an anime. MalID is its number within the entry.
type Episode struct {
	MalID int        `json:"mal_id"`
	Title string     `json:"title"`
	Aired *time.Time `json:"aired"`
}

type animeResponse struct {
	Data *Anime `json:"data"`
}

type episodesResponse struct {
	Data       []Episode `json:"data"`
	Pagination struct {
		LastVisiblePage int  `json:"last_visible_page"`
		HasNextPage     bool `json:"has_next_page"`
	} `json:"pagination"`
}
