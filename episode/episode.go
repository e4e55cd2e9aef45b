// Package episode maps (season, episode) pairs onto the absolute numbering
// used by sources that count episodes continuously across seasons.
package episode

import (
	"context"
	"time"

	"github.com/anisan-cli/peel/cinemeta"
	"github.com/anisan-cli/peel/log"
	"github.com/anisan-cli/peel/mal"
	"github.com/anisan-cli/peel/source"
	"github.com/samber/mo"
)

// CrossReferencer translates a content id into an IMDb id.
type CrossReferencer interface {
	CrossReference(ctx context.Context, contentID string, mediaType source.MediaType) mo.Option[string]
}

// EpisodeLister returns the canonical episode list of a series.
type EpisodeLister interface {
	Episodes(ctx context.Context, imdbID string) ([]cinemeta.Video, error)
}

// AirDater returns the release day of an episode or movie.
type AirDater interface {
	AirDate(ctx context.Context, imdbID string, mediaType source.MediaType, season, episode int) (time.Time, error)
}

// MALMapper lists the MyAnimeList entries sharing an IMDb id.
type MALMapper interface {
	MyAnimeList(ctx context.Context, imdbID string) ([]int, error)
}

// AnimeIndex is the MyAnimeList catalog.
type AnimeIndex interface {
	Anime(ctx context.Context, id int) (*mal.Anime, error)
	Episodes(ctx context.Context, id int) ([]mal.Episode, error)
}

// Sources are the services a Synchronizer reads from.
// Mapper, AirDates and Index are only needed by AbsoluteByAirDate.
type Sources struct {
	XRef     CrossReferencer
	Episodes EpisodeLister
	AirDates AirDater
	Mapper   MALMapper
	Index    AnimeIndex
}

// Config tunes a Synchronizer.
type Config struct {
	// Tolerance widens every air date comparison on both sides.
	Tolerance time.Duration
	// Now closes the window of shows still airing. Defaults to time.Now.
	Now func() time.Time
}

// Match is the outcome of the air date lookup.
type Match struct {
	MalID int    `json:"malId"`
	Title string `json:"title,omitempty"`
	Type  string `json:"type,omitempty"`
	// Episode is zero when the entry matched but none of its episodes aired near the target day.
	Episode int `json:"episode,omitempty"`
}

// Synchronizer is safe for concurrent use.
type Synchronizer struct {
	src       Sources
	tolerance time.Duration
	now       func() time.Time
	log       *log.Logger
}

// New returns a Synchronizer reading from src.
func New(cfg Config, src Sources) *Synchronizer {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Tolerance < 0 {
		cfg.Tolerance = -cfg.Tolerance
	}

	return &Synchronizer{
		src:       src,
		tolerance: cfg.Tolerance,
		now:       cfg.Now,
		log:       log.For("episode"),
	}
}

// AbsoluteEpisode returns the 1-based position of (season, episode) in the canonical
// episode list of contentID. Movies, specials and every lookup failure yield mo.None,
// in which case callers keep the per-season number.
func (s *Synchronizer) AbsoluteEpisode(ctx context.Context, contentID string, mediaType source.MediaType, season, episode int) mo.Option[int] {
	if contentID == "" || mediaType == source.Movie || season <= 0 {
		return mo.None[int]()
	}

	l := s.log.With("content", contentID)

	imdbID, ok := s.src.XRef.CrossReference(ctx, contentID, mediaType).Get()
	if !ok {
		l.Debugf("no cross reference")
		return mo.None[int]()
	}

	videos, err := s.src.Episodes.Episodes(ctx, imdbID)
	if err != nil {
		l.Warnf("episodes of %s: %v", imdbID, err)
		return mo.None[int]()
	}

	abs, ok := AbsoluteIndex(videos, season, episode)
	if !ok {
		l.Debugf("S%02dE%02d not listed for %s", season, episode, imdbID)
		return mo.None[int]()
	}

	l.Infof("S%02dE%02d -> %d", season, episode, abs)
	return mo.Some(abs)
}
