package episode

import (
	"context"
	"time"

	"github.com/anisan-cli/peel/mal"
	"github.com/anisan-cli/peel/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// AbsoluteByAirDate locates an episode by its release day instead of its position.
//
// The MyAnimeList entries sharing the IMDb id of contentID are visited in order;
// the first one whose broadcast window (widened by the tolerance) contains the
// release day decides the result. Movies and one-episode entries map to episode 1,
// otherwise the entry's episode aired within tolerance of the day is used.
func (s *Synchronizer) AbsoluteByAirDate(ctx context.Context, contentID string, mediaType source.MediaType, season, episode int) mo.Option[Match] {
	if contentID == "" {
		return mo.None[Match]()
	}

	l := s.log.With("content", contentID)

	imdbID, ok := s.src.XRef.CrossReference(ctx, contentID, mediaType).Get()
	if !ok {
		l.Debugf("no cross reference")
		return mo.None[Match]()
	}

	day, err := s.src.AirDates.AirDate(ctx, imdbID, mediaType, season, episode)
	if err != nil {
		l.Warnf("air date of %s: %v", imdbID, err)
		return mo.None[Match]()
	}

	candidates, err := s.src.Mapper.MyAnimeList(ctx, imdbID)
	if err != nil {
		l.Warnf("mal ids of %s: %v", imdbID, err)
		return mo.None[Match]()
	}

	for _, id := range candidates {
		anime, err := s.src.Index.Anime(ctx, id)
		if err != nil {
			l.Debugf("candidate %d: %v", id, err)
			continue
		}

		start, end, ok := anime.Aired.Window(s.now(), s.tolerance)
		if !ok || day.Before(start) || day.After(end) {
			continue
		}

		match := Match{MalID: id, Title: anime.Title, Type: anime.Type}
		if anime.IsSingle() {
			match.Episode = 1
			return mo.Some(match)
		}

		episodes, err := s.src.Index.Episodes(ctx, id)
		if err != nil {
			l.Warnf("episodes of %d: %v", id, err)
			return mo.Some(match)
		}

		if ep, ok := lo.Find(episodes, func(ep mal.Episode) bool {
			return ep.Aired != nil && absDuration(ep.Aired.Sub(day)) <= s.tolerance
		}); ok {
			match.Episode = ep.MalID
		}

		l.Infof("%s aired %s -> mal %d episode %d", imdbID, day.Format(time.DateOnly), id, match.Episode)
		return mo.Some(match)
	}

	l.Debugf("no entry aired around %s", day.Format(time.DateOnly))
	return mo.None[Match]()
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
