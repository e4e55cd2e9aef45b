package episode

import (
	"cmp"
	"slices"

	"github.com/anisan-cli/peel/cinemeta"
	"github.com/samber/lo"
)

type slot struct {
	season, episode int
}

// Canonical drops specials, sorts by (season, episode) and keeps the first video of every pair.
func Canonical(videos []cinemeta.Video) []cinemeta.Video {
	regular := lo.Filter(videos, func(v cinemeta.Video, _ int) bool {
		return v.Season > 0 && v.Episode > 0
	})

	slices.SortStableFunc(regular, func(a, b cinemeta.Video) int {
		return cmp.Or(cmp.Compare(a.Season, b.Season), cmp.Compare(a.Episode, b.Episode))
	})

	return lo.UniqBy(regular, func(v cinemeta.Video) slot {
		return slot{v.Season, v.Episode}
	})
}

// AbsoluteIndex returns the 1-based position of (season, episode) in the canonical form of videos.
func AbsoluteIndex(videos []cinemeta.Video, season, episode int) (int, bool) {
	_, index, ok := lo.FindIndexOf(Canonical(videos), func(v cinemeta.Video) bool {
		return v.Season == season && v.Episode == episode
	})
	if !ok {
		return 0, false
	}
	return index + 1, true
}
