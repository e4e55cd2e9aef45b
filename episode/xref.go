package episode

import (
	"context"
	"fmt"
	"regexp"

	"github.com/anisan-cli/peel/log"
	"github.com/anisan-cli/peel/source"
	"github.com/samber/mo"
)

// IMDbSource maps a content id onto an IMDb id.
type IMDbSource interface {
	IMDb(ctx context.Context, contentID string, mediaType source.MediaType) (string, error)
}

var imdbID = regexp.MustCompile(`^tt\d+$`)

// IMDbPassthrough returns content ids that already are IMDb ids.
// It goes first in a ChainXRef so both IMDb and TMDB ids are accepted.
type IMDbPassthrough struct{}

// IMDb implements IMDbSource.
func (IMDbPassthrough) IMDb(_ context.Context, contentID string, _ source.MediaType) (string, error) {
	if !imdbID.MatchString(contentID) {
		return "", fmt.Errorf("%q is not an imdb id", contentID)
	}
	return contentID, nil
}

// ChainXRef asks each source in turn and keeps the first answer.
type ChainXRef []IMDbSource

// CrossReference implements CrossReferencer.
func (c ChainXRef) CrossReference(ctx context.Context, contentID string, mediaType source.MediaType) mo.Option[string] {
	l := log.For("xref").With("content", contentID)

	for i, src := range c {
		id, err := src.IMDb(ctx, contentID, mediaType)
		if err != nil {
			l.Debugf("source %d: %v", i, err)
			continue
		}
		if id != "" {
			return mo.Some(id)
		}
	}
	return mo.None[string]()
}
