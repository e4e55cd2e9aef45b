// Package tmdb scrapes public TMDB title pages.
package tmdb

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/anisan-cli/peel/network"
	"github.com/anisan-cli/peel/source"
	"github.com/samber/lo"
)

var (
	imdbLink = regexp.MustCompile(`imdb\.com/title/(tt\d+)`)
	latin    = regexp.MustCompile(`^[\x00-\x7F\x{00C0}-\x{024F}\s]+$`)
)

// Client reads title pages from the TMDB website.
type Client struct {
	web string
	get network.Getter
}

// New returns a client for the website at web, e.g. https://www.themoviedb.org.
func New(web string, g network.Getter) *Client {
	return &Client{web: strings.TrimSuffix(web, "/"), get: g}
}

// PageURL returns the title page of id.
func (c *Client) PageURL(id string, mediaType source.MediaType) string {
	kind := "tv"
	if mediaType == source.Movie {
		kind = "movie"
	}
	return fmt.Sprintf("%s/%s/%s", c.web, kind, id)
}

// IMDb returns the IMDb id linked from the title page.
func (c *Client) IMDb(ctx context.Context, id string, mediaType source.MediaType) (string, error) {
	page, err := c.get.Fetch(ctx, c.PageURL(id, mediaType))
	if err != nil {
		return "", fmt.Errorf("tmdb: %w", err)
	}

	m := imdbLink.FindStringSubmatch(page.Body)
	if m == nil {
		return "", fmt.Errorf("tmdb: no imdb link on %s %s", mediaType, id)
	}
	return m[1], nil
}

// Title returns the English title shown on the title page, without the release year.
func (c *Client) Title(ctx context.Context, id string, mediaType source.MediaType) (string, error) {
	doc, err := c.document(ctx, id, mediaType, "en-US")
	if err != nil {
		return "", err
	}

	title := pageTitle(doc)
	if title == "" {
		return "", fmt.Errorf("tmdb: no title on %s %s", mediaType, id)
	}
	return title, nil
}

// Titles returns the names a title is searched by, in order: English, the original
// title when it is written in Latin script, then French. Duplicates are dropped.
// Only a failure of the English page is an error.
func (c *Client) Titles(ctx context.Context, id string, mediaType source.MediaType) ([]string, error) {
	doc, err := c.document(ctx, id, mediaType, "en-US")
	if err != nil {
		return nil, err
	}

	titles := []string{pageTitle(doc), originalTitle(doc)}
	if !latin.MatchString(titles[1]) {
		titles[1] = ""
	}

	if fr, err := c.document(ctx, id, mediaType, "fr-FR"); err == nil {
		titles = append(titles, pageTitle(fr))
	}

	titles = lo.Uniq(lo.Compact(titles))
	if len(titles) == 0 {
		return nil, fmt.Errorf("tmdb: no title on %s %s", mediaType, id)
	}
	return titles, nil
}

func (c *Client) document(ctx context.Context, id string, mediaType source.MediaType, language string) (*goquery.Document, error) {
	page, err := c.get.Fetch(ctx, c.PageURL(id, mediaType)+"?language="+language)
	if err != nil {
		return nil, fmt.Errorf("tmdb: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Body))
	if err != nil {
		return nil, fmt.Errorf("tmdb: parse %s %s: %w", mediaType, id, err)
	}
	return doc, nil
}

func pageTitle(doc *goquery.Document) string {
	title := doc.Find(`meta[property="og:title"]`).AttrOr("content", "")
	if title == "" {
		title = doc.Find("h1").First().Text()
	}
	if title == "" {
		title = doc.Find("h2").First().Text()
	}

	title, _, _ = strings.Cut(title, " (")
	title, _, _ = strings.Cut(title, " - ")
	return strings.Join(strings.Fields(title), " ")
}

// originalTitle reads the "Original Title" (movies) or "Original Name" (tv) fact.
func originalTitle(doc *goquery.Document) string {
	var title string
	doc.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		label := strings.TrimSpace(p.Find("strong").First().Text())
		if !strings.EqualFold(label, "Original Title") && !strings.EqualFold(label, "Original Name") {
			return true
		}
		title = strings.Join(strings.Fields(strings.TrimPrefix(strings.TrimSpace(p.Text()), label)), " ")
		return false
	})
	return title
}
