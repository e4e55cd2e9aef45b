// Package catalog holds a static list of titles fetched once per process
// and matches free-form titles against it.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/anisan-cli/peel/filesystem"
	"github.com/anisan-cli/peel/log"
	"github.com/anisan-cli/peel/network"
	"github.com/samber/mo"
	"golang.org/x/sync/singleflight"
)

// ErrNoLocation is returned by Load when the catalog has no source configured.
var ErrNoLocation = errors.New("catalog location is not set")

// Entry is a catalog title. TitleO is the original (romanized) title.
type Entry struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	TitleO string `json:"titleO,omitempty"`
}

// Catalog is safe for concurrent use. The first successful load is kept;
// failed loads are retried on the next call.
type Catalog struct {
	location string
	get      network.Getter
	group    singleflight.Group
	entries  atomic.Pointer[[]Entry]
	log      *log.Logger
}

// New returns a catalog read from location, an http(s) URL or a local file path.
func New(location string, g network.Getter) *Catalog {
	return &Catalog{location: strings.TrimSpace(location), get: g, log: log.For("catalog")}
}

// Entries returns the catalog, loading it on first use.
func (c *Catalog) Entries(ctx context.Context) ([]Entry, error) {
	if loaded := c.entries.Load(); loaded != nil {
		return *loaded, nil
	}

	v, err, _ := c.group.Do("load", func() (any, error) {
		if loaded := c.entries.Load(); loaded != nil {
			return *loaded, nil
		}

		entries, err := c.load(ctx)
		if err != nil {
			return nil, err
		}

		c.entries.Store(&entries)
		c.log.Infof("loaded %d titles from %s", len(entries), c.location)
		return entries, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Entry), nil
}

func (c *Catalog) load(ctx context.Context) ([]Entry, error) {
	if c.location == "" {
		return nil, ErrNoLocation
	}

	var entries []Entry
	if network.IsHTTP(c.location) {
		if err := network.GetJSON(ctx, c.get, c.location, &entries); err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		return entries, nil
	}

	data, err := filesystem.API().ReadFile(c.location)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("catalog: decode %s: %w", c.location, err)
	}
	return entries, nil
}

// Find loads the catalog and matches title against it.
func (c *Catalog) Find(ctx context.Context, title string) mo.Option[Entry] {
	entries, err := c.Entries(ctx)
	if err != nil {
		c.log.Warnf("find %q: %v", title, err)
		return mo.None[Entry]()
	}

	entry, ok := Match(entries, title)
	if !ok {
		c.log.Debugf("no match for %q", title)
		return mo.None[Entry]()
	}
	return mo.Some(entry)
}
