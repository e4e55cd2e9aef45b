package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/anisan-cli/peel/filesystem"
	"github.com/anisan-cli/peel/network"
	. "github.com/smartystreets/goconvey/convey"
)

var sample = []Entry{
	{ID: 1, Title: "L'Attaque des Titans", TitleO: "Shingeki no Kyojin"},
	{ID: 2, Title: "The Rising of the Shield Hero", TitleO: "Tate no Yuusha no Nariagari"},
	{ID: 3, Title: "Pokémon : Les Voyages"},
	{ID: 4, Title: "One Piece"},
	{ID: 5, Title: "One Punch Man"},
}

func TestNormalize(t *testing.T) {
	Convey("Normalize", t, func() {
		So(Normalize("The Rising of the Shield Hero!"), ShouldEqual, "rising of shield hero")
		So(Normalize("  Pokémon :  L'Été  "), ShouldEqual, "pokemon lete")
		So(Normalize("Re:Zero, Starting Life?"), ShouldEqual, "rezero starting life")
		So(Normalize("Theater"), ShouldEqual, "theater")
		So(Normalize(""), ShouldBeEmpty)
	})
}

func TestMatch(t *testing.T) {
	Convey("Match", t, func() {
		Convey("Should match exact titles on either field", func() {
			e, ok := Match(sample, "shingeki no kyojin")
			So(ok, ShouldBeTrue)
			So(e.ID, ShouldEqual, 1)

			e, _ = Match(sample, "Rising of the Shield Hero")
			So(e.ID, ShouldEqual, 2)
		})

		Convey("Should prefer exact matches over partial ones", func() {
			e, _ := Match(sample, "One Piece")
			So(e.ID, ShouldEqual, 4)
		})

		Convey("Should match titles containing the query", func() {
			e, ok := Match(sample, "Pokemon")
			So(ok, ShouldBeTrue)
			So(e.ID, ShouldEqual, 3)
		})

		Convey("Should fall back to the closest fuzzy match", func() {
			e, ok := Match(sample, "one pnch man")
			So(ok, ShouldBeTrue)
			So(e.ID, ShouldEqual, 5)
		})

		Convey("Should report misses", func() {
			_, ok := Match(sample, "Naruto")
			So(ok, ShouldBeFalse)

			_, ok = Match(sample, "  ")
			So(ok, ShouldBeFalse)

			_, ok = Match(nil, "One Piece")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestCatalog(t *testing.T) {
	Convey("Catalog", t, func() {
		ctx := context.Background()
		f := network.NewFetcher(http.DefaultClient, 2*time.Second)

		var hits atomic.Int32
		failures := atomic.Int32{}
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			if failures.Load() > 0 {
				failures.Add(-1)
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			time.Sleep(10 * time.Millisecond)
			_, _ = fmt.Fprint(w, `[{"id":4,"title":"One Piece"},{"id":5,"title":"One Punch Man","titleO":"Wanpanman"}]`)
		}))
		defer srv.Close()

		Convey("Should load once for concurrent callers", func() {
			c := New(srv.URL+"/animes/", f)

			var wg sync.WaitGroup
			for i := 0; i < 8; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, _ = c.Entries(ctx)
				}()
			}
			wg.Wait()

			entries, err := c.Entries(ctx)
			So(err, ShouldBeNil)
			So(entries, ShouldHaveLength, 2)
			So(hits.Load(), ShouldEqual, 1)
		})

		Convey("Should not cache failures", func() {
			failures.Store(1)
			c := New(srv.URL, f)

			So(c.Find(ctx, "One Piece").IsAbsent(), ShouldBeTrue)

			e, ok := c.Find(ctx, "wanpanman").Get()
			So(ok, ShouldBeTrue)
			So(e.ID, ShouldEqual, 5)
			So(hits.Load(), ShouldEqual, 2)
		})

		Convey("Should read local files", func() {
			filesystem.SetMemMapFs()
			defer filesystem.SetOsFs()

			So(filesystem.API().WriteFile("/data/catalog.json", []byte(`[{"id":9,"title":"Frieren"}]`), 0o644), ShouldBeNil)

			e, ok := New("/data/catalog.json", f).Find(ctx, "frieren").Get()
			So(ok, ShouldBeTrue)
			So(e.ID, ShouldEqual, 9)

			_, err := New("/data/missing.json", f).Entries(ctx)
			So(err, ShouldNotBeNil)
		})

		Convey("Should refuse to load without a location", func() {
			_, err := New("", f).Entries(ctx)
			So(errors.Is(err, ErrNoLocation), ShouldBeTrue)
		})
	})
}
