package mal

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anisan-cli/peel/network"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAired(t *testing.T) {
	Convey("Aired.Window", t, func() {
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		from := time.Date(2013, 4, 7, 0, 0, 0, 0, time.UTC)
		to := time.Date(2013, 9, 29, 0, 0, 0, 0, time.UTC)
		tolerance := 48 * time.Hour

		Convey("Should widen closed windows", func() {
			start, end, ok := Aired{From: &from, To: &to}.Window(now, tolerance)
			So(ok, ShouldBeTrue)
			So(start, ShouldEqual, time.Date(2013, 4, 5, 0, 0, 0, 0, time.UTC))
			So(end, ShouldEqual, time.Date(2013, 10, 1, 0, 0, 0, 0, time.UTC))
		})

		Convey("Should end open windows at now", func() {
			_, end, ok := Aired{From: &from}.Window(now, tolerance)
			So(ok, ShouldBeTrue)
			So(end, ShouldEqual, now.Add(tolerance))
		})

		Convey("Should reject windows without a start", func() {
			_, _, ok := Aired{To: &to}.Window(now, tolerance)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestIsSingle(t *testing.T) {
	Convey("IsSingle", t, func() {
		So((&Anime{Type: "Movie", Episodes: 1}).IsSingle(), ShouldBeTrue)
		So((&Anime{Type: "OVA", Episodes: 1}).IsSingle(), ShouldBeTrue)
		So((&Anime{Type: "TV", Episodes: 25}).IsSingle(), ShouldBeFalse)
		So((&Anime{Type: "TV"}).IsSingle(), ShouldBeFalse)
	})
}

func TestClient(t *testing.T) {
	Convey("Given the Jikan API", t, func() {
		mux := http.NewServeMux()
		srv := httptest.NewServer(mux)
		defer srv.Close()

		c := New(srv.URL+"/", network.NewFetcher(http.DefaultClient, 2*time.Second))
		ctx := context.Background()

		mux.HandleFunc("/anime/16498", func(w http.ResponseWriter, r *http.Request) {
			_, _ = fmt.Fprint(w, `{"data":{"mal_id":16498,"title":"Shingeki no Kyojin","type":"TV","episodes":25,
				"aired":{"from":"2013-04-07T00:00:00+00:00","to":"2013-09-29T00:00:00+00:00"}}}`)
		})
		mux.HandleFunc("/anime/7", func(w http.ResponseWriter, r *http.Request) {
			_, _ = fmt.Fprint(w, `{}`)
		})
		mux.HandleFunc("/anime/16498/episodes", func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Query().Get("page") {
			case "":
				_, _ = fmt.Fprint(w, `{"pagination":{"has_next_page":true},"data":[
					{"mal_id":1,"title":"To You, in 2000 Years","aired":"2013-04-07T00:00:00+00:00"},
					{"mal_id":2,"title":"That Day","aired":null}]}`)
			case "2":
				_, _ = fmt.Fprint(w, `{"pagination":{"has_next_page":true},"data":[{"mal_id":101,"title":"Late"}]}`)
			default:
				http.Error(w, "rate limited", http.StatusTooManyRequests)
			}
		})

		Convey("Anime should decode the entry", func() {
			anime, err := c.Anime(ctx, 16498)
			So(err, ShouldBeNil)
			So(anime.Title, ShouldEqual, "Shingeki no Kyojin")
			So(anime.Episodes, ShouldEqual, 25)
			So(anime.Aired.From, ShouldNotBeNil)
			So(anime.Aired.From.Year(), ShouldEqual, 2013)
			So(anime.Aired.To.Month(), ShouldEqual, time.September)
		})

		Convey("Anime should fail on missing or empty entries", func() {
			_, err := c.Anime(ctx, 404)
			So(err, ShouldNotBeNil)

			_, err = c.Anime(ctx, 7)
			So(err, ShouldNotBeNil)
		})

		Convey("Episodes should follow pagination until it fails", func() {
			episodes, err := c.Episodes(ctx, 16498)
			So(err, ShouldBeNil)
			So(episodes, ShouldHaveLength, 3)
			So(episodes[0].Aired, ShouldNotBeNil)
			So(episodes[1].Aired, ShouldBeNil)
			So(episodes[2].MalID, ShouldEqual, 101)
		})

		Convey("Episodes should fail when the first page fails", func() {
			_, err := c.Episodes(ctx, 404)
			So(err, ShouldNotBeNil)
		})
	})
}
