package cinemeta

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anisan-cli/peel/network"
	"github.com/anisan-cli/peel/source"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseDay(t *testing.T) {
	Convey("ParseDay", t, func() {
		day, err := ParseDay("2013-04-07T02:00:00.000Z")
		So(err, ShouldBeNil)
		So(day, ShouldEqual, time.Date(2013, 4, 7, 0, 0, 0, 0, time.UTC))

		day, err = ParseDay("2001-07-20")
		So(err, ShouldBeNil)
		So(day.Year(), ShouldEqual, 2001)

		_, err = ParseDay("")
		So(errors.Is(err, ErrNoAirDate), ShouldBeTrue)

		_, err = ParseDay("yesterday")
		So(err, ShouldNotBeNil)
	})
}

func TestClient(t *testing.T) {
	Convey("Given the Cinemeta addon", t, func() {
		mux := http.NewServeMux()
		srv := httptest.NewServer(mux)
		defer srv.Close()

		c := New(srv.URL, network.NewFetcher(http.DefaultClient, 2*time.Second))
		ctx := context.Background()

		mux.HandleFunc("/meta/series/tt2560140.json", func(w http.ResponseWriter, r *http.Request) {
			_, _ = fmt.Fprint(w, `{"meta":{"id":"tt2560140","type":"series","name":"Attack on Titan","videos":[
				{"season":1,"episode":1,"released":"2013-04-07T02:00:00.000Z"},
				{"season":0,"episode":1,"released":"2013-12-09T00:00:00.000Z"},
				{"season":1,"episode":2}
			]}}`)
		})
		mux.HandleFunc("/meta/movie/tt0245429.json", func(w http.ResponseWriter, r *http.Request) {
			_, _ = fmt.Fprint(w, `{"meta":{"id":"tt0245429","type":"movie","name":"Spirited Away","released":"2001-07-20T00:00:00.000Z"}}`)
		})
		mux.HandleFunc("/meta/series/tt0.json", func(w http.ResponseWriter, r *http.Request) {
			_, _ = fmt.Fprint(w, `{"meta":null}`)
		})

		Convey("Episodes should return every video", func() {
			videos, err := c.Episodes(ctx, "tt2560140")
			So(err, ShouldBeNil)
			So(videos, ShouldHaveLength, 3)
			So(videos[0], ShouldResemble, Video{Season: 1, Episode: 1, Released: "2013-04-07T02:00:00.000Z"})
		})

		Convey("Episodes should fail on empty and missing metadata", func() {
			_, err := c.Episodes(ctx, "tt0")
			So(err, ShouldNotBeNil)

			_, err = c.Episodes(ctx, "tt404")
			So(err, ShouldNotBeNil)
		})

		Convey("AirDate should read the matching episode", func() {
			day, err := c.AirDate(ctx, "tt2560140", source.Series, 1, 1)
			So(err, ShouldBeNil)
			So(day, ShouldEqual, time.Date(2013, 4, 7, 0, 0, 0, 0, time.UTC))
		})

		Convey("AirDate should fail for unknown or undated episodes", func() {
			_, err := c.AirDate(ctx, "tt2560140", source.Series, 4, 1)
			So(errors.Is(err, ErrNoAirDate), ShouldBeTrue)

			_, err = c.AirDate(ctx, "tt2560140", source.Series, 1, 2)
			So(errors.Is(err, ErrNoAirDate), ShouldBeTrue)
		})

		Convey("AirDate should use the release of movies", func() {
			day, err := c.AirDate(ctx, "tt0245429", source.Movie, 0, 0)
			So(err, ShouldBeNil)
			So(day, ShouldEqual, time.Date(2001, 7, 20, 0, 0, 0, 0, time.UTC))
		})
	})
}
