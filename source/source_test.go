package source

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestHeaders(t *testing.T) {
	Convey("Headers", t, func() {
		Convey("Clone should canonicalize keys", func() {
			h := Headers{"referer": "https://a.example/"}.Clone()
			So(h, ShouldResemble, Headers{"Referer": "https://a.example/"})
			So(h.Get("REFERER"), ShouldEqual, "https://a.example/")
		})

		Convey("Merge should let later non-empty values win", func() {
			base := Headers{"Referer": "https://a.example/", "Cookie": "sid=1"}
			merged := base.Merge(Headers{"referer": "https://b.example/", "Cookie": ""})

			So(merged.Get("Referer"), ShouldEqual, "https://b.example/")
			So(merged.Get("Cookie"), ShouldEqual, "sid=1")
			So(base.Get("Referer"), ShouldEqual, "https://a.example/")
		})

		Convey("Merge on a nil set should still allocate", func() {
			var h Headers
			So(h.Merge(Headers{"Origin": "https://c.example"}), ShouldResemble, Headers{"Origin": "https://c.example"})
		})

		Convey("AddCookies should replace pairs by name and keep order", func() {
			h := Headers{"Cookie": "a=1; b=2"}
			h.AddCookies("b=3", "c=4")
			So(h.Get("Cookie"), ShouldEqual, "a=1; b=3; c=4")
		})

		Convey("HTTP should convert to http.Header", func() {
			hh := Headers{"User-Agent": "peel"}.HTTP()
			So(hh.Get("User-Agent"), ShouldEqual, "peel")
		})
	})
}

func TestStream(t *testing.T) {
	Convey("Stream", t, func() {
		s := Stream{URL: "https://cdn.example/v/master.M3U8?token=x", Title: "VF 1080p"}

		Convey("Extension should ignore the query", func() {
			So(s.Extension(), ShouldEqual, "m3u8")
		})

		Convey("String representation", func() {
			So(s.String(), ShouldEqual, "VF 1080p")
			s.Title = ""
			So(s.String(), ShouldEqual, s.URL)
		})

		Convey("ParseMediaType should default to series", func() {
			So(ParseMediaType("Movie"), ShouldEqual, Movie)
			So(ParseMediaType("tv"), ShouldEqual, Series)
		})
	})
}
