package luabind

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anisan-cli/peel/filesystem"
	"github.com/anisan-cli/peel/network"
	"github.com/anisan-cli/peel/source"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	lua "github.com/yuin/gopher-lua"
)

type fakeResolver struct{}

func (fakeResolver) Resolve(_ context.Context, s source.Stream) mo.Option[source.Resolved] {
	switch s.URL {
	case "https://ads.example/x":
		return mo.None[source.Resolved]()
	case "https://embed.example/e/1":
		out := s
		out.URL = "https://cdn.example/1.m3u8"
		out.Headers = s.Headers.Merge(source.Headers{"Origin": "https://embed.example"})
		return mo.Some(source.Resolved{Stream: out, IsDirect: true, OriginalURL: s.URL})
	default:
		return mo.Some(source.Resolved{Stream: s})
	}
}

type fakeSynchronizer struct{}

func (fakeSynchronizer) AbsoluteEpisode(_ context.Context, id string, mediaType source.MediaType, season, episode int) mo.Option[int] {
	if id != "1429" || mediaType != source.Series {
		return mo.None[int]()
	}
	return mo.Some((season-1)*25 + episode)
}

func newState(b Bindings) *lua.LState {
	L := lua.NewState()
	Register(L, b)
	return L
}

func TestBindings(t *testing.T) {
	Convey("Given the peel module", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/page" {
				http.NotFound(w, r)
				return
			}
			_, _ = fmt.Fprintf(w, "hello %s", r.Header.Get("X-Token"))
		}))
		defer srv.Close()

		L := newState(Bindings{
			Resolver:     fakeResolver{},
			Synchronizer: fakeSynchronizer{},
			Fetcher:      network.NewFetcher(http.DefaultClient, 2*time.Second),
		})
		defer L.Close()
		L.SetGlobal("server", lua.LString(srv.URL))

		Convey("resolve should return a table for resolved streams", func() {
			So(L.DoString(`
				local r = peel.resolve("https://embed.example/e/1", {Referer = "https://site.example/"})
				url, direct, original = r.url, r.is_direct, r.original_url
				referer, origin = r.headers["Referer"], r.headers["Origin"]
			`), ShouldBeNil)

			So(L.GetGlobal("url").String(), ShouldEqual, "https://cdn.example/1.m3u8")
			So(L.GetGlobal("direct"), ShouldEqual, lua.LTrue)
			So(L.GetGlobal("original").String(), ShouldEqual, "https://embed.example/e/1")
			So(L.GetGlobal("referer").String(), ShouldEqual, "https://site.example/")
			So(L.GetGlobal("origin").String(), ShouldEqual, "https://embed.example")
		})

		Convey("resolve should return nil for rejected streams", func() {
			So(L.DoString(`rejected = peel.resolve("https://ads.example/x") == nil`), ShouldBeNil)
			So(L.GetGlobal("rejected"), ShouldEqual, lua.LTrue)
		})

		Convey("resolve should require a url", func() {
			So(L.DoString(`peel.resolve()`), ShouldNotBeNil)
		})

		Convey("absolute_episode should return numbers or nil", func() {
			So(L.DoString(`
				abs = peel.absolute_episode("1429", "tv", 2, 1)
				missing = peel.absolute_episode("1429", "movie", 1, 1) == nil
			`), ShouldBeNil)
			So(L.GetGlobal("abs"), ShouldEqual, lua.LNumber(26))
			So(L.GetGlobal("missing"), ShouldEqual, lua.LTrue)
		})

		Convey("fetch should return the body and raise on failures", func() {
			So(L.DoString(`body = peel.fetch(server .. "/page", {["X-Token"] = "abc"})`), ShouldBeNil)
			So(L.GetGlobal("body").String(), ShouldEqual, "hello abc")

			So(L.DoString(`peel.fetch(server .. "/missing")`), ShouldNotBeNil)
		})

		Convey("unpack should pass plain text through", func() {
			So(L.DoString(`plain = peel.unpack("var a = 1")`), ShouldBeNil)
			So(L.GetGlobal("plain").String(), ShouldEqual, "var a = 1")
		})
	})
}

func TestScript(t *testing.T) {
	Convey("Given scraper scripts", t, func() {
		filesystem.SetMemMapFs()
		defer filesystem.SetOsFs()

		b := Bindings{Resolver: fakeResolver{}, Synchronizer: fakeSynchronizer{}}
		write := func(path, body string) {
			So(filesystem.API().WriteFile(path, []byte(body), 0o644), ShouldBeNil)
		}

		Convey("Streams should translate returned tables", func() {
			write("/scripts/franime.lua", `
				function Streams(id, type, season, episode)
					local abs = peel.absolute_episode(id, type, season, episode) or episode
					return {
						{ url = "https://embed.example/e/" .. abs, quality = "1080p", headers = { Referer = "https://franime.example/" } },
						{ name = "broken" },
						{ name = "vidmoly", url = "https://vidmoly.example/e/2", title = "Episode " .. abs },
					}
				end
			`)

			script, err := Load("/scripts/franime.lua", b)
			So(err, ShouldBeNil)
			defer script.Close()
			So(script.Name, ShouldEqual, "franime")

			streams, err := script.Streams(context.Background(), "1429", source.Series, 2, 1)
			So(err, ShouldNotBeNil)
			So(streams, ShouldHaveLength, 2)
			So(streams[0], ShouldResemble, source.Stream{
				Name:    "franime",
				URL:     "https://embed.example/e/26",
				Quality: "1080p",
				Headers: source.Headers{"Referer": "https://franime.example/"},
			})
			So(streams[1].Name, ShouldEqual, "vidmoly")
			So(streams[1].Title, ShouldEqual, "Episode 26")
		})

		Convey("Load should require the Streams function", func() {
			write("/scripts/empty.lua", `local x = 1`)

			_, err := Load("/scripts/empty.lua", b)
			So(err, ShouldNotBeNil)
		})

		Convey("Load should report syntax and runtime errors", func() {
			write("/scripts/syntax.lua", `function Streams(`)
			_, err := Load("/scripts/syntax.lua", b)
			So(err, ShouldNotBeNil)

			write("/scripts/runtime.lua", `error("boom")`)
			_, err = Load("/scripts/runtime.lua", b)
			So(err, ShouldNotBeNil)

			_, err = Load("/scripts/missing.lua", b)
			So(err, ShouldNotBeNil)
		})

		Convey("Streams should reject non-table results", func() {
			write("/scripts/bad.lua", `function Streams() return "nope" end`)

			script, err := Load("/scripts/bad.lua", b)
			So(err, ShouldBeNil)
			defer script.Close()

			_, err = script.Streams(context.Background(), "1", source.Series, 1, 1)
			So(err, ShouldNotBeNil)
		})
	})
}
