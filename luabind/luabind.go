// Package luabind exposes the resolver and the episode synchronizer to Lua scraper scripts.
//
// Scripts see a global table named peel:
//
//	peel.resolve(url [, headers])                          -> {url, headers, is_direct, original_url} | nil
//	peel.absolute_episode(id, type, season, episode)       -> number | nil
//	peel.fetch(url [, headers])                            -> body
//	peel.unpack(script)                                    -> string
package luabind

import (
	"context"

	"github.com/anisan-cli/peel/network"
	"github.com/anisan-cli/peel/source"
	"github.com/anisan-cli/peel/unpack"
	"github.com/samber/mo"
	lua "github.com/yuin/gopher-lua"
)

// ModuleName is the global the bindings are registered under.
const ModuleName = "peel"

// Resolver resolves embed pages.
type Resolver interface {
	Resolve(ctx context.Context, s source.Stream) mo.Option[source.Resolved]
}

// Synchronizer maps season numbering onto absolute numbering.
type Synchronizer interface {
	AbsoluteEpisode(ctx context.Context, contentID string, mediaType source.MediaType, season, episode int) mo.Option[int]
}

// Bindings are the Go services reachable from Lua.
type Bindings struct {
	Resolver     Resolver
	Synchronizer Synchronizer
	Fetcher      network.Getter
}

// Register installs the peel module into L.
func Register(L *lua.LState, b Bindings) {
	mod := L.NewTable()
	L.SetField(mod, "resolve", L.NewFunction(b.resolve))
	L.SetField(mod, "absolute_episode", L.NewFunction(b.absoluteEpisode))
	L.SetField(mod, "fetch", L.NewFunction(b.fetch))
	L.SetField(mod, "unpack", L.NewFunction(unpackScript))
	L.SetGlobal(ModuleName, mod)
}

func stateContext(L *lua.LState) context.Context {
	if ctx := L.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func (b Bindings) resolve(L *lua.LState) int {
	s := source.Stream{
		URL:     L.CheckString(1),
		Headers: headersFromTable(L.OptTable(2, nil)),
	}

	resolved, ok := b.Resolver.Resolve(stateContext(L), s).Get()
	if !ok {
		L.Push(lua.LNil)
		return 1
	}

	L.Push(resolvedToTable(L, resolved))
	return 1
}

func (b Bindings) absoluteEpisode(L *lua.LState) int {
	id := L.CheckString(1)
	mediaType := source.ParseMediaType(L.OptString(2, string(source.Series)))
	season := L.CheckInt(3)
	episode := L.CheckInt(4)

	abs, ok := b.Synchronizer.AbsoluteEpisode(stateContext(L), id, mediaType, season, episode).Get()
	if !ok {
		L.Push(lua.LNil)
		return 1
	}

	L.Push(lua.LNumber(abs))
	return 1
}

func (b Bindings) fetch(L *lua.LState) int {
	rawURL := L.CheckString(1)
	headers := headersFromTable(L.OptTable(2, nil))

	page, err := b.Fetcher.Fetch(stateContext(L), rawURL, network.WithHeaders(headers))
	if err != nil {
		L.RaiseError("peel.fetch: %s", err.Error())
		return 0
	}

	L.Push(lua.LString(page.Body))
	return 1
}

func unpackScript(L *lua.LState) int {
	L.Push(lua.LString(unpack.Unpack(L.CheckString(1))))
	return 1
}
