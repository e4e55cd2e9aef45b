package luabind

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/anisan-cli/peel/filesystem"
	"github.com/anisan-cli/peel/source"
	"github.com/anisan-cli/peel/util"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

// StreamsFn is the global function every scraper script defines:
//
//	function Streams(id, type, season, episode) return { {name=..., url=..., headers={...}}, ... } end
const StreamsFn = "Streams"

// Script is a loaded scraper. It is not safe for concurrent use.
type Script struct {
	Name  string
	state *lua.LState
}

// Load compiles and runs the script at path with the peel module registered.
func Load(path string, b Bindings) (*Script, error) {
	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return nil, err
	}

	chunk, err := parse.Parse(bytes.NewReader(data), path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	proto, err := lua.Compile(chunk, path)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}

	L := lua.NewState()
	Register(L, b)

	L.Push(L.NewFunctionFromProto(proto))
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		L.Close()
		return nil, err
	}

	name := util.FileStem(path)
	if L.GetGlobal(StreamsFn).Type() != lua.LTFunction {
		L.Close()
		return nil, fmt.Errorf("function %s is required but not defined in %s", StreamsFn, name)
	}

	return &Script{Name: name, state: L}, nil
}

// Close releases the Lua state.
func (s *Script) Close() {
	s.state.Close()
}

// Streams asks the script for the candidate streams of an episode.
// Malformed entries are skipped and reported together with the valid ones.
func (s *Script) Streams(ctx context.Context, contentID string, mediaType source.MediaType, season, episode int) ([]source.Stream, error) {
	s.state.SetContext(ctx)
	defer s.state.RemoveContext()

	err := s.state.CallByParam(lua.P{
		Fn:      s.state.GetGlobal(StreamsFn),
		NRet:    1,
		Protect: true,
	}, lua.LString(contentID), lua.LString(mediaType), lua.LNumber(season), lua.LNumber(episode))
	if err != nil {
		return nil, err
	}

	ret := s.state.Get(-1)
	s.state.Pop(1)

	table, ok := ret.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%s returned %s, expected table", StreamsFn, ret.Type())
	}

	var (
		streams []source.Stream
		errs    []error
	)
	table.ForEach(func(k, v lua.LValue) {
		entry, ok := v.(*lua.LTable)
		if k.Type() != lua.LTNumber || !ok {
			return
		}

		stream, err := streamFromTable(entry)
		if err != nil {
			errs = append(errs, fmt.Errorf("stream %s: %w", k.String(), err))
			return
		}
		if stream.Name == "" {
			stream.Name = s.Name
		}
		streams = append(streams, stream)
	})

	return streams, errors.Join(errs...)
}
