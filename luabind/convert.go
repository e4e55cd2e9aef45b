package luabind

import (
	"fmt"

	"github.com/anisan-cli/peel/source"
	lua "github.com/yuin/gopher-lua"
)

func getString(table *lua.LTable, key string) string {
	val := table.RawGetString(key)
	if val.Type() == lua.LTString || val.Type() == lua.LTNumber {
		return val.String()
	}
	return ""
}

func headersFromTable(table *lua.LTable) source.Headers {
	headers := source.Headers{}
	if table == nil {
		return headers
	}

	table.ForEach(func(k, v lua.LValue) {
		if k.Type() == lua.LTString {
			headers.Set(k.String(), v.String())
		}
	})
	return headers
}

func headersToTable(L *lua.LState, headers source.Headers) *lua.LTable {
	table := L.NewTable()
	for k, v := range headers {
		table.RawSetString(k, lua.LString(v))
	}
	return table
}

func resolvedToTable(L *lua.LState, r source.Resolved) *lua.LTable {
	table := L.NewTable()
	table.RawSetString("name", lua.LString(r.Name))
	table.RawSetString("url", lua.LString(r.URL))
	table.RawSetString("headers", headersToTable(L, r.Headers))
	table.RawSetString("is_direct", lua.LBool(r.IsDirect))
	if r.OriginalURL != "" {
		table.RawSetString("original_url", lua.LString(r.OriginalURL))
	}
	return table
}

func streamFromTable(table *lua.LTable) (source.Stream, error) {
	s := source.Stream{
		Name:    getString(table, "name"),
		Title:   getString(table, "title"),
		URL:     getString(table, "url"),
		Quality: getString(table, "quality"),
	}
	if s.URL == "" {
		return source.Stream{}, fmt.Errorf("stream must have url")
	}

	if headers, ok := table.RawGetString("headers").(*lua.LTable); ok {
		s.Headers = headersFromTable(headers)
	}
	return s, nil
}
