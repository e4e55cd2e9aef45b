// Package icon renders the status symbols printed next to resolved streams and command results.
//
// Icons can be displayed as emoji, nerd-font glyphs, plain ASCII, kaomoji,
// or Unicode squares depending on user preference.
package icon

import (
	"github.com/anisan-cli/peel/key"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants returns a slice of all registered icon style identifiers.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

// Icon identifies a symbol.
type Icon int

const (
	Success Icon = iota + 1
	Fail
	Direct
	Unresolved
	Lua
)

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

var icons = map[Icon]*iconDef{
	Success:    {emoji: "🎉", nerd: "", plain: "✓", kaomoji: "(ᵔ◡ᵔ)", squares: "🟩"},
	Fail:       {emoji: "💀", nerd: "", plain: "✗", kaomoji: "(×_×)", squares: "🟥"},
	Direct:     {emoji: "🎬", nerd: "", plain: ">", kaomoji: "(▀̿Ĺ̯▀̿ ̿)", squares: "🟦"},
	Unresolved: {emoji: "🧅", nerd: "", plain: "?", kaomoji: "(・_・ヾ", squares: "🟨"},
	Lua:        {emoji: "🌙", nerd: "", plain: "lua", kaomoji: "(☾ω☽)", squares: "🟪"},
}

// Get returns the representation of d for the configured variant.
func (d *iconDef) Get() string {
	switch viper.GetString(key.CliIcons) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Get returns the rendered string for i, or an empty string for an unknown icon.
func Get(i Icon) string {
	d, ok := icons[i]
	if !ok {
		return ""
	}
	return d.Get()
}
