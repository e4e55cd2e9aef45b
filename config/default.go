// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/anisan-cli/peel/color"
	"github.com/anisan-cli/peel/constant"
	"github.com/anisan-cli/peel/key"
	"github.com/anisan-cli/peel/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	return strings.ToUpper(constant.Peel + "_" + EnvKeyReplacer.Replace(f.Key))
}

// MarshalJSON includes the current value next to the default one.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Env         string `json:"env"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Env:         f.Env(),
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        reflect.TypeOf(f.Value).String(),
	})
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

// Seconds reads an integer key and converts it to a duration.
func Seconds(k string) time.Duration {
	return time.Duration(viper.GetInt(k)) * time.Second
}

func init() {
	// register validates and adds a new configuration field to the global registry.
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		f := Field{Key: k, Value: v, Description: desc}
		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	register(key.NetworkTimeout, 10, "Timeout in seconds for every page fetched while resolving a stream")
	register(key.NetworkUserAgent, constant.UserAgent, "User-Agent sent to embed hosts")
	register(key.NetworkFingerprintDomains, []string{"streamtape.com", "voe.sx", "filemoon.sx"}, "Hosts fetched with a Chrome TLS fingerprint.\nUseful for hosts behind anti-bot challenges")
	register(key.ResolverMaxDepth, 3, "Maximum number of nested embeds to peel after the first page")
	register(key.ResolverAdDomains, []string{"google-analytics", "doubleclick"}, "Candidates whose URL contains one of these are dropped")
	register(key.ResolverTrackingDomains, []string{"googletagmanager"}, "Media URLs found in pages are ignored when they contain one of these")
	register(key.ResolverValidate, false, "Probe resolved streams with a ranged request before returning them")
	register(key.ResolverConcurrency, 4, "Number of candidates resolved in parallel")
	register(key.SyncTimeout, 8, "Timeout in seconds for every metadata request made by the episode synchronizer")
	register(key.SyncArmAPI, constant.ArmAPI, "Cross-reference API used to translate ids between catalogs")
	register(key.SyncCinemetaAPI, constant.CinemetaAPI, "Canonical episode list API")
	register(key.SyncJikanAPI, constant.JikanAPI, "Jikan (MyAnimeList) API used by the air date lookup")
	register(key.SyncTMDBWeb, constant.TMDBWeb, "TMDB website, scraped when the cross-reference API has no entry")
	register(key.SyncToleranceDays, 2, "Tolerance in days when comparing air dates")
	register(key.CatalogURL, "", "URL of a static JSON catalog of {id, title, titleO} entries.\nLoaded once per process")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliIcons, "plain", "Icons variant.\nAvailable options are: emoji, nerd, plain, kaomoji, squares")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
