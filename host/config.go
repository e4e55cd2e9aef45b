package host

import (
	"time"

	"github.com/samber/lo"
)

var nonceCharset = []rune("abcdefghijklmnopqrstuvwxyz0123456789")

// Config holds the endpoints and header templates of the built-in strategies.
type Config struct {
	SibnetOrigin     string
	VidmolyOrigin    string
	UqloadMirrors    []string
	StreamtapeOrigin string
	SendvidOrigin    string
	MyviOrigin       string

	// Now stamps dood links. Defaults to time.Now.
	Now func() time.Time
	// Nonce returns the random suffix of dood links.
	Nonce func() string
}

// DefaultConfig returns the production endpoints.
func DefaultConfig() Config {
	return Config{
		SibnetOrigin:     "https://video.sibnet.ru",
		VidmolyOrigin:    "https://vidmoly.to",
		UqloadMirrors:    []string{"https://uqload.co", "https://uqload.com", "https://uqload.io", "https://uqloads.xyz", "https://uqload.to"},
		StreamtapeOrigin: "https://streamtape.com",
		SendvidOrigin:    "https://sendvid.com",
		MyviOrigin:       "https://www.myvi.ru",
		Now:              time.Now,
		Nonce: func() string {
			return lo.RandomString(10, nonceCharset)
		},
	}
}

// Default builds the registry of built-in strategies in dispatch order.
func Default(cfg Config) *Registry {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Nonce == nil {
		cfg.Nonce = DefaultConfig().Nonce
	}

	r := NewRegistry()
	for _, e := range []Entry{
		{Name: "sibnet", Match: Domains("sibnet"), Handle: sibnet{origin: cfg.SibnetOrigin}.resolve},
		{Name: "vidmoly", Match: Domains("vidmoly"), Handle: vidmoly{origin: cfg.VidmolyOrigin}.resolve},
		{Name: "uqload", Match: Domains("uqload", "uqloads", "oneupload"), Handle: uqload{mirrors: cfg.UqloadMirrors}.resolve},
		{Name: "voe", Match: Domains("voe"), Handle: resolveVoe},
		{Name: "streamtape", Match: LabelPrefix("streamtape", "strtape", "stape"), Handle: streamtape{origin: cfg.StreamtapeOrigin}.resolve},
		{Name: "dood", Match: LabelPrefix("dood", "ds2play", "d000d", "d0o0d"), Handle: dood{now: cfg.Now, nonce: cfg.Nonce}.resolve},
		{Name: "moon", Match: Any(LabelPrefix("moonplayer", "filemoon"), Domains("moon")), Handle: resolveMoon},
		{Name: "sendvid", Match: Domains("sendvid"), Handle: sendvid{origin: cfg.SendvidOrigin}.resolve},
		{Name: "myvi", Match: Domains("myvi", "mytv"), Handle: myvi{origin: cfg.MyviOrigin}.resolve},
		{Name: "luluvid", Match: Domains("luluvid", "lulu", "luluvdo"), Handle: resolveLuluvid},
		{Name: "hgcloud", Match: Domains("hgcloud", "savefiles"), Handle: resolveHGCloud},
		{Name: "mixdrop", Match: LabelPrefix("mixdrop", "mixdrp", "m1xdrop"), Handle: resolveMixdrop},
	} {
		lo.Must0(r.Register(e))
	}
	return r
}
