package cmd

import (
	"net/http"
	"time"

	"github.com/anisan-cli/peel/arm"
	"github.com/anisan-cli/peel/catalog"
	"github.com/anisan-cli/peel/cinemeta"
	"github.com/anisan-cli/peel/config"
	"github.com/anisan-cli/peel/episode"
	"github.com/anisan-cli/peel/host"
	"github.com/anisan-cli/peel/key"
	"github.com/anisan-cli/peel/mal"
	"github.com/anisan-cli/peel/network"
	"github.com/anisan-cli/peel/resolver"
	"github.com/anisan-cli/peel/tmdb"
	"github.com/spf13/viper"
)

// app holds the services built from the current configuration.
type app struct {
	fetcher  *network.Fetcher
	resolver *resolver.Resolver
	sync     *episode.Synchronizer
	tmdb     *tmdb.Client
	catalog  *catalog.Catalog
}

func newApp() *app {
	fetcher := network.NewFetcher(&http.Client{
		Transport: network.NewTransport(
			viper.GetString(key.NetworkUserAgent),
			viper.GetStringSlice(key.NetworkFingerprintDomains),
		),
	}, config.Seconds(key.NetworkTimeout))

	meta := network.NewFetcher(network.Client, config.Seconds(key.SyncTimeout))

	res := resolver.New(resolver.Config{
		MaxDepth:        viper.GetInt(key.ResolverMaxDepth),
		AdDomains:       viper.GetStringSlice(key.ResolverAdDomains),
		TrackingDomains: viper.GetStringSlice(key.ResolverTrackingDomains),
		Validate:        viper.GetBool(key.ResolverValidate),
		Concurrency:     viper.GetInt(key.ResolverConcurrency),
	}, host.Default(host.DefaultConfig()), fetcher)

	var (
		armClient = arm.New(viper.GetString(key.SyncArmAPI), meta)
		tmdbWeb   = tmdb.New(viper.GetString(key.SyncTMDBWeb), meta)
		videos    = cinemeta.New(viper.GetString(key.SyncCinemetaAPI), meta)
	)

	sync := episode.New(episode.Config{
		Tolerance: time.Duration(viper.GetInt(key.SyncToleranceDays)) * 24 * time.Hour,
	}, episode.Sources{
		XRef:     episode.ChainXRef{episode.IMDbPassthrough{}, armClient, tmdbWeb},
		Episodes: videos,
		AirDates: videos,
		Mapper:   armClient,
		Index:    mal.New(viper.GetString(key.SyncJikanAPI), meta),
	})

	return &app{
		fetcher:  fetcher,
		resolver: res,
		sync:     sync,
		tmdb:     tmdbWeb,
		catalog:  catalog.New(viper.GetString(key.CatalogURL), meta),
	}
}
