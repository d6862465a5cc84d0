package cmd

import (
	"context"
	"fmt"

	"github.com/gibbs-towing/fleetsite/internal/config"
	"github.com/gibbs-towing/fleetsite/internal/gallery"
	"github.com/gibbs-towing/fleetsite/internal/site"
	"github.com/gibbs-towing/fleetsite/internal/storage"
)

var configPath string

// app bundles what every command needs to reach the stored gallery
type app struct {
	cfg      config.Config
	kv       storage.KV
	store    *gallery.RecordStore
	defaults []gallery.Provider
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	kv, err := storage.Open(ctx, storage.Options{
		Backend:  cfg.Storage.Backend,
		Path:     cfg.Storage.Path,
		RedisURL: cfg.Storage.RedisURL,
		Quota:    cfg.Storage.QuotaBytes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	return &app{
		cfg:   cfg,
		kv:    kv,
		store: gallery.NewRecordStore(kv),
		defaults: []gallery.Provider{
			gallery.NewFleetDataProvider(cfg.FleetDataURL),
			gallery.StaticProvider{List: site.FleetImages()},
		},
	}, nil
}

// chain is the startup precedence: stored list, then fleet data, then the
// built-in defaults.
func (a *app) chain() []gallery.Provider {
	return append([]gallery.Provider{gallery.StoreProvider{Store: a.store}}, a.defaults...)
}

func (a *app) Close() error {
	return a.kv.Close()
}
