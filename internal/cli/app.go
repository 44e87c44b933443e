package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/lazypower/tastequest/internal/catalog"
	"github.com/lazypower/tastequest/internal/config"
	"github.com/lazypower/tastequest/internal/engine"
	"github.com/lazypower/tastequest/internal/location"
	"github.com/lazypower/tastequest/internal/logging"
	"github.com/lazypower/tastequest/internal/metrics"
	"github.com/lazypower/tastequest/internal/server"
	"github.com/lazypower/tastequest/internal/store"
	"github.com/lazypower/tastequest/internal/taste"
	"go.uber.org/zap"
)

// backend is a storage driver: key-value gateway, decision log and health
// check in one.
type backend interface {
	store.Gateway
	store.History
	server.HealthChecker
	io.Closer
}

// app is everything a command needs, built from configuration.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	store   backend
	where   string
	metrics *metrics.Metrics
	engine  *engine.Engine
}

// openApp loads configuration and wires the engine to its collaborators.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, err
	}

	b, where, err := openBackend(ctx, cfg.Storage)
	if err != nil {
		log.Sync()
		return nil, err
	}

	m := metrics.New()
	eng := engine.New(b, newSource(cfg.Catalog), newLocator(cfg.Location), log)
	eng.SetMetrics(m)
	eng.SetHistory(b)
	if cfg.Location.Timeout > 0 {
		eng.SetLocationTimeout(cfg.Location.Timeout)
	}

	return &app{
		cfg:     cfg,
		log:     log,
		store:   b,
		where:   where,
		metrics: m,
		engine:  eng,
	}, nil
}

func (a *app) Close() error {
	a.log.Sync()
	return a.store.Close()
}

func openBackend(ctx context.Context, cfg config.StorageConfig) (backend, string, error) {
	switch cfg.Driver {
	case "redis":
		gw, err := store.NewRedis(ctx, store.RedisOptions{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
		if err != nil {
			return nil, "", fmt.Errorf("open redis: %w", err)
		}
		return gw, "redis://" + cfg.Redis.Address, nil
	default:
		path := cfg.Path
		if path == "" {
			var err error
			path, err = store.DefaultDBPath()
			if err != nil {
				return nil, "", fmt.Errorf("resolve db path: %w", err)
			}
		}
		db, err := store.Open(path)
		if err != nil {
			return nil, "", fmt.Errorf("open database: %w", err)
		}
		return db, path, nil
	}
}

func newSource(cfg config.CatalogConfig) catalog.Source {
	switch cfg.Source {
	case "file":
		return catalog.FileSource{Path: cfg.Path}
	case "http":
		return catalog.NewHTTPSource(cfg.URL, cfg.Timeout)
	default:
		return catalog.Fixture{}
	}
}

func newLocator(cfg config.LocationConfig) location.Provider {
	if cfg.URL != "" {
		return location.NewHTTPProvider(cfg.URL)
	}
	return location.Fixed(taste.Location{Latitude: cfg.Latitude, Longitude: cfg.Longitude})
}
