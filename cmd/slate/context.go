package main

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"slate/internal/catalog"
	"slate/internal/config"
	"slate/internal/logging"
	"slate/internal/scheduler"
	"slate/internal/watchlist"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// withService acquires the single-writer lock, opens the store and catalog,
// and hands the scheduler service to fn. Every mutating command runs through
// here so operations execute one at a time against the database.
func (c *commandContext) withService(fn func(ctx context.Context, svc *scheduler.Service) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}

	lock := flock.New(cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock %s: %w", cfg.LockPath(), err)
	}
	if !locked {
		return fmt.Errorf("another slate command is running (lock %s held)", cfg.LockPath())
	}
	defer func() { _ = lock.Unlock() }()

	store, err := watchlist.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	catalogSvc, err := c.catalogService(cfg)
	if err != nil {
		return err
	}

	timeout := time.Duration(cfg.Catalog.RequestTimeout) * time.Second
	svc := scheduler.New(store, catalogSvc, logger, scheduler.WithCatalogTimeout(timeout))
	return fn(context.Background(), svc)
}

func (c *commandContext) catalogService(cfg *config.Config) (catalog.Service, error) {
	client, err := catalog.New(
		cfg.Catalog.APIKey,
		cfg.Catalog.BaseURL,
		cfg.Catalog.Language,
		catalog.WithTimeout(time.Duration(cfg.Catalog.RequestTimeout)*time.Second),
	)
	if err != nil {
		return nil, err
	}
	ttl := time.Duration(cfg.Catalog.CacheTTLMinutes) * time.Minute
	return catalog.NewCached(client, ttl), nil
}
