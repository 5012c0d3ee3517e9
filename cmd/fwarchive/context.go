package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"

	"fwarchive/internal/catalog"
	"fwarchive/internal/config"
	"fwarchive/internal/identity"
	"fwarchive/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
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

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewForDir(cfg.Paths.LogDir, cfg.Logging.Level, cfg.Logging.Format)
		if err != nil {
			c.loggerErr = fmt.Errorf("initialize logging: %w", err)
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// openCatalog loads the split catalog files and the device registry.
func (c *commandContext) openCatalog() (*catalog.Store, *identity.Registry, catalog.Files, string, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, catalog.Files{}, "", err
	}
	files := catalog.DefaultFiles(cfg.Paths.DataDir)
	store, err := catalog.Load(files)
	if err != nil {
		return nil, nil, catalog.Files{}, "", fmt.Errorf("load catalog: %w", err)
	}
	registryPath := identity.DefaultRegistryPath(cfg.Paths.DataDir)
	registry, err := identity.LoadRegistry(registryPath)
	if err != nil {
		return nil, nil, catalog.Files{}, "", fmt.Errorf("load device registry: %w", err)
	}
	return store, registry, files, registryPath, nil
}

// acquireRunLock takes the single-writer lock for mutating commands.
// Two concurrent scrape or add runs would race the catalog files.
func (c *commandContext) acquireRunLock() (*flock.Flock, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	lock := flock.New(filepath.Join(cfg.Paths.DataDir, "fwarchive.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another fwarchive run is in progress (lock %s held)", lock.Path())
	}
	return lock, nil
}
