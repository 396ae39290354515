// Package app provides the application context and dependency wiring
// for the shockwave CLI: configuration loading, logger construction,
// and a lazily created planning instance shared by the commands.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/remixastro/shockwave"
	"github.com/remixastro/shockwave/pkg/errors"
)

// App represents the shockwave application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Planning instance (lazy-initialized, singleton)
	mu        sync.Mutex
	shockwave shockwave.Shockwave
}

// New creates a new App instance with the given version information.
func New(version, commit, date string) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.NewConfigError("config", "loading configuration", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	return app, nil
}

// Version returns the version string.
func (a *App) Version() string {
	return a.version
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Shockwave returns the planning instance, creating it on first use.
func (a *App) Shockwave() (shockwave.Shockwave, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.shockwave != nil {
		return a.shockwave, nil
	}

	opts := []shockwave.Option{
		shockwave.WithPath(a.config.StorePath),
		shockwave.WithReentries(a.config.Reentries),
		shockwave.WithLogger(*a.logger),
	}
	if a.config.FeedURL != "" {
		opts = append(opts, shockwave.WithFeedURL(a.config.FeedURL))
	}
	if a.config.FeedAPIKey != "" {
		opts = append(opts, shockwave.WithAPIKey(a.config.FeedAPIKey))
	}
	if a.config.Timeout > 0 {
		opts = append(opts, shockwave.WithTimeout(a.config.Timeout))
	}

	sw, err := shockwave.New(opts...)
	if err != nil {
		return nil, err
	}
	a.shockwave = sw
	return sw, nil
}

// RebuildLogger rebuilds the logger after flags updated the config.
func (a *App) RebuildLogger() {
	logger := NewLogger(a.config)
	a.logger = &logger
}
