package shockwave

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/remixastro/shockwave/pkg/feed"
	"github.com/remixastro/shockwave/pkg/planner"
)

// Option is a function that configures a Shockwave instance.
type Option func(*config) error

// config holds construction-time settings.
type config struct {
	store     planner.Store
	path      string
	client    feed.Client
	feedURL   string
	apiKey    string
	timeout   time.Duration
	reentries bool
	logger    zerolog.Logger
}

func defaultConfig() *config {
	return &config{
		logger: zerolog.Nop(),
	}
}

func (s *shockwave) options(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(s.config); err != nil {
			return err
		}
	}
	return nil
}

// WithStore uses an existing store instead of loading one.
func WithStore(store planner.Store) Option {
	return func(c *config) error {
		c.store = store
		return nil
	}
}

// WithPath loads the store from a YAML snapshot at path and makes Save
// write back there. A missing file starts empty.
func WithPath(path string) Option {
	return func(c *config) error {
		c.path = path
		return nil
	}
}

// WithFeed uses a custom feed client. Tests inject fakes here.
func WithFeed(client feed.Client) Option {
	return func(c *config) error {
		c.client = client
		return nil
	}
}

// WithFeedURL points the default feed client at a different host.
func WithFeedURL(url string) Option {
	return func(c *config) error {
		c.feedURL = url
		return nil
	}
}

// WithAPIKey authenticates against hosted feed mirrors.
func WithAPIKey(apiKey string) Option {
	return func(c *config) error {
		c.apiKey = apiKey
		return nil
	}
}

// WithTimeout bounds each sync session and each feed request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *config) error {
		c.timeout = timeout
		return nil
	}
}

// WithReentries makes sync sessions cover re-entry events too.
func WithReentries(enabled bool) Option {
	return func(c *config) error {
		c.reentries = enabled
		return nil
	}
}

// WithLogger sets the logger used across the stack.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}
