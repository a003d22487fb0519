// Package config loads the read-only store, feed and rule tables.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"os"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"menugen/pkg/classify"
)

//go:embed defaults.yaml
var defaults []byte

// Lines are the feed product lines every store maps to a feed id.
var Lines = []string{"flower", "preroll", "cart", "dab", "prepack"}

// Config is built once at start-up and never modified afterwards.
type Config struct {
	Feed   FeedConfig       `yaml:"feed"`
	Server ServerConfig     `yaml:"server"`
	Stores map[string]Store `yaml:"stores"`
	Rules  classify.Rules   `yaml:"rules"`
}

// FeedConfig locates the inventory feed service.
type FeedConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// ServerConfig configures the web form server.
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

// Store is one retail location.
type Store struct {
	ID   string `yaml:"-"`
	Name string `yaml:"name"`
	// Token authorizes feed requests. Usually supplied by MENUGEN_<STORE>_TOKEN.
	Token string `yaml:"token"`
	// DiscountKey is the store name promotional tags refer to. Defaults to ID.
	DiscountKey string            `yaml:"discount_key"`
	Feeds       map[string]string `yaml:"feeds"`
}

// Default returns the built-in configuration with environment overrides applied.
func Default() (*Config, error) {
	return Load("")
}

// Load reads the built-in configuration, merges the YAML file at path over it
// when path is set, then applies environment overrides. A store defined in the
// file replaces the built-in store with the same id.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaults, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse built-in config: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	cfg.fill()
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("MENUGEN_FEED_BASE_URL"); v != "" {
		c.Feed.BaseURL = v
	}
	if v := os.Getenv("MENUGEN_FEED_TIMEOUT"); v != "" {
		c.Feed.Timeout = v
	}
	if v := os.Getenv("MENUGEN_ADDR"); v != "" {
		c.Server.Addr = v
	}
	for id, s := range c.Stores {
		if token := os.Getenv(TokenEnv(id)); token != "" {
			s.Token = token
			c.Stores[id] = s
		}
	}
}

// TokenEnv names the environment variable holding a store's feed token.
func TokenEnv(storeID string) string {
	return "MENUGEN_" + strings.ToUpper(storeID) + "_TOKEN"
}

func (c *Config) fill() {
	for id, s := range c.Stores {
		s.ID = id
		if s.DiscountKey == "" {
			s.DiscountKey = id
		}
		if s.Name == "" {
			s.Name = id
		}
		c.Stores[id] = s
	}
}

// FeedTimeout returns the feed request timeout as a duration.
func (c *Config) FeedTimeout() time.Duration {
	d, err := time.ParseDuration(c.Feed.Timeout)
	if err != nil || d <= 0 {
		return 20 * time.Second
	}
	return d
}

// ShutdownTimeout returns how long the server drains connections on exit.
func (c *Config) ShutdownTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// Store looks up a store by id, ignoring case.
func (c *Config) Store(id string) (Store, bool) {
	s, ok := c.Stores[strings.ToLower(strings.TrimSpace(id))]
	return s, ok
}

// StoreIDs lists store ids in sorted order.
func (c *Config) StoreIDs() []string {
	ids := make([]string, 0, len(c.Stores))
	for id := range c.Stores {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs []error
	if u, err := url.Parse(c.Feed.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("invalid feed base_url %q", c.Feed.BaseURL))
	}
	if _, err := time.ParseDuration(c.Feed.Timeout); c.Feed.Timeout != "" && err != nil {
		errs = append(errs, fmt.Errorf("invalid feed timeout %q: %w", c.Feed.Timeout, err))
	}
	if len(c.Stores) == 0 {
		errs = append(errs, errors.New("no stores configured"))
	}
	for _, id := range c.StoreIDs() {
		if id != strings.ToLower(id) {
			errs = append(errs, fmt.Errorf("store id %q must be lower case", id))
		}
		for line, feedID := range c.Stores[id].Feeds {
			if !slices.Contains(Lines, line) {
				errs = append(errs, fmt.Errorf("store %s: unknown product line %q", id, line))
			}
			if strings.TrimSpace(feedID) == "" {
				errs = append(errs, fmt.Errorf("store %s: empty feed id for %s", id, line))
			}
		}
	}
	for _, tp := range c.Rules.Flower.Tiers {
		if _, ok := classify.ParseTier(tp.Name); !ok {
			errs = append(errs, fmt.Errorf("unknown flower tier %q", tp.Name))
		}
	}
	if c.Rules.Preroll.PackWeight <= 0 {
		errs = append(errs, errors.New("preroll pack_weight must be positive"))
	}
	return errors.Join(errs...)
}
