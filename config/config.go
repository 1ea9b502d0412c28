package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"github.com/spooky-finn/go-cryptofeed/domain"
	"gopkg.in/yaml.v3"
)

const DefaultBookInterval = 1000

// DebugMode turns on verbose logging across packages.
var DebugMode = false

var (
	ErrConflictingSubscription = errors.New("use channel_config, or channels and pairs, not both")
	ErrInvalidMaxDepth         = errors.New("max_depth must be positive")
	ErrInvalidBookInterval     = errors.New("book_interval must be positive")
	ErrUnknownChannel          = errors.New("unknown channel")
)

var logger = log.New(os.Stdout, "[config] ", log.LstdFlags)

// FeedConfig holds the options recognised by a feed. A feed subscribes either
// to Pairs x Channels or to the per-channel pair sets of ChannelConfig.
type FeedConfig struct {
	Pairs         []string            `yaml:"pairs"`
	Channels      []string            `yaml:"channels"`
	ChannelConfig map[string][]string `yaml:"channel_config"`
	// MaxDepth bounds the levels per side; 0 means unbounded.
	MaxDepth     int `yaml:"max_depth"`
	BookInterval int `yaml:"book_interval"`
}

type Config struct {
	MetricsAddr string                `yaml:"metrics_addr"`
	Debug       bool                  `yaml:"debug"`
	Feeds       map[string]FeedConfig `yaml:"feeds"`
}

// Validate checks the config and fills in defaults. It must run before any
// state is built from the config. On error c is left untouched.
func (c *FeedConfig) Validate() error {
	if len(c.ChannelConfig) > 0 && (len(c.Pairs) > 0 || len(c.Channels) > 0) {
		return ErrConflictingSubscription
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxDepth, c.MaxDepth)
	}
	bookInterval := c.BookInterval
	if bookInterval == 0 {
		bookInterval = DefaultBookInterval
	}
	if bookInterval < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBookInterval, bookInterval)
	}

	channels := c.Channels
	if len(c.ChannelConfig) > 0 {
		channels = lo.Keys(c.ChannelConfig)
	}
	for _, ch := range channels {
		if !domain.IsEventKind(ch) {
			return fmt.Errorf("%w: %s", ErrUnknownChannel, ch)
		}
	}

	pairs, err := normalizePairs(c.Pairs)
	if err != nil {
		return err
	}

	var channelConfig map[string][]string
	if c.ChannelConfig != nil {
		channelConfig = make(map[string][]string, len(c.ChannelConfig))
		for ch, chPairs := range c.ChannelConfig {
			normalized, err := normalizePairs(chPairs)
			if err != nil {
				return fmt.Errorf("channel %s: %w", ch, err)
			}
			channelConfig[ch] = normalized
		}
	}

	c.Pairs = pairs
	c.Channels = lo.Uniq(c.Channels)
	c.ChannelConfig = channelConfig
	c.BookInterval = bookInterval

	return nil
}

// AllPairs returns every pair the config subscribes to, in either style.
func (c *FeedConfig) AllPairs() []string {
	if len(c.ChannelConfig) == 0 {
		return c.Pairs
	}
	channels := lo.Keys(c.ChannelConfig)
	sort.Strings(channels)

	all := []string{}
	for _, ch := range channels {
		all = append(all, c.ChannelConfig[ch]...)
	}
	return lo.Uniq(all)
}

func normalizePairs(pairs []string) ([]string, error) {
	out := make([]string, 0, len(pairs))
	for _, p := range pairs {
		ms, err := domain.NewMarketSymbol(p)
		if err != nil {
			return nil, err
		}
		out = append(out, ms.String())
	}
	return lo.Uniq(out), nil
}

// Load reads the YAML config at path. A .env file in the working directory is
// loaded first when present, and CRYPTOFEED_* variables override the file.
// An empty path falls back to CRYPTOFEED_CONFIG.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if path == "" {
		path = os.Getenv("CRYPTOFEED_CONFIG")
	}
	if path == "" {
		return nil, errors.New("config path is not set")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if addr := os.Getenv("CRYPTOFEED_METRICS_ADDR"); addr != "" {
		cfg.MetricsAddr = addr
	}
	if debug := os.Getenv("CRYPTOFEED_DEBUG"); debug != "" {
		cfg.Debug = boolOrDefault(debug, cfg.Debug)
	}
	if cfg.MetricsAddr == "" {
		cfg.MetricsAddr = ":8080"
	}

	for id, feed := range cfg.Feeds {
		if err := feed.Validate(); err != nil {
			return nil, fmt.Errorf("feed %s: %w", id, err)
		}
		cfg.Feeds[id] = feed
	}

	DebugMode = cfg.Debug
	if DebugMode {
		logger.Printf("loaded %d feeds from %s", len(cfg.Feeds), path)
	}

	return cfg, nil
}

func boolOrDefault(raw string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "y":
		return true
	case "0", "false", "no", "n":
		return false
	default:
		return def
	}
}
