package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      FeedConfig
		expectedErr error
	}{
		{"PairsAndChannels", FeedConfig{Pairs: []string{"PI_XBTUSD"}, Channels: []string{"l2_book"}}, nil},
		{"ChannelConfig", FeedConfig{ChannelConfig: map[string][]string{"trades": {"PI_XBTUSD"}}}, nil},
		{"BothStyles", FeedConfig{Pairs: []string{"PI_XBTUSD"}, ChannelConfig: map[string][]string{"trades": {"PI_XBTUSD"}}}, ErrConflictingSubscription},
		{"ChannelsAndChannelConfig", FeedConfig{Channels: []string{"trades"}, ChannelConfig: map[string][]string{"trades": {"PI_XBTUSD"}}}, ErrConflictingSubscription},
		{"NegativeDepth", FeedConfig{Pairs: []string{"PI_XBTUSD"}, MaxDepth: -1}, ErrInvalidMaxDepth},
		{"NegativeInterval", FeedConfig{Pairs: []string{"PI_XBTUSD"}, BookInterval: -5}, ErrInvalidBookInterval},
		{"UnknownChannel", FeedConfig{Pairs: []string{"PI_XBTUSD"}, Channels: []string{"fills"}}, ErrUnknownChannel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFeedConfig_ValidateDefaultsAndNormalises(t *testing.T) {
	c := FeedConfig{
		Pairs:    []string{"pi_xbtusd", "PI_XBTUSD", "pi_ethusd"},
		Channels: []string{"l2_book", "l2_book"},
	}

	require.NoError(t, c.Validate())

	assert.Equal(t, DefaultBookInterval, c.BookInterval)
	assert.Equal(t, []string{"PI_XBTUSD", "PI_ETHUSD"}, c.Pairs)
	assert.Equal(t, []string{"l2_book"}, c.Channels)
}

func TestFeedConfig_ValidateLeavesCallerMapUntouched(t *testing.T) {
	channelConfig := map[string][]string{
		"l2_book": {"pi_xbtusd"},
		"trades":  {"pi_ethusd", "  "},
	}
	c := FeedConfig{ChannelConfig: channelConfig}

	err := c.Validate()

	require.Error(t, err)
	assert.Equal(t, []string{"pi_xbtusd"}, channelConfig["l2_book"])
	assert.Equal(t, []string{"pi_ethusd", "  "}, channelConfig["trades"])
	assert.Equal(t, 0, c.BookInterval)

	valid := map[string][]string{"l2_book": {"pi_xbtusd"}}
	copied := FeedConfig{ChannelConfig: valid}
	require.NoError(t, copied.Validate())

	assert.Equal(t, []string{"PI_XBTUSD"}, copied.ChannelConfig["l2_book"])
	assert.Equal(t, []string{"pi_xbtusd"}, valid["l2_book"])
}

func TestFeedConfig_AllPairs(t *testing.T) {
	c := FeedConfig{ChannelConfig: map[string][]string{
		"trades":  {"PI_XBTUSD"},
		"l2_book": {"PI_ETHUSD", "PI_XBTUSD"},
	}}
	require.NoError(t, c.Validate())

	assert.Equal(t, []string{"PI_ETHUSD", "PI_XBTUSD"}, c.AllPairs())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	err := os.WriteFile(path, []byte(`
metrics_addr: ":9100"
feeds:
  KRAKEN_FUTURES:
    pairs: [pi_xbtusd]
    channels: [l2_book, book_delta]
    max_depth: 10
`), 0o644)
	require.NoError(t, err)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.MetricsAddr)
	require.Contains(t, cfg.Feeds, "KRAKEN_FUTURES")
	feed := cfg.Feeds["KRAKEN_FUTURES"]
	assert.Equal(t, []string{"PI_XBTUSD"}, feed.Pairs)
	assert.Equal(t, 10, feed.MaxDepth)
	assert.Equal(t, DefaultBookInterval, feed.BookInterval)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("feeds: {}\n"), 0o644))

	t.Setenv("CRYPTOFEED_CONFIG", path)
	t.Setenv("CRYPTOFEED_METRICS_ADDR", ":9200")
	t.Setenv("CRYPTOFEED_DEBUG", "yes")
	defer func() { DebugMode = false }()

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, ":9200", cfg.MetricsAddr)
	assert.True(t, cfg.Debug)
	assert.True(t, DebugMode)
}

func TestLoad_ConflictingFeed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
feeds:
  KRAKEN_FUTURES:
    pairs: [PI_XBTUSD]
    channel_config:
      trades: [PI_XBTUSD]
`), 0o644))

	_, err := Load(path)

	assert.ErrorIs(t, err, ErrConflictingSubscription)
}
