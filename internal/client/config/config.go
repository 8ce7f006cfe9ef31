// Package config handles configuration for the client: defaults, JSON
// overlay, and command-line flags, with later sources taking precedence.
package config

import "time"

// Config holds runtime settings for the Bridge client.
//
// Fields:
//   - ServerBaseURL: base URL of the backend REST endpoint.
//   - StorePath: path of the local sqlite session store.
//   - MatchPollInterval / MatchPollBound: group-formation poll cadence and
//     soft-timeout bound.
//   - ChatPollInterval: incremental message fetch cadence.
type Config struct {
	ServerBaseURL     string
	StorePath         string
	MatchPollInterval time.Duration
	MatchPollBound    time.Duration
	ChatPollInterval  time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:5000"
	c.StorePath = "bridge.db"
	c.MatchPollInterval = 2 * time.Second
	c.MatchPollBound = 30 * time.Second
	c.ChatPollInterval = 5 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
