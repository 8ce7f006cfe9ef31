package config

import (
	"encoding/json"
	"os"

	"github.com/bridgehq/bridge/internal/flagx"
	"github.com/bridgehq/bridge/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations may
// be given as strings like "2s" or as integer nanoseconds.
type JsonConfig struct {
	ServerBaseURL     *string         `json:"server_base_url"`
	StorePath         *string         `json:"store_path"`
	MatchPollInterval *timex.Duration `json:"match_poll_interval"`
	MatchPollBound    *timex.Duration `json:"match_poll_bound"`
	ChatPollInterval  *timex.Duration `json:"chat_poll_interval"`
}

// parseJson overlays Config with values from the JSON file named by -c or
// -config. Absent file means no overlay; read or parse failures panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != nil {
		cfg.ServerBaseURL = *jc.ServerBaseURL
	}
	if jc.StorePath != nil {
		cfg.StorePath = *jc.StorePath
	}
	if jc.MatchPollInterval != nil {
		cfg.MatchPollInterval = jc.MatchPollInterval.Duration
	}
	if jc.MatchPollBound != nil {
		cfg.MatchPollBound = jc.MatchPollBound.Duration
	}
	if jc.ChatPollInterval != nil {
		cfg.ChatPollInterval = jc.ChatPollInterval.Duration
	}
}
