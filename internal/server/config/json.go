package config

import (
	"encoding/json"
	"os"

	"github.com/bridgehq/bridge/internal/flagx"
	"github.com/bridgehq/bridge/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations may
// be given as strings like "24h" or as integer nanoseconds.
type JsonConfig struct {
	Addr                  *string         `json:"addr"`
	DatabaseDSN           *string         `json:"database_dsn"`
	SecretKey             *string         `json:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
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

	if jc.Addr != nil {
		cfg.Addr = *jc.Addr
	}
	if jc.DatabaseDSN != nil {
		cfg.DatabaseDSN = *jc.DatabaseDSN
	}
	if jc.SecretKey != nil {
		cfg.SecretKey = *jc.SecretKey
	}
	if jc.TokenValidityDuration != nil {
		cfg.TokenValidityDuration = jc.TokenValidityDuration.Duration
	}
}
