package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dkoval/tasktrack/internal/flagx"
	"github.com/dkoval/tasktrack/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. It uses timex.Duration so lifetimes can be written either as "1h"
// or as integer nanoseconds. Absent fields leave the current value alone.
type JsonConfig struct {
	EndpointAddr  *string         `json:"endpoint_addr"`
	DatabaseDSN   *string         `json:"database_dsn"`
	SecretKey     *string         `json:"secret_key"`
	TokenValidity *timex.Duration `json:"token_validity"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. No flag, no file, no overlay.
// An unreadable or malformed file panics: a config that was asked for but
// cannot be honored should stop startup.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != nil {
		config.EndpointAddr = *c.EndpointAddr
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.SecretKey != nil {
		config.SecretKey = *c.SecretKey
	}
	if c.TokenValidity != nil {
		config.TokenValidity = time.Duration(c.TokenValidity.Duration)
	}
}
