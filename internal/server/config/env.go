package config

import "github.com/kelseyhightower/envconfig"

// EnvPrefix is prepended to every variable name, e.g. TOKENKEEPER_DB_DSN.
const EnvPrefix = "TOKENKEEPER"

// parseEnv overlays Config with TOKENKEEPER_* environment variables.
// Unset variables leave the current value alone. Malformed values panic,
// like a malformed JSON file does.
func parseEnv(config *Config) {
	if err := envconfig.Process(EnvPrefix, config); err != nil {
		panic(err)
	}
}
