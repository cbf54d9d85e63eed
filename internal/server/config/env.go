package config

import (
	"fmt"

	"github.com/spf13/viper"
)

const envPrefix = "RACF"

// parseEnv overlays config with RACF_ENDPOINT_ADDR, RACF_DATABASE_DSN,
// RACF_MEMORY, RACF_LOG_LEVEL and RACF_SHUTDOWN_TIMEOUT when they are set.
func parseEnv(config *Config) error {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{"endpoint_addr", "database_dsn", "memory", "log_level", "shutdown_timeout"} {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if v.IsSet("endpoint_addr") {
		config.EndpointAddr = v.GetString("endpoint_addr")
	}
	if v.IsSet("database_dsn") {
		config.DatabaseDSN = v.GetString("database_dsn")
	}
	if v.IsSet("memory") {
		config.Memory = v.GetBool("memory")
	}
	if v.IsSet("log_level") {
		config.LogLevel = v.GetString("log_level")
	}
	if v.IsSet("shutdown_timeout") {
		d := v.GetDuration("shutdown_timeout")
		if d <= 0 {
			return fmt.Errorf("invalid %s_SHUTDOWN_TIMEOUT %q", envPrefix, v.GetString("shutdown_timeout"))
		}
		config.ShutdownTimeout = d
	}
	return nil
}
