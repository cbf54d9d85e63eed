package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/racfadmin/internal/flagx"
	"github.com/dmitrijs2005/racfadmin/internal/timex"
)

// JsonConfig is the on-disk shape. Durations accept "1500ms" or integer
// nanoseconds via timex.Duration. Keys left out keep their current value.
type JsonConfig struct {
	ServerURL         string         `json:"server_url"`
	ProbeTimeout      timex.Duration `json:"probe_timeout"`
	RequestTimeout    timex.Duration `json:"request_timeout"`
	StatusInterval    timex.Duration `json:"status_interval"`
	DatabasePath      string         `json:"database_path"`
	LogLevel          string         `json:"log_level"`
	S3Bucket          string         `json:"s3_bucket"`
	S3Region          string         `json:"s3_region"`
	S3Endpoint        string         `json:"s3_endpoint"`
	S3Prefix          string         `json:"s3_prefix"`
	S3AccessKeyID     string         `json:"s3_access_key_id"`
	S3SecretAccessKey string         `json:"s3_secret_access_key"`
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// parseJson overlays cfg with the file given by -c or -config in args.
// Without either flag it does nothing.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setIf(&cfg.ServerURL, jc.ServerURL)
	if jc.ProbeTimeout.Duration > 0 {
		cfg.ProbeTimeout = jc.ProbeTimeout.Duration
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.StatusInterval.Duration > 0 {
		cfg.StatusInterval = jc.StatusInterval.Duration
	}
	setIf(&cfg.DatabasePath, jc.DatabasePath)
	setIf(&cfg.LogLevel, jc.LogLevel)
	setIf(&cfg.S3.Bucket, jc.S3Bucket)
	setIf(&cfg.S3.Region, jc.S3Region)
	setIf(&cfg.S3.Endpoint, jc.S3Endpoint)
	setIf(&cfg.S3.Prefix, jc.S3Prefix)
	setIf(&cfg.S3.AccessKeyID, jc.S3AccessKeyID)
	setIf(&cfg.S3.SecretAccessKey, jc.S3SecretAccessKey)
	return nil
}
