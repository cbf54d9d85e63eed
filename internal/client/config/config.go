package config

import (
	"time"

	"github.com/dmitrijs2005/racfadmin/internal/client/client"
)

// Config holds runtime settings for the racfadmin CLI.
type Config struct {
	ServerURL      string
	ProbeTimeout   time.Duration
	RequestTimeout time.Duration
	StatusInterval time.Duration
	DatabasePath   string
	LogLevel       string
	S3             S3Config
}

// S3Config describes where the export command writes snapshots. Empty
// credentials fall back to the default AWS credential chain.
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	Prefix          string
	AccessKeyID     string
	SecretAccessKey string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = client.DefaultBaseURL
	c.ProbeTimeout = 1500 * time.Millisecond
	c.RequestTimeout = 10 * time.Second
	c.StatusInterval = 5 * time.Second
	c.DatabasePath = "racfadmin.db"
	c.LogLevel = "warn"
	c.S3 = S3Config{Region: "us-east-1", Prefix: "racfadmin/"}
}

// LoadConfig applies defaults, then the JSON file named by -c/-config, then
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
