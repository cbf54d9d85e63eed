package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/racfadmin/internal/flagx"
)

var knownFlags = []string{"-s", "-t", "-r", "-i", "-d", "-l", "-b"}

// parseFlags populates Config fields from command-line flags.
//
//	-s string     base URL of the remote user service
//	-t duration   health probe timeout
//	-r duration   timeout for other remote calls
//	-i duration   how often the prompt refreshes online/offline mode
//	-d string     path of the local SQLite database
//	-l string     log level (debug, info, warn, error)
//	-b string     S3 bucket for the export command
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("racfadmin", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "s", cfg.ServerURL, "remote user service base URL")
	fs.DurationVar(&cfg.ProbeTimeout, "t", cfg.ProbeTimeout, "health probe timeout")
	fs.DurationVar(&cfg.RequestTimeout, "r", cfg.RequestTimeout, "remote request timeout")
	fs.DurationVar(&cfg.StatusInterval, "i", cfg.StatusInterval, "online status check interval")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.S3.Bucket, "b", cfg.S3.Bucket, "S3 bucket for export")

	return fs.Parse(flagx.FilterArgs(args, knownFlags))
}
