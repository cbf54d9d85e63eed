package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/racfadmin/internal/flagx"
)

var knownFlags = []string{"-a", "-d", "-m", "-l", "-w"}

// parseFlags populates Config fields from command-line flags.
//
//	-a string     HTTP bind address (e.g. ":4000")
//	-d string     PostgreSQL DSN
//	-m            use the in-memory store (write -m=false to turn it off)
//	-l string     log level (debug, info, warn, error)
//	-w duration   graceful shutdown timeout
//
// Only the flags above are taken from args, so the JSON config flags can
// share the command line.
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("racfadmin-server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.BoolVar(&config.Memory, "m", config.Memory, "use in-memory storage")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.DurationVar(&config.ShutdownTimeout, "w", config.ShutdownTimeout, "graceful shutdown timeout")

	return fs.Parse(flagx.FilterArgs(args, knownFlags))
}
