package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/auxillary/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-w string   HTTP bind address (e.g., ":8080")
//	-D string   database driver ("pgx" or "sqlite")
//	-d string   database DSN
//	-l string   log level (debug, info, warn, error)
//	-f string   log format (json, text)
//	-t int      shutdown timeout, seconds
//
// Only the flags above are looked at, so -c/-config and unknown arguments
// never make parsing fail.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, "a", "w", "D", "d", "l", "f", "t")

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "gRPC address and port")
	fs.StringVar(&config.EndpointAddrHTTP, "w", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.DatabaseDriver, "D", config.DatabaseDriver, "database driver")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogFormat, "f", config.LogFormat, "log format")

	shutdownTimeout := fs.Int("t", int(config.ShutdownTimeout.Seconds()), "shutdown timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	config.ShutdownTimeout = time.Duration(*shutdownTimeout) * time.Second
	return nil
}
