package config

import (
	"flag"
	"io"
	"time"
)

// parseFlags populates Config fields from args and returns the arguments
// left after the flags. -c/-config are accepted here and consumed by
// parseJson.
func parseFlags(cfg *Config, args []string) ([]string, error) {
	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var configPath string
	fs.StringVar(&configPath, "c", "", "path to JSON config")
	fs.StringVar(&configPath, "config", "", "path to JSON config")

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	return fs.Args(), nil
}
