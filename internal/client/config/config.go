package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the AUXillary CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - RequestTimeout: deadline applied to each call to the server.
type Config struct {
	ServerEndpointAddr string
	RequestTimeout     time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "localhost:50051"
	c.RequestTimeout = 10 * time.Second
}

// Load builds a Config from defaults, the JSON file and flags in args, and
// returns the remaining positional arguments.
func Load(args []string) (*Config, []string, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, nil, err
	}

	rest, err := parseFlags(cfg, args)
	if err != nil {
		return nil, nil, err
	}

	if cfg.ServerEndpointAddr == "" {
		return nil, nil, fmt.Errorf("server address is required")
	}
	if cfg.RequestTimeout <= 0 {
		return nil, nil, fmt.Errorf("request timeout must be positive")
	}

	return cfg, rest, nil
}
