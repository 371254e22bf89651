// Package config loads runtime configuration for the AUXillary CLI client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the server gRPC endpoint
//	-t int      per-request timeout (seconds)
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "10s" or
// integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "localhost:50051",
//	  "request_timeout": "10s"
//	}
//
// Flags must come before the command; everything after the first non-flag
// argument is returned to the caller as the command line.
package config
