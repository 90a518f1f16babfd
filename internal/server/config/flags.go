package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/tokenkeeper/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string          HTTP bind address (e.g., ":8080")
//	-g string          gRPC health bind address (e.g., ":50051")
//	-driver string     database/sql driver: pgx or sqlite
//	-d string          database DSN
//	-t int             token validity, seconds
//	-reuse bool        return a still-valid token from /obtain-token
//	-rt int            per-request storage timeout, seconds
//	-l string          log file (empty: stdout)
//	-log-level string  debug, info, warn or error
//
// Duration flags are integers in seconds.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-driver", "-d", "-t", "-reuse", "-rt", "-l", "-log-level"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run the HTTP API")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port to run the gRPC health endpoint")
	fs.StringVar(&config.DatabaseDriver, "driver", config.DatabaseDriver, "database driver (pgx or sqlite)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")

	tokenValidityDuration := fs.Int("t", int(config.TokenValidityDuration.Seconds()), "token_validity_duration (in seconds)")
	fs.BoolVar(&config.ReuseValidToken, "reuse", config.ReuseValidToken, "return the existing valid token on obtain")
	requestTimeout := fs.Int("rt", int(config.RequestTimeout.Seconds()), "request_timeout (in seconds)")

	fs.StringVar(&config.LogFile, "l", config.LogFile, "log file")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidityDuration) * time.Second
	config.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
