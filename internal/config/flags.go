package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server listen address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "24h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-hash-key request integrity hash key
//	-server-url base URL of the remote document store (client)
//	-queue-db local sync queue SQLite path (client)
//	-session-file restored session file path (client)
//	-sync-interval background drain interval (client)
//	-max-retries attempts per queued item before it settles as failed
//	-backoff-base base delay of the exponential retry backoff
//	-backoff-cap cap of the exponential retry backoff
//	-probe-interval connectivity probe interval (client)
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var hashKey string
	var serverURL string
	var queueDBPath string
	var sessionFilePath string
	var syncInterval time.Duration
	var maxRetries int
	var backoffBase time.Duration
	var backoffCap time.Duration
	var probeInterval time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 24h, 30m)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&hashKey, "hash-key", "", "Request integrity hash key")
	flag.StringVar(&serverURL, "server-url", "", "Remote document store base URL")
	flag.StringVar(&queueDBPath, "queue-db", "", "Local sync queue SQLite path")
	flag.StringVar(&sessionFilePath, "session-file", "", "Restored session file path")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Background drain interval")
	flag.IntVar(&maxRetries, "max-retries", 0, "Attempts per queued item before it fails")
	flag.DurationVar(&backoffBase, "backoff-base", 0, "Exponential retry backoff base (0 disables)")
	flag.DurationVar(&backoffCap, "backoff-cap", 0, "Exponential retry backoff cap")
	flag.DurationVar(&probeInterval, "probe-interval", 0, "Connectivity probe interval")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
			HashKey:       hashKey,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Client: Client{
			ServerURL:       serverURL,
			RequestTimeout:  requestTimeout,
			QueueDBPath:     queueDBPath,
			SessionFilePath: sessionFilePath,
		},
		Sync: Sync{
			Interval:      syncInterval,
			MaxRetries:    maxRetries,
			BackoffBase:   backoffBase,
			BackoffCap:    backoffCap,
			ProbeInterval: probeInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
