package config

import (
	"errors"
	"flag"
	"fmt"
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

// ParseFlags parses the daemon flags from args.
//
// Flags:
//
//	-a daemon address in format [host]:[port]
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-account account id scoping the sync namespace
//	-domains comma separated URL glob patterns of supported pages
//	-upload-filter host substring required for upload-on-demand
//	-page-dsn SQLite file of the page namespace
//	-sync-dsn PostgreSQL DSN of the sync namespace, or "memory"
//	-quota sync namespace capacity in bytes
//	-staging JSON file of the device-local namespace
//	-drain-interval periodic drain interval, 0 disables
//	-log-level minimal log level
//	-c/-config config file path (JSON or YAML)
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("favsyncd", flag.ContinueOnError)

	var serverAddress NetAddress
	var requestTimeout, drainInterval time.Duration
	var accountID, domains, uploadFilter, logLevel string
	var pageDSN, syncDSN, stagingPath, configPath string
	var quota int

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&accountID, "account", "", "Account id")
	fs.StringVar(&domains, "domains", "", "Comma separated URL patterns of supported pages")
	fs.StringVar(&uploadFilter, "upload-filter", "", "Host substring required for upload")
	fs.StringVar(&pageDSN, "page-dsn", "", "Page storage SQLite file")
	fs.StringVar(&syncDSN, "sync-dsn", "", "Sync storage DSN")
	fs.IntVar(&quota, "quota", 0, "Sync storage quota in bytes")
	fs.StringVar(&stagingPath, "staging", "", "Staging storage file")
	fs.DurationVar(&drainInterval, "drain-interval", 0, "Periodic drain interval")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&configPath, "c", "", "Config file path")
	fs.StringVar(&configPath, "config", "", "Config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			AccountID:        accountID,
			Domains:          splitList(domains),
			UploadHostFilter: uploadFilter,
			LogLevel:         logLevel,
		},
		Storage: Storage{
			Page:    PageStorage{DSN: pageDSN},
			Sync:    SyncStorage{DSN: syncDSN, QuotaBytes: quota},
			Staging: StagingStorage{Path: stagingPath},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			DrainInterval: drainInterval,
		},
		FilePath: configPath,
	}, nil
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
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

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
