package config

import "time"

// Common constants shared between daemon and client
const (
	// ConfigDirName is the name of the config directory within XDG_CONFIG_HOME
	ConfigDirName = "watts"

	// DaemonConfigFilename is the base filename for daemon config
	DaemonConfigFilename = "wattsd.yaml"

	// ClientConfigFilename is the base filename for client config
	ClientConfigFilename = "wattsctl.yaml"

	// StoreFilename is the base filename for the sqlite store
	StoreFilename = "wattsd.db"

	// DefaultAPIListenAddress is the default HTTP API listen address
	DefaultAPIListenAddress = ":9123"

	// DefaultServerURL is the daemon URL wattsctl talks to when no
	// server is configured
	DefaultServerURL = "http://localhost:9123"
)

// Default timeouts and intervals
const (
	// DefaultDiscoveryInterval is the default interval for mDNS discovery
	DefaultDiscoveryInterval = 30 * time.Second

	// MinDiscoveryInterval is the minimum allowed discovery interval
	MinDiscoveryInterval = 5 * time.Second

	// DefaultOperationTimeout is the default deadline for a room-wide
	// state operation across all vendors
	DefaultOperationTimeout = 10 * time.Second
)

// Logging constants
const (
	// LogLevelDebug represents debug log level
	LogLevelDebug = "debug"

	// LogLevelInfo represents info log level
	LogLevelInfo = "info"

	// LogLevelWarn represents warning log level
	LogLevelWarn = "warn"

	// LogLevelError represents error log level
	LogLevelError = "error"

	// LogFormatText represents text log format
	LogFormatText = "text"

	// LogFormatJSON represents JSON log format
	LogFormatJSON = "json"
)
