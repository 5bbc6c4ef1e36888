package config

import (
	"os"
	"path/filepath"
)

// GetConfigBaseDir returns the base directory for configuration files
func GetConfigBaseDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		// For system service, XDG_CONFIG_HOME is set to /etc/wattsd
		// so we return it directly without appending ConfigDirName
		if dir == "/etc/wattsd" {
			return dir
		}
		return filepath.Join(dir, ConfigDirName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", ConfigDirName)
}

// GetConfigPath returns the full path to a configuration file
func GetConfigPath(filename string) string {
	return filepath.Join(GetConfigBaseDir(), filename)
}

// GetDaemonConfigPath returns the full path to the daemon configuration file
func GetDaemonConfigPath() string {
	return GetConfigPath(DaemonConfigFilename)
}

// GetClientConfigPath returns the full path to the client configuration file
func GetClientConfigPath() string {
	return GetConfigPath(ClientConfigFilename)
}

// GetDataBaseDir returns the base directory for persistent data (the store)
func GetDataBaseDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, ConfigDirName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", ConfigDirName)
}

// GetDefaultStorePath returns the default path for the sqlite store
func GetDefaultStorePath() string {
	return filepath.Join(GetDataBaseDir(), StoreFilename)
}

// ValidateDiscoveryInterval validates and converts the discovery interval
// Returns the interval in seconds, clamped to the minimum allowed value
func ValidateDiscoveryInterval(intervalSeconds int) int {
	minSeconds := int(MinDiscoveryInterval.Seconds())
	if intervalSeconds < minSeconds {
		return minSeconds
	}
	return intervalSeconds
}
