package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	API       APIConfig       `mapstructure:"api"`
	Hue       HueConfig       `mapstructure:"hue"`
	Nanoleaf  NanoleafConfig  `mapstructure:"nanoleaf"`
	Store     StoreConfig     `mapstructure:"store"`
	Discovery DiscoveryConfig `mapstructure:"discovery"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Client    ClientConfig    `mapstructure:"client"`

	// Internal viper instance
	v *viper.Viper
}

// APIConfig represents the HTTP API configuration
type APIConfig struct {
	ListenAddress string `mapstructure:"listen_address"`

	// RequestsPerMinute is the per-IP rate limit; 0 disables limiting.
	RequestsPerMinute int `mapstructure:"requests_per_minute"`
}

// HueConfig represents the Hue bridge configuration
type HueConfig struct {
	// Bridge is the bridge host or host:port.
	Bridge string `mapstructure:"bridge"`

	// Username is the bridge-local application key obtained by pairing.
	Username string `mapstructure:"username"`
}

// NanoleafConfig represents the Nanoleaf integration configuration
type NanoleafConfig struct {
	// Tokens maps device ids to their auth tokens.
	Tokens map[string]string `mapstructure:"tokens"`
}

// StoreConfig represents the persistent store configuration
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// DiscoveryConfig represents the discovery configuration
type DiscoveryConfig struct {
	Interval int  `mapstructure:"interval"` // seconds
	Enabled  bool `mapstructure:"enabled"`
}

// ClientConfig represents the wattsctl client configuration
type ClientConfig struct {
	// Server is the base URL of the daemon's HTTP API.
	Server string `mapstructure:"server"`
}

// LoggingConfig represents the logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// New creates a Config bound to the given viper instance with defaults
// applied. Used by tests and by Load.
func New(v *viper.Viper) *Config {
	setDefaults(v)
	return &Config{v: v}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.listen_address", DefaultAPIListenAddress)
	v.SetDefault("api.requests_per_minute", 120)
	v.SetDefault("store.path", GetDefaultStorePath())
	v.SetDefault("discovery.interval", int(DefaultDiscoveryInterval.Seconds()))
	v.SetDefault("discovery.enabled", true)
	v.SetDefault("logging.level", LogLevelInfo)
	v.SetDefault("logging.format", LogFormatText)
	v.SetDefault("client.server", DefaultServerURL)
}

// Load loads configuration from a file and environment variables
func Load(configName, configFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("yaml")

	setDefaults(v)

	// Add config paths
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		configPath := GetConfigPath(configName)
		v.SetConfigFile(configPath)

		// Create config directory if it doesn't exist
		if err := os.MkdirAll(GetConfigBaseDir(), 0o755); err != nil {
			return nil, fmt.Errorf("error creating config directory: %w", err)
		}
	}

	// Read config file - defaults apply if the file doesn't exist
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			if _, statErr := os.Stat(v.ConfigFileUsed()); statErr == nil {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	// Bind environment variables
	v.SetEnvPrefix("WATTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{v: v}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.Discovery.Interval = ValidateDiscoveryInterval(cfg.Discovery.Interval)
	return cfg, nil
}

// Save saves the configuration to the file it was loaded from
func (c *Config) Save() error {
	c.v.Set("api", c.API)
	c.v.Set("hue", c.Hue)
	c.v.Set("nanoleaf", c.Nanoleaf)
	c.v.Set("store", c.Store)
	c.v.Set("discovery", c.Discovery)
	c.v.Set("logging", c.Logging)
	c.v.Set("client", c.Client)

	if err := c.v.WriteConfig(); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

// WatchLogLevel watches the config file and applies logging.level changes to
// the given LevelVar at runtime. Other fields require a restart.
func (c *Config) WatchLogLevel(logger *slog.Logger, level *slog.LevelVar) {
	c.v.OnConfigChange(func(e fsnotify.Event) {
		newLevel := ParseLogLevel(c.v.GetString("logging.level"))
		if level.Level() != newLevel {
			logger.Info("config: log level changed", "file", e.Name, "level", newLevel)
			level.Set(newLevel)
		}
	})
	c.v.WatchConfig()
}

// ParseLogLevel converts a level name to a slog.Level, defaulting to info.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Get retrieves a value from the configuration
func (c *Config) Get(key string) any {
	if c.v == nil {
		return nil
	}
	return c.v.Get(key)
}

// Set sets a value in the configuration
func (c *Config) Set(key string, value any) {
	if c.v == nil {
		return
	}
	c.v.Set(key, value)
}
