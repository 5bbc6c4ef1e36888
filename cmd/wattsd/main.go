package main

import (
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dabloons/wattsd/internal/config"
	"github.com/dabloons/wattsd/internal/server"
	"github.com/dabloons/wattsd/internal/store/sqlite"
	"github.com/dabloons/wattsd/internal/utils"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	// Set up Viper for configuration
	v := viper.New()
	v.SetEnvPrefix("WATTS")
	v.AutomaticEnv()

	// Set up command line flags
	pflag.String("log-level", "info", "Log level (debug, info, warn, error)")
	pflag.String("log-format", "text", "Log format (text, json)")
	pflag.String("config", "", "Path to config file")
	pflag.String("listen", "", "HTTP API listen address")
	pflag.Parse()

	// Bind flags to Viper - this ensures flags take precedence
	v.BindPFlag("logging.level", pflag.Lookup("log-level"))
	v.BindPFlag("logging.format", pflag.Lookup("log-format"))
	v.BindPFlag("api.listen_address", pflag.Lookup("listen"))

	// Load configuration
	cfg, err := config.Load(config.DaemonConfigFilename, v.GetString("config"))
	if err != nil {
		logger := utils.SetupErrorLogger()
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if pflag.Lookup("log-level").Changed {
		cfg.Logging.Level = v.GetString("logging.level")
	}
	if pflag.Lookup("log-format").Changed {
		cfg.Logging.Format = v.GetString("logging.format")
	}
	if pflag.Lookup("listen").Changed {
		cfg.API.ListenAddress = v.GetString("api.listen_address")
	}

	// The level variable is shared with the HTTP logging endpoint and the
	// config watcher so the level can change at runtime.
	logLevel := &slog.LevelVar{}
	logger := utils.SetupLogger(cfg.Logging.Level, cfg.Logging.Format, logLevel)
	utils.SetAsDefaultLogger(logger)

	logger.Info("Starting wattsd",
		"version", version,
		"commit", commit,
		"buildDate", buildDate,
	)

	cfg.WatchLogLevel(logger, logLevel)

	if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0o755); err != nil {
		logger.Error("failed to create data directory", "error", err)
		os.Exit(1)
	}
	st, err := sqlite.Open(cfg.Store.Path, logger)
	if err != nil {
		logger.Error("failed to open store", "path", cfg.Store.Path, "error", err)
		os.Exit(1)
	}

	srv := server.New(logger, cfg, st, logLevel, server.BuildInfo{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
	})

	if err := srv.Start(); err != nil {
		logger.Error("Failed to start server", "error", err)
		st.Close()
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	logger.Info("Shutting down...")

	srv.Stop()
}
