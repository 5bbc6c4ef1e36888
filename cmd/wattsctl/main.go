package main

import (
	"context"
	"os"

	"github.com/dabloons/wattsd/cmd/wattsctl/commands"
	"github.com/dabloons/wattsd/internal/config"
	"github.com/dabloons/wattsd/internal/utils"
	"github.com/dabloons/wattsd/pkg/client"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	// Load configuration; defaults apply when no config file exists.
	cfg, err := config.Load(config.ClientConfigFilename, "")
	if err != nil {
		logger := utils.SetupErrorLogger()
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	rootCmd := commands.NewRootCommand(nil, version, commit, buildDate)

	// Flags are parsed before execution so logging and the server URL can
	// be set up for every command.
	_ = rootCmd.PersistentFlags().Parse(os.Args[1:])

	if lvl, _ := rootCmd.PersistentFlags().GetString("log-level"); rootCmd.PersistentFlags().Changed("log-level") {
		cfg.Logging.Level = lvl
	}
	if format, _ := rootCmd.PersistentFlags().GetString("log-format"); rootCmd.PersistentFlags().Changed("log-format") {
		cfg.Logging.Format = format
	}

	logger := utils.SetupLogger(cfg.Logging.Level, cfg.Logging.Format, nil)
	utils.SetAsDefaultLogger(logger)

	server := cfg.Client.Server
	if server == "" {
		server = config.DefaultServerURL
	}
	if flagServer, _ := rootCmd.PersistentFlags().GetString("server"); flagServer != "" {
		server = flagServer
	}

	apiClient := client.New(logger, server)

	ctx := rootCmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, commands.ClientContextKey, apiClient)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
