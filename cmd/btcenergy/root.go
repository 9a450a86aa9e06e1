package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jgoulah/btcenergy/internal/config"
	"github.com/jgoulah/btcenergy/internal/energy"
	"github.com/jgoulah/btcenergy/internal/explorer"
	"github.com/jgoulah/btcenergy/internal/logger"
)

var (
	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "btcenergy",
	Short: "Estimate Bitcoin transaction energy from blockchain.info data",
	Long: `btcenergy estimates the energy of Bitcoin transactions from their byte size
(size x 4.56 kWh, a placeholder coefficient) using the public blockchain.info API.
It answers per-block, per-day and per-wallet queries from the command line or over GraphQL.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultConfigPath()
}

// loadConfig loads the configuration file
func loadConfig() (*config.Config, error) {
	return config.Load(getConfigPath())
}

// newLogger builds the logger, letting --log-level win over the config file
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level := cfg.GetLogLevel()
	if logLevel != "" {
		level = logLevel
	}
	return logger.New(logger.Options{Level: level, Format: cfg.GetLogFormat()})
}

// newService wires the explorer client, its response cache and the energy service
func newService(cfg *config.Config, log *zap.Logger) (*energy.Service, error) {
	cache, err := explorer.NewResponseCache(explorer.DefaultCacheSize)
	if err != nil {
		return nil, err
	}

	client := explorer.NewClient(cache,
		explorer.WithBaseURL(cfg.GetExplorerBaseURL()),
		explorer.WithLogger(log.Named("explorer")),
	)
	return energy.NewService(client, energy.WithLogger(log.Named("energy"))), nil
}

// setup loads config, logger and service for a subcommand
func setup() (*config.Config, *zap.Logger, *energy.Service, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}

	log, err := newLogger(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("creating logger: %w", err)
	}

	svc, err := newService(cfg, log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("creating service: %w", err)
	}
	return cfg, log, svc, nil
}
