// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the redletter CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/redletter/internal/gateway"
	"github.com/pdiddy/redletter/internal/passage"
	"github.com/pdiddy/redletter/internal/store"
	"github.com/pdiddy/redletter/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the redletter CLI.
var rootCmd = &cobra.Command{
	Use:   "redletter",
	Short: "Fetch Bible passages with red letters transferred across editions",
	Long: `redletter fetches Bible passages from BibleGateway and colors the words
of Jesus in editions that lack native red-letter markup. A reference edition
whose markup marks direct speech is analyzed once per passage; its per-verse
masks are then transferred onto every requested edition.

Subcommands: fetch renders passages to stdout, analyze inspects the masks a
passage produces, serve runs the web UI, and cache manages the page cache.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./redletter.yaml or ~/.config/redletter/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("redletter")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "redletter"))
		}
	}

	viper.SetEnvPrefix("REDLETTER")
	viper.AutomaticEnv()

	viper.SetDefault("gateway.reference_edition", "CEB")
	viper.SetDefault("gateway.request_delay", "1s")
	viper.SetDefault("cache.dir", "cache")
	viper.SetDefault("cache.ttl", "24h")
	viper.SetDefault("serve.addr", ":5001")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig materializes the viper state into the typed config.
func loadConfig() types.Config {
	var cfg types.Config
	cfg.Gateway.BaseURL = viper.GetString("gateway.base_url")
	cfg.Gateway.UserAgent = viper.GetString("gateway.user_agent")
	cfg.Gateway.Timeout = viper.GetDuration("gateway.timeout")
	cfg.Gateway.ReferenceEdition = viper.GetString("gateway.reference_edition")
	cfg.Gateway.RequestDelay = viper.GetDuration("gateway.request_delay")
	cfg.Cache.Dir = viper.GetString("cache.dir")
	cfg.Cache.TTL = viper.GetDuration("cache.ttl")
	cfg.Serve.Addr = viper.GetString("serve.addr")
	return cfg
}

// buildLogger returns a development-encoded stderr logger, at debug
// level when --verbose is set.
func buildLogger(cmd *cobra.Command) (*zap.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}

// newPipeline wires cache, gateway, and logger from config. The
// returned cleanup closes the cache and flushes the logger.
func newPipeline(cmd *cobra.Command, cfg types.Config) (*passage.Pipeline, *zap.Logger, func(), error) {
	log, err := buildLogger(cmd)
	if err != nil {
		return nil, nil, nil, err
	}

	var cache *store.Cache
	if cfg.Cache.Dir != "" {
		cache, err = store.Open(cfg.Cache.Dir, cfg.Cache.TTL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening page cache: %w", err)
		}
	}

	client := gateway.New(cfg.Gateway, cache)
	cleanup := func() {
		if cache != nil {
			cache.Close()
		}
		_ = log.Sync()
	}
	return passage.New(client, log), log, cleanup, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
