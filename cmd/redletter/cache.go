// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/redletter/internal/store"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local page cache",
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete stale cached pages",
	Long: `Purge deletes cached pages older than the configured TTL. With a zero or
negative TTL it empties the cache entirely.`,
	RunE: runCachePurge,
}

func init() {
	cacheCmd.AddCommand(cachePurgeCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCachePurge(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if cfg.Cache.Dir == "" {
		return fmt.Errorf("caching is disabled (cache.dir is empty)")
	}

	cache, err := store.Open(cfg.Cache.Dir, cfg.Cache.TTL)
	if err != nil {
		return fmt.Errorf("opening page cache: %w", err)
	}
	defer cache.Close()

	n, err := cache.Purge(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("Purged %d cached page(s)\n", n)
	return nil
}
