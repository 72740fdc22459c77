package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jonathan/agent-selector/internal/cache"
	"github.com/jonathan/agent-selector/internal/config"
	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the response cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached response",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how many responses are cached",
	Args:  cobra.NoArgs,
	RunE:  runCacheStats,
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheClear(cmd *cobra.Command, _ []string) error {
	return withPersistentStore(cmd, func(ctx context.Context, backend string, store cache.Store) error {
		return clearCache(ctx, cmd.OutOrStdout(), store)
	})
}

func runCacheStats(cmd *cobra.Command, _ []string) error {
	return withPersistentStore(cmd, func(ctx context.Context, backend string, store cache.Store) error {
		return writeCacheStats(ctx, cmd.OutOrStdout(), backend, store)
	})
}

// withPersistentStore opens the configured backend for fn. Backends that keep
// nothing between runs are reported instead.
func withPersistentStore(cmd *cobra.Command, fn func(ctx context.Context, backend string, store cache.Store) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	switch cfg.CacheBackend {
	case config.CacheNone, config.CacheMemory:
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Cache backend %q keeps nothing between runs\n", cfg.CacheBackend)
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	return fn(ctx, cfg.CacheBackend, store)
}

func clearCache(ctx context.Context, out io.Writer, store cache.Store) error {
	n, err := store.Clear(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	_, err = fmt.Fprintf(out, "Removed %d cached responses\n", n)
	return err
}

func writeCacheStats(ctx context.Context, out io.Writer, backend string, store cache.Store) error {
	n, err := store.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count cached responses: %w", err)
	}

	_, err = fmt.Fprintf(out, "%d cached responses (%s)\n", n, backend)
	return err
}
