package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"simplecache/internal/auth"
	"simplecache/internal/cache"
	"simplecache/internal/config"
	"simplecache/internal/server"

	"github.com/spf13/cobra"
)

// flagOrDefault returns the flag value when it was given, otherwise fallback.
func flagOrDefault(cmd *cobra.Command, name, fallback string) string {
	if v, _ := cmd.Flags().GetString(name); v != "" {
		return v
	}
	return fallback
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	cfg.ApplicationName = flagOrDefault(cmd, "app", cfg.ApplicationName)
	cfg.DataDir = flagOrDefault(cmd, "data-dir", cfg.DataDir)
	cfg.DatabasePath = flagOrDefault(cmd, "db", cfg.DatabasePath)
	if lvl := flagOrDefault(cmd, "log-level", ""); lvl != "" {
		if cfg.LogLevel, err = config.ParseLevel(lvl); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// withCache opens the configured cache for the duration of fn.
func withCache(cmd *cobra.Command, fn func(ctx context.Context, c *cache.SqliteObjectCache) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	c := server.OpenCache(cfg, cache.WithLogger(server.NewLogger(cfg)))
	defer c.Close()
	return fn(cmd.Context(), c)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "simplecache",
		Short:         "Inspect and maintain a SimpleCache database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("app", "", "application name (env SIMPLECACHE_APP_NAME)")
	root.PersistentFlags().String("data-dir", "", "base data directory (env SIMPLECACHE_DATA_DIR)")
	root.PersistentFlags().String("db", "", "explicit database file (env SIMPLECACHE_DB_PATH)")
	root.PersistentFlags().String("log-level", "", "trace, debug, info, warn or error (env SIMPLECACHE_LOG_LEVEL)")

	root.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print the database location",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig(cmd)
				if err != nil {
					return err
				}
				p, err := server.DatabasePath(cfg)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), p)
				return nil
			},
		},
		newKeysCmd(),
		&cobra.Command{
			Use:   "stat <key>",
			Short: "Show the metadata of an entry",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withCache(cmd, func(ctx context.Context, c *cache.SqliteObjectCache) error {
					info, err := c.Stat(ctx, args[0])
					if err != nil {
						return err
					}
					return printJSON(cmd, info)
				})
			},
		},
		&cobra.Command{
			Use:   "get <key>",
			Short: "Decode an entry and print it as JSON",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withCache(cmd, func(ctx context.Context, c *cache.SqliteObjectCache) error {
					v, err := c.GetValue(ctx, args[0])
					if err != nil {
						return err
					}
					return printJSON(cmd, v)
				})
			},
		},
		&cobra.Command{
			Use:   "invalidate-type <type>",
			Short: "Delete every entry stored under a type tag",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withCache(cmd, func(ctx context.Context, c *cache.SqliteObjectCache) error {
					n, err := c.InvalidateTag(ctx, args[0])
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "deleted %d entries\n", n)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "vacuum",
			Short: "Delete expired entries and compact the database",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withCache(cmd, func(ctx context.Context, c *cache.SqliteObjectCache) error {
					n, err := c.Vacuum(ctx)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "removed %d expired entries\n", n)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "hash-password <password>",
			Short: "Print a bcrypt hash for SIMPLECACHE_ADMIN_PASSWORD_HASH",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				hash, err := auth.HashPassword(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), hash)
				return nil
			},
		},
		&cobra.Command{
			Use:   "serve",
			Short: "Run the admin API",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig(cmd)
				if err != nil {
					return err
				}
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				return server.Run(ctx, cfg, server.NewLogger(cfg))
			},
		},
	)
	return root
}

func newKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List cache keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, _ := cmd.Flags().GetString("type")
			return withCache(cmd, func(ctx context.Context, c *cache.SqliteObjectCache) error {
				keys, err := c.Keys(ctx, tag)
				if err != nil {
					return err
				}
				for _, k := range keys {
					fmt.Fprintln(cmd.OutOrStdout(), k)
				}
				return nil
			})
		},
	}
	cmd.Flags().String("type", "", "only list keys stored under this type tag")
	return cmd
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
