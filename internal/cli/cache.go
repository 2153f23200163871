package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cliptower/pkg/cache"
	"github.com/matzehuels/cliptower/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the replay and render cache",
	}
	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())
	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached replay and render",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Cache.Backend == config.CacheNone {
				printInfo("Caching is disabled")
				return nil
			}
			ch, err := c.newCache(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer ch.Close()

			switch ch := ch.(type) {
			case *cache.FileCache:
				if err := ch.Clear(); err != nil {
					return err
				}
				printSuccess("Cleared cache")
				printDetail("Directory: %s", ch.Dir())
			case *cache.RedisCache:
				if err := ch.Clear(cmd.Context()); err != nil {
					return err
				}
				printSuccess("Cleared cache")
				printDetail("Redis: %s", cfg.Cache.RedisAddr)
			default:
				printInfo("Cache is empty")
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			dir := cfg.Cache.Dir
			if dir == "" {
				if dir, err = cacheDir(); err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), dir)
			return err
		},
	}
}

// configCommand prints the effective configuration.
func (c *CLI) configCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return cfg.Encode(cmd.OutOrStdout())
		},
	}
}
