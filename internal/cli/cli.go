// Package cli implements the cliptower command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cliptower/pkg/buildinfo"
	"github.com/matzehuels/cliptower/pkg/cache"
	"github.com/matzehuels/cliptower/pkg/config"
	"github.com/matzehuels/cliptower/pkg/editor"
	"github.com/matzehuels/cliptower/pkg/errors"
	"github.com/matzehuels/cliptower/pkg/render/dot"
	"github.com/matzehuels/cliptower/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "cliptower"

	// configFile is looked up in the config directory when --config is unset.
	configFile = "config.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	envFile    string
	noCache    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Cliptower places clips on multi-track video timelines",
		Long:         `Cliptower is the placement engine of a multi-track timeline editor: it previews drags, decides where clips land, snaps and pushes them apart, and splits and trims them. The CLI runs it over timeline files, serves it over HTTP and MCP, and stores timeline documents.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "config file (default: <config dir>/cliptower/config.toml if present)")
	pf.StringVar(&c.envFile, "env-file", ".env", "environment file with connection overrides")
	pf.BoolVar(&c.noCache, "no-cache", false, "disable the replay and render cache")

	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.dropCommand())
	root.AddCommand(c.splitCommand())
	root.AddCommand(c.trimCommand())
	root.AddCommand(c.replayCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.mcpCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig reads --config (or the default config file if it exists) and
// applies environment overrides.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg := config.Default()
	path := c.configPath
	if path == "" {
		if dir, err := configDir(); err == nil {
			if p := filepath.Join(dir, configFile); fileExists(p) {
				path = p
			}
		}
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
		c.Logger.Debug("loaded config", "path", path)
	}
	if err := config.LoadEnv(&cfg, c.envFile); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// =============================================================================
// Runner Factory
// =============================================================================

// newEditor creates an editor runner for CLI use.
func (c *CLI) newEditor(ctx context.Context, cfg config.Config) (*editor.Editor, error) {
	ch, err := c.newCache(ctx, cfg)
	if err != nil {
		return nil, err
	}
	ed := editor.New(cfg.Placement(), ch, nil, c.Logger)
	if ttl, _ := cfg.CacheTTL(); ttl > 0 {
		ed.ReplayTTL = ttl
	}
	return ed, nil
}

// newRenderer creates a DOT renderer sharing the editor's cache.
func newRenderer(ed *editor.Editor) *dot.Renderer {
	return &dot.Renderer{Cache: ed.Cache, Keyer: ed.Keyer}
}

func (c *CLI) newCache(ctx context.Context, cfg config.Config) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cfg.Cache.RedisAddr, appName+":")
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to redis at %s", cfg.Cache.RedisAddr)
		}
		return rc, nil
	}
	dir := cfg.Cache.Dir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	return cache.NewFileCache(dir)
}

func (c *CLI) openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	if cfg.Store.Backend == config.StoreFile && cfg.Store.Dir == "" {
		dir, err := dataDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorage, err, "locate data directory")
		}
		cfg.Store.Dir = filepath.Join(dir, "timelines")
	}
	return store.Open(ctx, cfg.Store)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/cliptower/).
func cacheDir() (string, error) {
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

// configDir returns ~/.config/cliptower/ or its XDG override.
func configDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// dataDir returns ~/.local/share/cliptower/ or its XDG override.
func dataDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func xdgDir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, appName), nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
