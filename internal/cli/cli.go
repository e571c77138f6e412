// Package cli implements the isomers command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/isomers/internal/config"
	"github.com/matzehuels/isomers/pkg/buildinfo"
	"github.com/matzehuels/isomers/pkg/cache"
	"github.com/matzehuels/isomers/pkg/observability"
	"github.com/matzehuels/isomers/pkg/service"
)

// =============================================================================
// Constants
// =============================================================================

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
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "isomers",
		Short: "Isomers counts unlabeled trees and alkane isomers",
		Long: `Isomers counts unlabeled trees with bounded vertex degree exactly, using
integer partitions and multiset combinatorics. With the default degree of 4
the counts are the structural isomers of the alkanes CnH2n+2.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd.Context())
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/isomers/config.toml)")

	root.AddCommand(c.countCommand())
	root.AddCommand(c.rootedCommand())
	root.AddCommand(c.tableCommand())
	root.AddCommand(c.partitionsCommand())
	root.AddCommand(c.benchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration and registers logging hooks.
func (c *CLI) setup(ctx context.Context) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	hooks := &logHooks{logger: c.Logger}
	observability.SetCountHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a service runner for CLI use. The returned close
// function releases the cache backend.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*service.Runner, func(), error) {
	store, keyer, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, nil, err
	}
	r := service.NewRunner(store, keyer, c.Logger)
	r.Limits = c.Config.ErrorLimits()
	return r, func() { _ = store.Close() }, nil
}

// newCache opens the configured backend. A file cache that cannot be
// created degrades to no caching rather than failing the command.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, cache.Keyer, error) {
	cc := c.Config.Cache
	if noCache || cc.Backend == config.BackendNone {
		return cache.NewNullCache(), nil, nil
	}

	if cc.Backend == config.BackendRedis {
		store, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cc.RedisAddr,
			Password: cc.RedisPassword,
			DB:       cc.RedisDB,
			Prefix:   cc.Prefix,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, cache.NewScopedKeyer(nil, cc.Prefix), nil
	}

	dir, err := c.Config.CacheDir()
	if err != nil {
		c.Logger.Debug("no cache directory, caching disabled", "err", err)
		return cache.NewNullCache(), nil, nil
	}
	store, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Debug("cannot create cache directory, caching disabled", "dir", dir, "err", err)
		return cache.NewNullCache(), nil, nil
	}
	return store, nil, nil
}
