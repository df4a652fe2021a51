// Package cli implements the statesearch command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/statesearch/pkg/buildinfo"
	"github.com/matzehuels/statesearch/pkg/cache"
	"github.com/matzehuels/statesearch/pkg/history"
	"github.com/matzehuels/statesearch/pkg/solver"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "statesearch"

	// envRedisURL selects a Redis solution cache instead of the file cache.
	envRedisURL = "STATESEARCH_REDIS_URL"

	// envMongoURI selects a MongoDB run history instead of SQLite.
	envMongoURI = "STATESEARCH_MONGO_URI"

	// mongoDatabase is the database used under envMongoURI.
	mongoDatabase = appName
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

	// Out receives command output. Logs go to the logger's writer.
	Out io.Writer
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), Out: os.Stdout}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   appName,
		Short: "Statesearch solves puzzles with classic state-space search",
		Long: `Statesearch explores the state space of small puzzles (the 8-puzzle and
tic-tac-toe) with breadth-first, depth-first, depth-limited, best-first,
branch-and-bound, A* and hill-climbing search, and shows the path it found.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Out)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.walkCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.strategiesCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// storeFlags selects the cache and history backends of a command.
type storeFlags struct {
	noCache   bool
	noHistory bool
}

func (f *storeFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the solution cache")
	cmd.Flags().BoolVar(&f.noHistory, "no-history", false, "do not record the run")
}

// newRunner creates a solver runner. STATESEARCH_REDIS_URL and
// STATESEARCH_MONGO_URI select networked backends; otherwise results are
// cached on disk and runs recorded in SQLite.
func (c *CLI) newRunner(ctx context.Context, f storeFlags) (*solver.Runner, error) {
	sc, err := c.newCache(ctx, f.noCache)
	if err != nil {
		return nil, err
	}
	store, err := c.newHistory(ctx, f.noHistory)
	if err != nil {
		sc.Close()
		return nil, err
	}
	return solver.NewRunner(sc, nil, store, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, disabled bool) (cache.Cache, error) {
	if disabled {
		return cache.NewNullCache(), nil
	}
	if url := os.Getenv(envRedisURL); url != "" {
		rc, err := cache.NewRedisCache(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("connect cache: %w", err)
		}
		c.Logger.Debug("using redis cache")
		return rc, nil
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

func (c *CLI) newHistory(ctx context.Context, disabled bool) (history.Store, error) {
	if disabled {
		return history.NullStore{}, nil
	}
	if uri := os.Getenv(envMongoURI); uri != "" {
		ms, err := history.NewMongoStore(ctx, uri, mongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("connect history: %w", err)
		}
		c.Logger.Debug("using mongo history")
		return ms, nil
	}
	path, err := history.DefaultPath()
	if err != nil {
		c.Logger.Warn("history disabled", "err", err)
		return history.NullStore{}, nil
	}
	return history.NewSQLiteStore(path)
}
