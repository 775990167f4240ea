// Package cli implements the licscan command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/licscan/pkg/buildinfo"
	"github.com/matzehuels/licscan/pkg/cache"
	"github.com/matzehuels/licscan/pkg/deps"
	"github.com/matzehuels/licscan/pkg/deps/pub"
	"github.com/matzehuels/licscan/pkg/license"
	"github.com/matzehuels/licscan/pkg/shell"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "licscan"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// languages lists the package managers a scan can target, in detection order.
var languages = []*deps.Language{
	pub.Language,
}

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	hooks  *stageHooks
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	logger := newLogger(w, level)
	return &CLI{Logger: logger, hooks: newStageHooks(logger)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "licscan reports the open-source licenses of a project's dependencies",
		Long:         `licscan resolves every package a project depends on, classifies each as root, direct or transitive, and reports its license, origin and dependencies.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c.hooks.register()
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.scanCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Collaborator Factories
// =============================================================================

// newCache opens the license cache backend selected by cfg.
// A file cache that cannot be created degrades to no caching.
func newCache(ctx context.Context, cfg config) (cache.Cache, error) {
	switch cfg.Cache {
	case cacheNone:
		return cache.NewNullCache(), nil
	case cacheMemory:
		return cache.NewMemoryCache(cache.DefaultMemoryEntries)
	case cacheRedis:
		return cache.NewRedisCache(ctx, cfg.RedisURL)
	default:
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// newClassifier builds the license classifier. Without a scanner binary
// every license is reported empty.
func newClassifier(cfg config, runner shell.Runner, store cache.Cache, logger *log.Logger) license.Classifier {
	bin := cfg.LicenseScanner
	if bin == "" {
		bin = license.DefaultScanner
	}
	path, ok := shell.LookPath(bin)
	if !ok {
		logger.Warn("license scanner not found, licenses will be empty", "scanner", bin)
		return license.Nop{}
	}
	logger.Debug("using license scanner", "path", path)
	s := license.NewScanner(path, runner)
	return license.NewCached(s, store, filepath.Base(bin), cache.DefaultTTL)
}

// selectLanguage returns the language named by cfg, or detects it in dir.
func selectLanguage(dir string, cfg config) (*deps.Language, error) {
	if cfg.Manager != "" {
		return deps.Lookup(cfg.Manager, languages...)
	}
	return deps.Detect(dir, languages...)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/licscan/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
