package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/licscan/pkg/cache"
)

// cacheCommand groups the license cache maintenance subcommands. Only the
// file backend lives on disk; memory and redis caches are not managed here.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the license classification cache",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Remove all cached license classifications",
			Args:  cobra.NoArgs,
			RunE:  func(cmd *cobra.Command, _ []string) error { return runCacheClear() },
		},
		&cobra.Command{
			Use:   "info",
			Short: "Show the cache location and size",
			Args:  cobra.NoArgs,
			RunE:  func(cmd *cobra.Command, _ []string) error { return runCacheInfo() },
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the cache directory",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				dir, err := cacheDir()
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), dir)
				return nil
			},
		},
	)
	return cmd
}

// openFileCache returns the on-disk license cache, or nil when it was
// never created.
func openFileCache() (*cache.FileCache, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, fmt.Errorf("get cache dir: %w", err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}
	store, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return store.(*cache.FileCache), nil
}

func runCacheClear() error {
	fc, err := openFileCache()
	if err != nil {
		return err
	}
	if fc == nil {
		printInfo("Cache is empty")
		return nil
	}
	n, err := fc.Clear()
	if err != nil {
		return err
	}
	printSuccess("Cleared %d cached license classifications", n)
	printDetail("Directory: %s", fc.Dir())
	return nil
}

func runCacheInfo() error {
	fc, err := openFileCache()
	if err != nil {
		return err
	}
	if fc == nil {
		printInfo("Cache is empty")
		return nil
	}
	entries, size, err := fc.Stats()
	if err != nil {
		return err
	}
	printKeyValue("directory", fc.Dir())
	printKeyValue("entries", fmt.Sprint(entries))
	printKeyValue("size", fmt.Sprintf("%.1f KiB", float64(size)/1024))
	return nil
}
