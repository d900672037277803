package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"mergelint/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove cached check results",
	Long:  "Remove the results stored by check --cache so that every document is checked again.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := driver.DiskCacheDir(cacheAppName)
		if err != nil {
			return fmt.Errorf("failed to locate cache: %w", err)
		}
		return cleanCache(cmd.OutOrStdout(), dir)
	},
}

func cleanCache(out io.Writer, dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			_, _ = fmt.Fprintf(out, "cache directory not found\n")
			return nil
		}
		return fmt.Errorf("failed to stat %q: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%q is not a directory", dir)
	}
	cache, err := driver.OpenDiskCacheAt(dir)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to clear %q: %w", dir, err)
	}
	_, _ = fmt.Fprintf(out, "removed cached results in %s\n", dir)
	return nil
}
