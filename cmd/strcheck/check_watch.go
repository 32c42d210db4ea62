package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"strcheck/internal/driver"
	"strcheck/internal/project"
	"strcheck/internal/watch"
)

// watchedFile reports whether a change to path can alter a check result.
func watchedFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".cs") || filepath.Base(path) == project.ConfigFileName
}

func skippedDir(path string) bool {
	switch filepath.Base(path) {
	case "bin", "obj", ".git", ".vs", "node_modules":
		return true
	}
	return false
}

// watchLoop re-runs the check after each batch of source changes until the
// command context is cancelled (Ctrl+C).
func watchLoop(ctx context.Context, cmd *cobra.Command, roots []string, flags checkFlags, cache *driver.DiskCache) error {
	w, err := watch.New(roots, watch.Options{Match: watchedFile, SkipDir: skippedDir})
	if err != nil {
		return err
	}
	errOut := cmd.ErrOrStderr()
	if !flags.quiet {
		fmt.Fprintf(errOut, "watching %s for changes (Ctrl+C to stop)\n", strings.Join(roots, ", ")) //nolint:errcheck
	}
	return w.Run(ctx, func(ctx context.Context, changed []string) {
		if !flags.quiet {
			fmt.Fprintf(errOut, "\n%d %s changed, re-checking\n", len(changed), plural(len(changed), "file", "files")) //nolint:errcheck
		}
		if _, err := checkOnce(ctx, cmd, roots, flags, cache); err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(errOut, "strcheck: %v\n", err) //nolint:errcheck
		}
	})
}
