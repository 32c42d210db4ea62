package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"strcheck/internal/diag"
	"strcheck/internal/diagfmt"
	"strcheck/internal/source"
)

// readArg runs fromPath for a file argument, or fromStdin with the contents
// of stdin for "-".
func readArg[R any](cmd *cobra.Command, arg string, fromPath func(string) (R, error), fromStdin func(string, []byte) (R, error)) (R, error) {
	if arg != "-" {
		return fromPath(arg)
	}
	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		var zero R
		return zero, fmt.Errorf("read stdin: %w", err)
	}
	return fromStdin("<stdin>", content)
}

// reportToStderr prints a non-empty bag in the pretty format.
func reportToStderr(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) error {
	if bag.Len() == 0 {
		return nil
	}
	stderr := cmd.ErrOrStderr()
	color, err := useColor(cmd, stderr)
	if err != nil {
		return err
	}
	diagfmt.Pretty(stderr, bag, fs, diagfmt.PrettyOpts{Color: color, ShowNotes: true})
	return nil
}

// dumpFormat validates --format for the dump commands.
func dumpFormat(cmd *cobra.Command) (string, error) {
	format, _ := cmd.Flags().GetString("format")
	if format != "pretty" && format != "json" {
		return "", fmt.Errorf("unknown format: %s", format)
	}
	return format, nil
}
