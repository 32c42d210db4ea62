package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"strcheck/internal/diagfmt"
	"strcheck/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.cs",
	Short: "Print the tokens of a C# source file (\"-\" reads stdin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Bool("trivia", false, "keep comments and whitespace tokens")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := dumpFormat(cmd)
	if err != nil {
		return err
	}
	var opts driver.TokenizeOptions
	opts.Trivia, _ = cmd.Flags().GetBool("trivia")
	opts.MaxDiagnostics, _ = cmd.Root().PersistentFlags().GetInt("max-diagnostics")

	res, err := readArg(cmd, args[0],
		func(path string) (*driver.TokenizeResult, error) { return driver.Tokenize(path, opts) },
		func(name string, content []byte) (*driver.TokenizeResult, error) {
			return driver.TokenizeSource(name, content, opts), nil
		})
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	if err := reportToStderr(cmd, res.Bag, res.FileSet); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		err = diagfmt.FormatTokensJSON(out, res.Tokens, res.FileSet)
	} else {
		err = diagfmt.FormatTokensPretty(out, res.Tokens, res.FileSet)
	}
	if err == nil && res.Bag.HasErrors() {
		err = errFindings
	}
	return err
}
