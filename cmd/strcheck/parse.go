package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"strcheck/internal/ast"
	"strcheck/internal/diagfmt"
	"strcheck/internal/driver"
	"strcheck/internal/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.cs",
	Short: "Parse a C# source file and print its syntax tree (\"-\" reads stdin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	parseCmd.Flags().Bool("types", false, "bind the file and show the static type of each expression")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := dumpFormat(cmd)
	if err != nil {
		return err
	}
	var opts driver.ParseOptions
	opts.Bind, _ = cmd.Flags().GetBool("types")
	opts.MaxDiagnostics, _ = cmd.Root().PersistentFlags().GetInt("max-diagnostics")

	res, err := readArg(cmd, args[0],
		func(path string) (*driver.ParseResult, error) { return driver.Parse(path, opts) },
		func(name string, content []byte) (*driver.ParseResult, error) {
			return driver.ParseSource(name, content, opts)
		})
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	if err := reportToStderr(cmd, res.Bag, res.FileSet); err != nil {
		return err
	}

	var astOpts diagfmt.ASTOpts
	if s := res.Sema; s != nil {
		// пустая строка - без аннотации
		astOpts.ExprType = func(id ast.ExprID) string {
			if t := s.TypeOf(id); t != types.NoTypeID {
				return s.TypeInterner.Display(t)
			}
			return ""
		}
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		err = diagfmt.FormatASTJSON(out, res.Builder, res.FileID, astOpts)
	} else {
		err = diagfmt.FormatASTPretty(out, res.Builder, res.FileID, res.FileSet, astOpts)
	}
	if err == nil && res.Bag.HasErrors() {
		err = errFindings
	}
	return err
}
