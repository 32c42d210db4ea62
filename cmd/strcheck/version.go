package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"strcheck/internal/version"
)

type versionPayload struct {
	Tool       string `json:"tool"`
	Version    string `json:"version"`
	GitCommit  string `json:"git_commit,omitempty"`
	GitMessage string `json:"git_message,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
}

// buildField is one optional line of `strcheck version`.
type buildField struct {
	flag  string
	usage string
	label string
	value func() string
	put   func(*versionPayload, string)
}

var buildFields = []buildField{
	{"hash", "include git commit hash", "commit", func() string { return version.GitCommit },
		func(p *versionPayload, v string) { p.GitCommit = v }},
	{"message", "include git commit message", "message", func() string { return version.GitMessage },
		func(p *versionPayload, v string) { p.GitMessage = v }},
	{"date", "include build timestamp", "built", func() string { return version.BuildDate },
		func(p *versionPayload, v string) { p.BuildDate = v }},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show strcheck build information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	for _, f := range buildFields {
		versionCmd.Flags().Bool(f.flag, false, f.usage)
	}
	versionCmd.Flags().Bool("full", false, "show every recorded bit of build metadata")
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	full, _ := cmd.Flags().GetBool("full")

	var shown []buildField
	for _, f := range buildFields {
		if on, _ := cmd.Flags().GetBool(f.flag); on || full {
			shown = append(shown, f)
		}
	}
	v := strings.TrimSpace(version.Version)
	if v == "" {
		v = "dev"
	}

	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "pretty":
		color, err := useColor(cmd, out)
		if err != nil {
			return err
		}
		if v == version.Version {
			v = version.Colored(color)
		}
		fmt.Fprintf(out, "strcheck %s\n", v) //nolint:errcheck
		for _, f := range shown {
			fmt.Fprintf(out, "%-8s %s\n", f.label+":", orUnknown(f.value())) //nolint:errcheck
		}
		return nil
	case "json":
		payload := versionPayload{Tool: "strcheck", Version: v}
		for _, f := range shown {
			f.put(&payload, orUnknown(f.value()))
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}
	return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
}

func orUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "unknown"
	}
	return s
}
