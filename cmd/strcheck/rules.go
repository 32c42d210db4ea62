package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"strcheck/internal/lint"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the rules strcheck knows",
	Args:  cobra.NoArgs,
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().String("format", "text", "output format (text|json)")
}

type ruleJSON struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	Description string `json:"description"`
}

func runRules(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch strings.ToLower(format) {
	case "text":
		return renderRulesText(cmd.OutOrStdout(), lint.Descriptors())
	case "json":
		return renderRulesJSON(cmd.OutOrStdout(), lint.Descriptors())
	default:
		return fmt.Errorf("unknown format %q (expected text|json)", format)
	}
}

func renderRulesText(out io.Writer, rules []lint.Descriptor) error {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("CODE", "RULE", "SEVERITY", "TITLE").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == 0 { // заголовок
				return header
			}
			return cell
		})
	for _, d := range rules {
		t.Row(d.Code.ID(), string(d.ID), d.Severity.Label(), d.Title)
	}
	_, err := fmt.Fprintln(out, t.Render())
	return err
}

func renderRulesJSON(out io.Writer, rules []lint.Descriptor) error {
	payload := make([]ruleJSON, 0, len(rules))
	for _, d := range rules {
		payload = append(payload, ruleJSON{
			ID:          string(d.ID),
			Code:        d.Code.ID(),
			Title:       d.Title,
			Category:    d.Category,
			Severity:    d.Severity.Label(),
			Message:     d.Message,
			Description: d.Description,
		})
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
