package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harrison/reqlint/internal/models"
	"github.com/harrison/reqlint/internal/validation/rubric"
)

// NewRulesCommand creates and returns the rules subcommand
func NewRulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the quality rules and the active banned words",
		Args:  cobra.NoArgs,
		RunE:  runRules,
	}

	addAnalysisFlags(cmd)

	return cmd
}

func runRules(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RULE\tAPPLIES TO\tDESCRIPTION")
	for _, rule := range rubric.Rules() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", rule.ID, appliesTo(rule.Kinds), rule.Description)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	words := cfg.EffectiveBannedWords()
	fmt.Fprintf(out, "\nBanned words (%d): %s\n", len(words), strings.Join(words, ", "))
	fmt.Fprintf(out, "Conflict thresholds: availability spread > %g points, latency ratio > %g\n",
		cfg.AvailabilityTolerance, cfg.LatencyRatio)
	return nil
}

func appliesTo(kinds []models.Kind) string {
	if len(kinds) == 0 {
		return "all"
	}
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}
