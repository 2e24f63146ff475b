package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for reqlint
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reqlint",
		Short: "Requirements quality linter",
		Long: `reqlint checks software requirements for quality problems.

It loads requirement statements from Markdown or YAML files, evaluates
each one against a fixed rubric (vague wording, missing units, unspecific
availability, latency and security language, missing acceptance criteria)
and reports numeric targets that contradict each other across requirements.

Findings are deterministic; the same input always yields the same report.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.AddCommand(NewLintCommand())
	cmd.AddCommand(NewExtractCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewReportCommand())
	cmd.AddCommand(NewRulesCommand())

	return cmd
}
