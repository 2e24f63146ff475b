package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/harrison/reqlint/internal/filelock"
	"github.com/harrison/reqlint/internal/logger"
	"github.com/harrison/reqlint/internal/report"
)

// NewReportCommand creates and returns the report subcommand
func NewReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <file-or-directory>...",
		Short: "Write a Markdown advisory report for requirements",
		Long: `Analyze requirements and write a Markdown review that quotes each
failing requirement with its issues and a suggested fix.

The report is advisory: findings never make this command fail. Use
"reqlint lint" as the blocking gate.

Default output: <report_dir>/lint_advice.md (report_dir defaults to docs/reviews)`,
		Args: cobra.MinimumNArgs(1),
		RunE: runReport,
	}

	addAnalysisFlags(cmd)
	cmd.Flags().StringP("out", "o", "", "Destination Markdown file")

	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = filepath.Join(cfg.ReportDir, report.DefaultAdvisoryFile)
	}

	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	set, err := loadRequirements(commandContext(cmd), args, cmd.ErrOrStderr(), log)
	if err != nil {
		return err
	}

	result := newAnalyzer(cfg, log).Analyze(set.Requirements)

	var buf bytes.Buffer
	if err := report.RenderAdvisory(&buf, report.New(set, result)); err != nil {
		return err
	}
	if err := filelock.LockAndWrite(commandContext(cmd), out, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
	return nil
}
