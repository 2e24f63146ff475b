package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/reqlint/internal/filelock"
	"github.com/harrison/reqlint/internal/parser"
)

// NewExtractCommand creates and returns the extract subcommand
func NewExtractCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <markdown-file>",
		Short: "Convert free-form Markdown requirements into YAML records",
		Long: `Extract requirement records from a Markdown document.

Every paragraph and top-level list item becomes a requirement with a
sequential id (R001, R002, ...). Headings set the category, statements
starting with "As a" are functional, and items nested under a functional
item become its acceptance criteria. Fenced code is ignored.

The records are written as YAML to --out, or to stdout when --out is omitted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			return runExtract(cmd, args[0], out)
		},
	}

	cmd.Flags().StringP("out", "o", "", "Destination YAML file (default: stdout)")

	return cmd
}

func runExtract(cmd *cobra.Command, input, out string) error {
	if parser.DetectFormat(input) != parser.FormatMarkdown {
		return fmt.Errorf("extract expects a Markdown file (.md, .markdown), got %s", input)
	}

	set, err := parser.ParseFile(input)
	if err != nil {
		return err
	}
	set.Normalize()

	data, err := parser.MarshalYAML(set)
	if err != nil {
		return err
	}

	if out == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	if err := filelock.LockAndWrite(commandContext(cmd), out, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d requirements)\n", out, len(set.Requirements))
	return nil
}
