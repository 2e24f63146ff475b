package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/harrison/reqlint/internal/cmd"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	rootCmd := cmd.NewRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	// Errors are printed here so findings can be reported without the "Error:" prefix
	rootCmd.SilenceErrors = true

	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, cmd.ErrLintFailed) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return cmd.ExitCode(err)
}
