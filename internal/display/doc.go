// Package display provides terminal output helpers for the reqlint CLI:
// file loading progress and yellow warning blocks.
//
// Colors are applied only when the destination is a terminal (detected with
// go-isatty) and NO_COLOR is unset, so captured output in tests and pipes is
// plain text.
//
// Progress for multi-file runs:
//
//	progress := display.NewProgressIndicator(os.Stderr, len(files))
//	progress.Start()
//	for _, file := range files {
//	    set, _ := parser.ParseFile(file)
//	    progress.Step(file, len(set.Requirements))
//	}
//	progress.Complete()
//
// Warnings:
//
//	display.NormalizationWarning("reqs.yaml", warnings).Display(os.Stderr)
package display
