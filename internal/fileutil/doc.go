// Package fileutil discovers requirement files on disk.
//
// ScanDirectory walks a directory with extension, pattern, depth and
// exclusion filters and returns sorted absolute file paths together with
// every directory it visited. The directory list feeds watch mode, which has
// to register each directory with the file system notifier individually.
//
// Hidden directories (names starting with ".") are skipped unless
// IncludeHidden is set. Errors on individual entries are collected in
// ScanResult.Errors and do not stop the walk; only a missing root or an
// invalid pattern fails the scan.
//
// Example:
//
//	result, err := fileutil.ScanDirectory("docs/requirements", fileutil.ScanOptions{
//	    Extensions:  []string{".md", ".yaml"},
//	    Recursive:   true,
//	    ExcludeDirs: []string{"drafts"},
//	})
//	if err != nil {
//	    return err
//	}
//	for _, file := range result.Files {
//	    fmt.Println(file)
//	}
package fileutil
