// Package scanner discovers plain documents under a set of root
// directories, filtering by extension and excluded directory names.
// It is pure traversal and holds no state between scans.
package scanner

import "time"

// DocInfo contains metadata about a discovered document.
type DocInfo struct {
	Path    string    // Absolute path
	Size    int64     // File size in bytes
	ModTime time.Time // Last modification time
}

// Options configures a scan.
type Options struct {
	// Roots are the directories to traverse. At least one is required.
	Roots []string

	// Extension is the document extension to match, dot included
	// (e.g. ".plain").
	Extension string

	// ExcludeDirs are directory names skipped on exact match.
	ExcludeDirs []string

	// IgnoreMarker skips any directory whose name starts with this
	// string (e.g. "." for dot-directories). Empty disables the check.
	IgnoreMarker string
}

// Result is streamed from the scanner channel. Exactly one of Doc and Err
// is set; Err carries traversal failures that abort a root.
type Result struct {
	Doc *DocInfo
	Err error
}
