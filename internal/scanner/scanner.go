package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Scanner discovers indexable documents. Stateless; safe for reuse.
type Scanner struct{}

// New creates a new Scanner instance.
func New() *Scanner {
	return &Scanner{}
}

// Scan streams discovered documents over the returned channel. The channel
// is closed when every root has been traversed. Entries that cannot be
// read are skipped rather than surfaced; only root-level failures are
// reported as Result errors.
func (s *Scanner) Scan(ctx context.Context, opts Options) (<-chan Result, error) {
	if len(opts.Roots) == 0 {
		return nil, fmt.Errorf("at least one root directory is required")
	}
	if opts.Extension == "" {
		return nil, fmt.Errorf("document extension is required")
	}

	absRoots := make([]string, 0, len(opts.Roots))
	for _, root := range opts.Roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve root %q: %w", root, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("failed to stat root directory: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("root path is not a directory: %s", abs)
		}
		absRoots = append(absRoots, abs)
	}

	results := make(chan Result, 64)

	go func() {
		defer close(results)
		for _, root := range absRoots {
			s.scanRoot(ctx, root, opts, results)
		}
	}()

	return results, nil
}

// scanRoot walks one root directory, streaming matching documents.
func (s *Scanner) scanRoot(ctx context.Context, root string, opts Options, results chan<- Result) {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return nil // Skip entries we can't access
		}

		name := d.Name()
		if d.IsDir() {
			if path != root && s.shouldExcludeDir(name, opts) {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(name, opts.Extension) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		doc := &DocInfo{
			Path:    path,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		}

		select {
		case results <- Result{Doc: doc}:
		case <-ctx.Done():
			return ctx.Err()
		}
		return nil
	})

	if err != nil && err != context.Canceled {
		select {
		case results <- Result{Err: err}:
		case <-ctx.Done():
		}
	}
}

// shouldExcludeDir reports whether a directory name is excluded, either by
// exact match against the configured list or by the ignore marker prefix.
func (s *Scanner) shouldExcludeDir(name string, opts Options) bool {
	if opts.IgnoreMarker != "" && strings.HasPrefix(name, opts.IgnoreMarker) {
		return true
	}
	for _, excluded := range opts.ExcludeDirs {
		if name == excluded {
			return true
		}
	}
	return false
}
