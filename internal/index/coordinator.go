package index

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/plainhq/plaindex/internal/document"
	"github.com/plainhq/plaindex/internal/scanner"
)

// CoordinatorConfig contains configuration for the Coordinator.
type CoordinatorConfig struct {
	// Roots are the directories scanned during a rebuild.
	Roots []string

	// Extension is the recognized document extension, dot included.
	Extension string

	// ExcludeDirs are directory names skipped during discovery.
	ExcludeDirs []string

	// IgnoreMarker skips directories whose name starts with it.
	IgnoreMarker string

	// Scanner discovers documents. Required for Rebuild.
	Scanner *scanner.Scanner
}

// Coordinator owns the Store and applies rebuilds and per-document
// updates. It is the index's single writer; readers go through its
// lookup methods.
type Coordinator struct {
	config CoordinatorConfig
	store  *Store

	// rebuilding is the busy flag: a rebuild already in progress causes
	// a new request to no-op immediately rather than queue.
	rebuilding atomic.Bool

	// mu guards store access and the per-document error markers.
	mu        sync.RWMutex
	docErrors map[string]string
}

// NewCoordinator creates a coordinator with an empty store.
func NewCoordinator(config CoordinatorConfig) *Coordinator {
	return &Coordinator{
		config:    config,
		store:     NewStore(),
		docErrors: make(map[string]string),
	}
}

// Rebuild discards the index and re-extracts every discoverable document.
// Documents are processed strictly sequentially. A concurrent call is
// skipped with a log note; the busy flag is always released, even when a
// rebuild fails partway.
func (c *Coordinator) Rebuild(ctx context.Context) error {
	if !c.rebuilding.CompareAndSwap(false, true) {
		slog.Info("rebuild already in progress, skipping")
		return nil
	}
	defer c.rebuilding.Store(false)

	start := time.Now()

	results, err := c.config.Scanner.Scan(ctx, scanner.Options{
		Roots:        c.config.Roots,
		Extension:    c.config.Extension,
		ExcludeDirs:  c.config.ExcludeDirs,
		IgnoreMarker: c.config.IgnoreMarker,
	})
	if err != nil {
		return err
	}

	fresh := NewStore()
	freshErrors := make(map[string]string)
	var processed int

	for result := range results {
		if result.Err != nil {
			slog.Warn("document scan failed", slog.String("error", result.Err.Error()))
			continue
		}

		path := result.Doc.Path
		content, err := os.ReadFile(path)
		if err != nil {
			// One bad document never aborts a rebuild; it just
			// contributes zero occurrences.
			freshErrors[path] = err.Error()
			slog.Warn("failed to read document",
				slog.String("path", path),
				slog.String("error", err.Error()))
			continue
		}

		fresh.ReplaceDocument(path, document.Extract(path, string(content)))
		processed++
	}

	c.mu.Lock()
	c.store = fresh
	c.docErrors = freshErrors
	stats := c.store.Stats()
	c.mu.Unlock()

	slog.Info("index rebuilt",
		slog.Int("documents", processed),
		slog.Int("defined_concepts", stats.DefinedConcepts),
		slog.Int("usage_entries", stats.Usages),
		slog.Duration("duration", time.Since(start)))

	return ctx.Err()
}

// Update re-extracts a single document and patches the index: purge all
// occurrences tagged with the path, then fold in the fresh extraction.
// Paths with a non-matching extension are a no-op. A vanished document
// is treated as a removal.
func (c *Coordinator) Update(ctx context.Context, path string) error {
	if !strings.HasSuffix(path, c.config.Extension) {
		return nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		c.mu.Lock()
		c.store.RemoveDocument(path)
		if os.IsNotExist(err) {
			delete(c.docErrors, path)
		} else {
			c.docErrors[path] = err.Error()
		}
		c.mu.Unlock()

		if os.IsNotExist(err) {
			slog.Debug("document removed from index", slog.String("path", path))
			return nil
		}
		slog.Warn("failed to read document on update",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil
	}

	ext := document.Extract(path, string(content))

	c.mu.Lock()
	c.store.ReplaceDocument(path, ext)
	delete(c.docErrors, path)
	c.mu.Unlock()

	slog.Debug("document reindexed",
		slog.String("path", path),
		slog.Int("definitions", len(ext.Definitions)),
		slog.Int("usages", len(ext.Usages)))
	return nil
}

// Remove purges a deleted document's occurrences.
func (c *Coordinator) Remove(path string) {
	if !strings.HasSuffix(path, c.config.Extension) {
		return
	}
	c.mu.Lock()
	c.store.RemoveDocument(path)
	delete(c.docErrors, path)
	c.mu.Unlock()
	slog.Debug("document removed from index", slog.String("path", path))
}

// LookupDefinitions returns definition occurrences for a concept name.
// Unknown names yield an empty, non-nil slice.
func (c *Coordinator) LookupDefinitions(name string) []document.Occurrence {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.Definitions(name)
}

// LookupUsages returns usage occurrences for a concept name.
// Unknown names yield an empty, non-nil slice.
func (c *Coordinator) LookupUsages(name string) []document.Occurrence {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.Usages(name)
}

// Stats returns current index statistics.
func (c *Coordinator) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.Stats()
}

// DocumentErrors returns the per-document error markers recorded by the
// last rebuild or update, keyed by absolute path.
func (c *Coordinator) DocumentErrors() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]string, len(c.docErrors))
	for path, msg := range c.docErrors {
		out[path] = msg
	}
	return out
}
