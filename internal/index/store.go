// Package index maintains the in-memory concept index: two mappings from
// concept name to occurrence lists, one for definitions and one for usages,
// plus the coordinator that keeps them consistent under rebuilds and
// per-document updates.
package index

import (
	"github.com/plainhq/plaindex/internal/document"
)

// Store holds the two concept mappings. It is an explicit owned object;
// callers hold a handle rather than reaching for package state. The store
// itself does not lock: the Coordinator is its single owner and serializes
// every access.
type Store struct {
	definitions map[string][]document.Occurrence
	usages      map[string][]document.Occurrence
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		definitions: make(map[string][]document.Occurrence),
		usages:      make(map[string][]document.Occurrence),
	}
}

// Clear discards all entries from both mappings.
func (s *Store) Clear() {
	s.definitions = make(map[string][]document.Occurrence)
	s.usages = make(map[string][]document.Occurrence)
}

// ReplaceDocument replaces a document's occurrences in both mappings as a
// unit: every entry tagged with path is purged, then the fresh extraction
// is folded in. No stale partial entries survive.
func (s *Store) ReplaceDocument(path string, ext document.Extraction) {
	s.RemoveDocument(path)
	for _, occ := range ext.Definitions {
		s.definitions[occ.Name] = append(s.definitions[occ.Name], occ)
	}
	for _, occ := range ext.Usages {
		s.usages[occ.Name] = append(s.usages[occ.Name], occ)
	}
}

// RemoveDocument purges every occurrence tagged with path from both
// mappings. A concept whose list becomes empty loses its key entirely;
// no empty-list residue is left behind.
func (s *Store) RemoveDocument(path string) {
	purge(s.definitions, path)
	purge(s.usages, path)
}

func purge(m map[string][]document.Occurrence, path string) {
	for name, occs := range m {
		kept := occs[:0]
		for _, occ := range occs {
			if occ.DocumentPath != path {
				kept = append(kept, occ)
			}
		}
		if len(kept) == 0 {
			delete(m, name)
		} else {
			m[name] = kept
		}
	}
}

// Definitions returns the definition occurrences for a concept name.
// Unknown names yield an empty slice, never nil.
func (s *Store) Definitions(name string) []document.Occurrence {
	return copyOccurrences(s.definitions[name])
}

// Usages returns the usage occurrences for a concept name.
// Unknown names yield an empty slice, never nil.
func (s *Store) Usages(name string) []document.Occurrence {
	return copyOccurrences(s.usages[name])
}

func copyOccurrences(occs []document.Occurrence) []document.Occurrence {
	out := make([]document.Occurrence, len(occs))
	copy(out, occs)
	return out
}

// Stats summarizes the store's contents.
type Stats struct {
	DefinedConcepts int `json:"defined_concepts"`
	UsedConcepts    int `json:"used_concepts"`
	Definitions     int `json:"definitions"`
	Usages          int `json:"usages"`
}

// Stats returns occurrence and key counts for both mappings.
func (s *Store) Stats() Stats {
	st := Stats{
		DefinedConcepts: len(s.definitions),
		UsedConcepts:    len(s.usages),
	}
	for _, occs := range s.definitions {
		st.Definitions += len(occs)
	}
	for _, occs := range s.usages {
		st.Usages += len(occs)
	}
	return st
}
