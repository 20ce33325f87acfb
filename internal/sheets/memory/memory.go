// Package memory is an in-memory workbook backend used by tests and as a
// dry-run target.
package memory

import (
	"context"
	"fmt"
	"sync"

	"reconcile/internal/core"
	"reconcile/internal/layout"
	ports "reconcile/internal/sheets"
)

type Store struct {
	mu     sync.Mutex
	sheets map[string]layout.Grid
}

var _ ports.GridWriter = (*Store)(nil)

func New() *Store {
	return &Store{sheets: make(map[string]layout.Grid)}
}

// WriteSheet stores the grid under the sheet name. Month labels are unique
// per workbook, so a duplicate name is rejected.
func (s *Store) WriteSheet(_ context.Context, name string, grid layout.Grid) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sheets[name]; ok {
		return fmt.Errorf("%w: sheet %q already exists", core.ErrValidation, name)
	}
	s.sheets[name] = grid
	return nil
}

// Sheet returns the stored grid for name.
func (s *Store) Sheet(name string) (layout.Grid, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.sheets[name]
	return g, ok
}

// SheetCount returns how many sheets have been written.
func (s *Store) SheetCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sheets)
}
