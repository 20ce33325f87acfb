// Package sheets declares the outbound workbook port implemented by the
// backend adapters.
package sheets

import (
	"context"

	"reconcile/internal/layout"
)

// GridWriter persists one laid-out month sheet. Implementations must be
// all-or-nothing: a failed write leaves the target unchanged.
type GridWriter interface {
	WriteSheet(ctx context.Context, name string, grid layout.Grid) error
}
