// Package excel persists month sheets into a local .xlsx workbook via
// excelize.
package excel

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"reconcile/internal/core"
	"reconcile/internal/layout"
	ports "reconcile/internal/sheets"
)

const defaultSheetName = "Sheet1"

// Writer appends one sheet per run to the workbook at Path. An existing
// workbook is opened and extended, so prior month sheets are preserved; a
// missing one is created fresh.
type Writer struct {
	path string
}

var _ ports.GridWriter = (*Writer)(nil)

func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// WriteSheet adds the named sheet and writes the grid into it. The save goes
// through a temp file renamed over the target, so a failed run leaves the
// workbook untouched.
func (w *Writer) WriteSheet(ctx context.Context, name string, grid layout.Grid) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, fresh, err := w.open()
	if err != nil {
		return err
	}
	defer f.Close()

	if !fresh {
		idx, err := f.GetSheetIndex(name)
		if err != nil {
			return fmt.Errorf("lookup sheet %q: %w", name, err)
		}
		if idx != -1 {
			return fmt.Errorf("%w: sheet %q already exists in %s", core.ErrValidation, name, w.path)
		}
	}

	idx, err := f.NewSheet(name)
	if err != nil {
		return fmt.Errorf("create sheet %q: %w", name, err)
	}
	f.SetActiveSheet(idx)
	if fresh && name != defaultSheetName {
		if err := f.DeleteSheet(defaultSheetName); err != nil {
			return fmt.Errorf("remove default sheet: %w", err)
		}
	}

	for _, cell := range grid.Cells {
		if cell.Formula != "" {
			err = f.SetCellFormula(name, cell.Ref, cell.Formula)
		} else {
			err = f.SetCellValue(name, cell.Ref, cell.Value)
		}
		if err != nil {
			return fmt.Errorf("write cell %s: %w", cell.Ref, err)
		}
	}
	for _, m := range grid.Merges {
		if err := f.MergeCell(name, m.From, m.To); err != nil {
			return fmt.Errorf("merge %s:%s: %w", m.From, m.To, err)
		}
	}

	return w.save(f)
}

func (w *Writer) open() (f *excelize.File, fresh bool, err error) {
	_, statErr := os.Stat(w.path)
	switch {
	case statErr == nil:
		f, err = excelize.OpenFile(w.path)
		if err != nil {
			return nil, false, fmt.Errorf("open workbook %s: %w", w.path, err)
		}
		return f, false, nil
	case errors.Is(statErr, os.ErrNotExist):
		return excelize.NewFile(), true, nil
	default:
		return nil, false, fmt.Errorf("stat workbook %s: %w", w.path, statErr)
	}
}

// save writes to a sibling temp file and renames it over the target.
func (w *Writer) save(f *excelize.File) error {
	dir := filepath.Dir(w.path)
	tmp, err := os.CreateTemp(dir, ".reconcile-*.xlsx")
	if err != nil {
		return fmt.Errorf("create temp workbook: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	if err := f.SaveAs(tmpPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("save workbook: %w", err)
	}
	if err := os.Rename(tmpPath, w.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace workbook %s: %w", w.path, err)
	}
	return nil
}
