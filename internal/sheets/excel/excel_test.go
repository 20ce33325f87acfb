package excel

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"reconcile/internal/core"
	"reconcile/internal/layout"
)

func sampleGrid() layout.Grid {
	records := []core.ClassifiedExpense{
		{
			Expense: core.Expense{
				Date:        core.NewDate(2025, 9, 1),
				Description: "Coffee",
				Amount:      4.5,
			},
			Category: "Food",
			Kind:     core.KindRegular,
		},
	}
	return layout.BuildMonthGrid(records)
}

func TestWriteSheet_CreatesWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.xlsx")
	w := NewWriter(path)

	if err := w.WriteSheet(context.Background(), "2025-09", sampleGrid()); err != nil {
		t.Fatalf("WriteSheet() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open written workbook: %v", err)
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex("2025-09"); err != nil || idx == -1 {
		t.Fatalf("sheet 2025-09 missing (idx %d, err %v)", idx, err)
	}
	// The default sheet is replaced, not kept alongside.
	if idx, _ := f.GetSheetIndex("Sheet1"); idx != -1 {
		t.Error("default Sheet1 still present in fresh workbook")
	}

	got, err := f.GetCellValue("2025-09", "C7")
	if err != nil {
		t.Fatalf("read C7: %v", err)
	}
	if got != "Coffee" {
		t.Errorf("C7 = %q, want %q", got, "Coffee")
	}

	formula, err := f.GetCellFormula("2025-09", "D8")
	if err != nil {
		t.Fatalf("read D8 formula: %v", err)
	}
	if formula != "SUM(D7:D7)" {
		t.Errorf("D8 formula = %q, want SUM(D7:D7)", formula)
	}
}

func TestWriteSheet_PreservesExistingSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.xlsx")
	w := NewWriter(path)
	ctx := context.Background()

	if err := w.WriteSheet(ctx, "2025-08", sampleGrid()); err != nil {
		t.Fatalf("first WriteSheet() error = %v", err)
	}
	if err := w.WriteSheet(ctx, "2025-09", sampleGrid()); err != nil {
		t.Fatalf("second WriteSheet() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	for _, name := range []string{"2025-08", "2025-09"} {
		if idx, _ := f.GetSheetIndex(name); idx == -1 {
			t.Errorf("sheet %s missing after second write", name)
		}
	}
}

func TestWriteSheet_DuplicateMonthRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.xlsx")
	w := NewWriter(path)
	ctx := context.Background()

	if err := w.WriteSheet(ctx, "2025-09", sampleGrid()); err != nil {
		t.Fatalf("WriteSheet() error = %v", err)
	}
	before, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat workbook: %v", err)
	}

	err = w.WriteSheet(ctx, "2025-09", sampleGrid())
	if !errors.Is(err, core.ErrValidation) {
		t.Fatalf("duplicate WriteSheet() error = %v, want ErrValidation", err)
	}

	// The rejected write must not have touched the file.
	after, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat workbook: %v", err)
	}
	if after.ModTime() != before.ModTime() || after.Size() != before.Size() {
		t.Error("workbook modified by rejected write")
	}
}

func TestWriteSheet_CancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.xlsx")
	w := NewWriter(path)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := w.WriteSheet(ctx, "2025-09", sampleGrid()); err == nil {
		t.Fatal("WriteSheet() error = nil, want context error")
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Error("cancelled write created the workbook")
	}
}
