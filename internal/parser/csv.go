// Package parser turns raw CSV exports into typed expense records.
//
// Loading is fail-fast: a malformed date or amount aborts the whole load and
// nothing is kept. File order and row order are preserved.
package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"reconcile/internal/core"
)

// Required header columns, matched case-sensitively.
const (
	columnDate        = "Date"
	columnDescription = "Description"
	columnAmount      = "Amount"
)

// Accepted date layouts, tried in order. First successful parse wins.
var dateLayouts = []string{"01/02/2006", "2006-01-02"}

// Load reads every CSV file in order and returns the flat record list.
func Load(paths ...string) ([]core.Expense, error) {
	var out []core.Expense
	for _, path := range paths {
		records, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		out = append(out, records...)
	}
	return out, nil
}

// ParseDate parses a raw date string against the accepted layouts.
func ParseDate(raw string) (core.Date, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return core.Date{Time: t}, nil
		}
	}
	return core.Date{}, fmt.Errorf("%w: unrecognized date %q", core.ErrParse, raw)
}

func loadFile(path string) ([]core.Expense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	columns := map[string]int{}
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	var out []core.Expense
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		// Physical file line, so skipped blank lines do not shift errors.
		line, _ := r.FieldPos(0)

		field := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return row[idx]
		}

		date, err := ParseDate(field(columnDate))
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		amount, err := core.ParseAmount(field(columnAmount))
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}

		out = append(out, core.Expense{
			Date:        date,
			Description: strings.TrimSpace(field(columnDescription)),
			Amount:      amount,
			SourceFile:  path,
		})
	}
	return out, nil
}
