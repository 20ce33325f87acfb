package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"reconcile/internal/core"
)

func writeConfig(t *testing.T, payload string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFile_TrimsAndMerges(t *testing.T) {
	path := writeConfig(t, `{
		"categories": ["Food", "   ", "Housing"],
		"recurring_expenses": ["Rent", "", "Gym"],
		"recurring_expectations": {"Rent": 1500.0}
	}`)

	cfg := Load()
	if err := cfg.LoadFile(path); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	wantCats := []string{"Food", "Housing"}
	if len(cfg.Categories) != len(wantCats) {
		t.Fatalf("Categories = %v, want %v", cfg.Categories, wantCats)
	}
	for i, want := range wantCats {
		if cfg.Categories[i] != want {
			t.Errorf("Categories[%d] = %q, want %q", i, cfg.Categories[i], want)
		}
	}

	if got := cfg.RecurringExpectations["Rent"]; got != 1500.0 {
		t.Errorf(`RecurringExpectations["Rent"] = %v, want 1500`, got)
	}
	// List-form key without a configured amount defaults to 0.
	if got, ok := cfg.RecurringExpectations["Gym"]; !ok || got != 0 {
		t.Errorf(`RecurringExpectations["Gym"] = %v (present %v), want 0`, got, ok)
	}
	if !cfg.HasRecurring() {
		t.Error("HasRecurring() = false, want true")
	}
}

func TestLoadFile_RejectsReservedCategory(t *testing.T) {
	for _, reserved := range []string{"Income", "income", "Payment", "Miscellaneous", "Recurring"} {
		t.Run(reserved, func(t *testing.T) {
			path := writeConfig(t, `{"categories": ["`+reserved+`"]}`)
			cfg := Load()
			err := cfg.LoadFile(path)
			if !errors.Is(err, core.ErrConfig) {
				t.Errorf("LoadFile() error = %v, want ErrConfig", err)
			}
		})
	}
}

func TestLoadFile_MalformedJSON(t *testing.T) {
	path := writeConfig(t, `{"categories": "not a list"}`)
	cfg := Load()
	if err := cfg.LoadFile(path); !errors.Is(err, core.ErrConfig) {
		t.Errorf("LoadFile() error = %v, want ErrConfig", err)
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	cfg := Load()
	if err := cfg.LoadFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("LoadFile() error = nil, want error for missing file")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid xlsx config",
			config: Config{
				WorkbookPath: "budget.xlsx",
				Month:        "2025-09",
				Backend:      BackendXLSX,
				Categories:   []string{"Food", "Housing"},
			},
			wantErr: false,
		},
		{
			name: "empty month",
			config: Config{
				WorkbookPath: "budget.xlsx",
				Backend:      BackendXLSX,
			},
			wantErr: true,
		},
		{
			name: "empty workbook path",
			config: Config{
				Month:   "2025-09",
				Backend: BackendXLSX,
			},
			wantErr: true,
		},
		{
			name: "unknown backend",
			config: Config{
				WorkbookPath: "budget.xlsx",
				Month:        "2025-09",
				Backend:      "csv",
			},
			wantErr: true,
		},
		{
			name: "sheets backend without spreadsheet id",
			config: Config{
				Month:   "2025-09",
				Backend: BackendSheets,
			},
			wantErr: true,
		},
		{
			name: "sheets backend with spreadsheet id",
			config: Config{
				Month:               "2025-09",
				Backend:             BackendSheets,
				GoogleSpreadsheetID: "abc123",
			},
			wantErr: false,
		},
		{
			name: "duplicate categories case-insensitive",
			config: Config{
				WorkbookPath: "budget.xlsx",
				Month:        "2025-09",
				Backend:      BackendXLSX,
				Categories:   []string{"Food", "food"},
			},
			wantErr: true,
		},
		{
			name: "negative expectation",
			config: Config{
				WorkbookPath:          "budget.xlsx",
				Month:                 "2025-09",
				Backend:               BackendXLSX,
				RecurringExpectations: map[string]float64{"Rent": -1},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, core.ErrConfig) {
				t.Errorf("Validate() error = %v, want ErrConfig", err)
			}
		})
	}
}
