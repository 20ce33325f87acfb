package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"reconcile/internal/core"
)

// Workbook backends.
const (
	BackendXLSX   = "xlsx"
	BackendSheets = "sheets"
	BackendMemory = "memory"
)

// Config is the immutable-after-construction session configuration: where
// the workbook lives, which month sheet to write, and the category and
// recurring-expectation sets the classifier works against.
type Config struct {
	// Workbook target
	WorkbookPath string
	Month        string
	Backend      string

	// Classification inputs
	Categories            []string
	RecurringExpectations map[string]float64

	// Skip the confirmation prompt before writing.
	SkipConfirm bool

	// Google Sheets backend
	GoogleSpreadsheetID string
}

// fileConfig is the JSON collaborator config. The older list form
// (recurring_expenses) and the map form (recurring_expectations) are both
// accepted; list entries missing from the map default to an expectation of 0.
type fileConfig struct {
	Categories            []string           `json:"categories"`
	RecurringExpenses     []string           `json:"recurring_expenses"`
	RecurringExpectations map[string]float64 `json:"recurring_expectations"`
}

// Load builds a Config from environment variables. Flag values and the JSON
// config file are layered on top by the caller.
func Load() *Config {
	return &Config{
		Backend:               getEnv("RECONCILE_BACKEND", BackendXLSX),
		GoogleSpreadsheetID:   getEnv("GOOGLE_SPREADSHEET_ID", ""),
		RecurringExpectations: map[string]float64{},
	}
}

// LoadFile reads the JSON config and merges categories and recurring
// expectations into c. Reserved category names are rejected.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("%w: malformed JSON in %s: %v", core.ErrConfig, path, err)
	}

	for _, raw := range fc.Categories {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if core.IsReservedCategory(name) {
			return fmt.Errorf("%w: %q is a reserved category name", core.ErrConfig, name)
		}
		c.Categories = append(c.Categories, name)
	}

	if c.RecurringExpectations == nil {
		c.RecurringExpectations = map[string]float64{}
	}
	for key, expected := range fc.RecurringExpectations {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		c.RecurringExpectations[key] = expected
	}
	for _, raw := range fc.RecurringExpenses {
		key := strings.TrimSpace(raw)
		if key == "" {
			continue
		}
		if _, ok := c.RecurringExpectations[key]; !ok {
			c.RecurringExpectations[key] = 0
		}
	}

	return nil
}

// HasRecurring reports whether any recurring keys are configured. The
// Recurring category is only offered when this is true.
func (c *Config) HasRecurring() bool {
	return len(c.RecurringExpectations) > 0
}

// Validate checks the assembled configuration and returns every problem in
// one error.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Month) == "" {
		problems = append(problems, "month label cannot be empty")
	}
	if c.Backend != BackendSheets && strings.TrimSpace(c.WorkbookPath) == "" {
		problems = append(problems, "workbook path cannot be empty")
	}

	switch c.Backend {
	case BackendXLSX, BackendSheets, BackendMemory:
	default:
		problems = append(problems, fmt.Sprintf("invalid backend %q: must be one of xlsx, sheets, memory", c.Backend))
	}

	if c.Backend == BackendSheets && c.GoogleSpreadsheetID == "" {
		problems = append(problems, "GOOGLE_SPREADSHEET_ID is required for the sheets backend")
	}

	seen := map[string]string{}
	for _, name := range c.Categories {
		lower := strings.ToLower(name)
		if prev, ok := seen[lower]; ok {
			problems = append(problems, fmt.Sprintf("duplicate category %q (already configured as %q)", name, prev))
			continue
		}
		seen[lower] = name
	}

	for key, expected := range c.RecurringExpectations {
		if expected < 0 {
			problems = append(problems, fmt.Sprintf("recurring expectation %q cannot be negative (%v)", key, expected))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w:\n- %s", core.ErrConfig, strings.Join(problems, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
