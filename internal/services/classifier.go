// Package services holds the reconciliation business logic: classification,
// recurring-expectation tracking, validation, and session orchestration.
package services

import (
	"fmt"
	"sort"
	"strings"

	"reconcile/internal/core"
)

// Classifier resolves externally-supplied category choices against the
// reserved and configured sets and produces classified records. It only ever
// stores canonical spellings; resolution is case-insensitive.
type Classifier struct {
	categories []string
	keys       []string
}

// NewClassifier builds a classifier from the configured custom categories
// and recurring expectations. Category names are assumed pre-validated
// (no reserved collisions, no duplicates).
func NewClassifier(categories []string, expectations map[string]float64) *Classifier {
	keys := make([]string, 0, len(expectations))
	for key := range expectations {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return &Classifier{
		categories: append([]string(nil), categories...),
		keys:       keys,
	}
}

// Menu returns every offerable category in prompt order: reserved names
// first, then the configured customs. Recurring appears only when recurring
// keys are configured.
func (c *Classifier) Menu() []string {
	menu := core.ReservedCategories(len(c.keys) > 0)
	return append(menu, c.categories...)
}

// RecurringKeys returns the configured recurring keys in sorted order.
func (c *Classifier) RecurringKeys() []string {
	return append([]string(nil), c.keys...)
}

// ResolveCategory maps a raw choice to its canonical spelling. The second
// return is false when the choice matches nothing offerable.
func (c *Classifier) ResolveCategory(choice string) (string, bool) {
	choice = strings.TrimSpace(choice)
	for _, name := range c.Menu() {
		if strings.EqualFold(choice, name) {
			return name, true
		}
	}
	return "", false
}

// ResolveKey maps a raw recurring key to its configured spelling.
func (c *Classifier) ResolveKey(key string) (string, bool) {
	key = strings.TrimSpace(key)
	for _, k := range c.keys {
		if strings.EqualFold(key, k) {
			return k, true
		}
	}
	return "", false
}

// Classify produces the immutable classified record for e. The category
// choice must resolve against the menu; a Recurring choice additionally
// requires a configured recurring key. Invalid input is rejected, never
// stored.
func (c *Classifier) Classify(e core.Expense, category, recurringKey string) (core.ClassifiedExpense, error) {
	canonical, ok := c.ResolveCategory(category)
	if !ok {
		return core.ClassifiedExpense{}, fmt.Errorf("%w: unknown category %q", core.ErrValidation, category)
	}

	out := core.ClassifiedExpense{Expense: e, Category: canonical, Kind: core.KindRegular}
	switch canonical {
	case core.CategoryIncome:
		out.Kind = core.KindIncome
	case core.CategoryPayment:
		out.Kind = core.KindPayment
	case core.CategoryMiscellaneous:
		out.Kind = core.KindMiscellaneous
	case core.CategoryRecurring:
		key, ok := c.ResolveKey(recurringKey)
		if !ok {
			return core.ClassifiedExpense{}, fmt.Errorf("%w: unknown recurring key %q", core.ErrValidation, recurringKey)
		}
		out.Kind = core.KindRecurring
		out.RecurringKey = key
	}
	return out, nil
}

// CheckIncomeSigns enforces the accounting convention that income reduces
// the spend ledger: every income record must carry a negative amount. The
// returned error lists every offending record.
func CheckIncomeSigns(records []core.ClassifiedExpense) error {
	var offending []string
	for _, r := range records {
		if r.IsIncome() && r.Amount >= 0 {
			offending = append(offending,
				fmt.Sprintf("%s %s %s", r.Date, r.Description, core.FormatAmount(r.Amount)))
		}
	}
	if len(offending) == 0 {
		return nil
	}
	return fmt.Errorf("%w: income records must have negative amounts:\n- %s",
		core.ErrValidation, strings.Join(offending, "\n- "))
}
