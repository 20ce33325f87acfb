package services

import (
	"reconcile/internal/core"
)

// BuildRecurringReport aggregates recurring-tagged records against the
// configured expectations. For each key, satisfied is the sum of matching
// non-payment amounts; missing is expected minus satisfied and goes negative
// when a key is overpaid. Payments never count toward satisfaction.
func BuildRecurringReport(records []core.ClassifiedExpense, expectations map[string]float64) core.RecurringCheckResult {
	result := core.RecurringCheckResult{
		Satisfied: make(map[string]float64, len(expectations)),
		Missing:   make(map[string]float64, len(expectations)),
	}
	for key, expected := range expectations {
		result.Satisfied[key] = 0
		result.Missing[key] = expected
	}

	for _, r := range records {
		if r.RecurringKey == "" || r.IsPayment() {
			continue
		}
		expected, ok := expectations[r.RecurringKey]
		if !ok {
			continue
		}
		result.Satisfied[r.RecurringKey] += r.Amount
		result.Missing[r.RecurringKey] = expected - result.Satisfied[r.RecurringKey]
	}
	return result
}
