// Package layout buckets classified records into ordered sections and lays
// out the monthly sheet as a backend-agnostic grid of cells and formulas.
package layout

import (
	"reconcile/internal/core"
)

// Section names, in emit order.
const (
	SectionRegular       = "Regular"
	SectionIncome        = "Income"
	SectionMiscellaneous = "Miscellaneous"
	SectionRecurring     = "Recurring"
)

// Section is one ordered bucket of records.
type Section struct {
	Name    string
	Records []core.ClassifiedExpense
}

// Partition buckets records into the four fixed sections. Every record lands
// in exactly one section: predicates are applied first-match-wins in section
// order, even though classified kinds are already mutually exclusive.
// Payments fall into Regular here; the grid builder excludes them from every
// region.
func Partition(records []core.ClassifiedExpense) []Section {
	type predicate func(core.ClassifiedExpense) bool
	order := []struct {
		name  string
		match predicate
	}{
		{SectionRegular, func(r core.ClassifiedExpense) bool {
			return !r.IsIncome() && !r.IsMisc() && !r.IsRecurring()
		}},
		{SectionIncome, func(r core.ClassifiedExpense) bool { return r.IsIncome() }},
		{SectionMiscellaneous, func(r core.ClassifiedExpense) bool { return r.IsMisc() }},
		{SectionRecurring, func(r core.ClassifiedExpense) bool { return r.IsRecurring() }},
	}

	sections := make([]Section, len(order))
	for i, o := range order {
		sections[i] = Section{Name: o.name}
	}
	for _, r := range records {
		for i, o := range order {
			if o.match(r) {
				sections[i].Records = append(sections[i].Records, r)
				break
			}
		}
	}
	return sections
}
