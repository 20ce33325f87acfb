package core

import (
	"errors"
	"strings"
	"time"
)

// Classification kinds. A record gets exactly one kind, assigned once by the
// classifier and never mutated afterwards.
const (
	KindRegular       Kind = "regular"
	KindIncome        Kind = "income"
	KindPayment       Kind = "payment"
	KindMiscellaneous Kind = "miscellaneous"
	KindRecurring     Kind = "recurring"
)

// Reserved category names. These are disjoint (case-insensitively) from any
// configured custom category.
const (
	CategoryIncome        = "Income"
	CategoryMiscellaneous = "Miscellaneous"
	CategoryPayment       = "Payment"
	CategoryRecurring     = "Recurring"

	// CategoryUncategorized labels records that reach layout without an
	// assigned category.
	CategoryUncategorized = "Uncategorized"
)

type (
	Kind string

	Date struct {
		time.Time
	}

	// Expense is one parsed transaction. Amounts are signed decimals;
	// income is recorded as a negative amount.
	Expense struct {
		Date        Date
		Description string
		Amount      float64
		SourceFile  string
	}

	// ClassifiedExpense is the immutable result of classifying an Expense.
	// RecurringKey is set only when Kind is KindRecurring.
	ClassifiedExpense struct {
		Expense
		Category     string
		Kind         Kind
		RecurringKey string
	}

	// RecurringCheckResult summarizes configured recurring expectations
	// against the loaded records. Missing may be negative when a key is
	// overpaid.
	RecurringCheckResult struct {
		Satisfied map[string]float64
		Missing   map[string]float64
	}
)

var (
	ErrParse      = errors.New("parse error")
	ErrConfig     = errors.New("config error")
	ErrValidation = errors.New("validation error")
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

// String renders the calendar date without a time component.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

func (c ClassifiedExpense) IsIncome() bool  { return c.Kind == KindIncome }
func (c ClassifiedExpense) IsPayment() bool { return c.Kind == KindPayment }
func (c ClassifiedExpense) IsMisc() bool    { return c.Kind == KindMiscellaneous }

// IsRecurring reports whether the record references a configured recurring
// key. Membership in the Recurring section follows from the key alone.
func (c ClassifiedExpense) IsRecurring() bool { return c.RecurringKey != "" }

// CategoryLabel returns the assigned category, or CategoryUncategorized when
// none was ever set.
func (c ClassifiedExpense) CategoryLabel() string {
	if strings.TrimSpace(c.Category) == "" {
		return CategoryUncategorized
	}
	return c.Category
}

// ReservedCategories returns the reserved names offered to the classifier.
// Recurring is offered only when recurring keys are configured.
func ReservedCategories(withRecurring bool) []string {
	names := []string{CategoryIncome, CategoryMiscellaneous, CategoryPayment}
	if withRecurring {
		names = append(names, CategoryRecurring)
	}
	return names
}

// IsReservedCategory reports whether name collides (case-insensitively) with
// any reserved category.
func IsReservedCategory(name string) bool {
	for _, r := range ReservedCategories(true) {
		if strings.EqualFold(strings.TrimSpace(name), r) {
			return true
		}
	}
	return false
}

// Outstanding returns the keys whose missing amount exceeds the money
// epsilon, i.e. expectations not yet satisfied by the loaded records.
func (r RecurringCheckResult) Outstanding() map[string]float64 {
	out := make(map[string]float64)
	for key, missing := range r.Missing {
		if missing > Epsilon {
			out[key] = missing
		}
	}
	return out
}
