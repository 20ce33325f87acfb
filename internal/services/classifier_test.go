package services

import (
	"errors"
	"strings"
	"testing"

	"reconcile/internal/core"
)

func testExpense(desc string, amount float64) core.Expense {
	return core.Expense{
		Date:        core.NewDate(2025, 9, 1),
		Description: desc,
		Amount:      amount,
	}
}

func TestClassifier_Menu(t *testing.T) {
	t.Run("recurring offered only when keys configured", func(t *testing.T) {
		with := NewClassifier([]string{"Food"}, map[string]float64{"Rent": 1500})
		without := NewClassifier([]string{"Food"}, nil)

		if !contains(with.Menu(), core.CategoryRecurring) {
			t.Error("menu missing Recurring despite configured keys")
		}
		if contains(without.Menu(), core.CategoryRecurring) {
			t.Error("menu offers Recurring with no configured keys")
		}
	})

	t.Run("customs follow reserved names", func(t *testing.T) {
		menu := NewClassifier([]string{"Food", "Housing"}, nil).Menu()
		if menu[len(menu)-2] != "Food" || menu[len(menu)-1] != "Housing" {
			t.Errorf("menu = %v, want customs last in configured order", menu)
		}
	})
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}

func TestClassifier_Classify(t *testing.T) {
	c := NewClassifier([]string{"Groceries"}, map[string]float64{"Rent": 1500})

	tests := []struct {
		name     string
		category string
		key      string
		wantKind core.Kind
		wantCat  string
		wantKey  string
		wantErr  bool
	}{
		{"custom category", "Groceries", "", core.KindRegular, "Groceries", "", false},
		{"custom category case-insensitive", "gRoCeRiEs", "", core.KindRegular, "Groceries", "", false},
		{"income", "income", "", core.KindIncome, "Income", "", false},
		{"payment", "PAYMENT", "", core.KindPayment, "Payment", "", false},
		{"miscellaneous", "Miscellaneous", "", core.KindMiscellaneous, "Miscellaneous", "", false},
		{"recurring with key", "Recurring", "rent", core.KindRecurring, "Recurring", "Rent", false},
		{"recurring without key", "Recurring", "", "", "", "", true},
		{"recurring with unknown key", "Recurring", "netflix", "", "", "", true},
		{"unknown category", "Entertainment", "", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Classify(testExpense("x", 10), tt.category, tt.key)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Classify() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, core.ErrValidation) {
					t.Errorf("Classify() error = %v, want ErrValidation", err)
				}
				return
			}
			if got.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", got.Kind, tt.wantKind)
			}
			if got.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", got.Category, tt.wantCat)
			}
			if got.RecurringKey != tt.wantKey {
				t.Errorf("RecurringKey = %q, want %q", got.RecurringKey, tt.wantKey)
			}
		})
	}
}

func TestCheckIncomeSigns(t *testing.T) {
	income := func(amount float64) core.ClassifiedExpense {
		return core.ClassifiedExpense{
			Expense:  testExpense("Refund", amount),
			Category: core.CategoryIncome,
			Kind:     core.KindIncome,
		}
	}

	t.Run("negative income passes", func(t *testing.T) {
		if err := CheckIncomeSigns([]core.ClassifiedExpense{income(-30)}); err != nil {
			t.Errorf("CheckIncomeSigns() error = %v, want nil", err)
		}
	})

	t.Run("positive income fails and lists the record", func(t *testing.T) {
		err := CheckIncomeSigns([]core.ClassifiedExpense{income(30)})
		if !errors.Is(err, core.ErrValidation) {
			t.Fatalf("CheckIncomeSigns() error = %v, want ErrValidation", err)
		}
		if !strings.Contains(err.Error(), "Refund") {
			t.Errorf("error %q does not name the offending record", err)
		}
	})

	t.Run("non-income positive amounts pass", func(t *testing.T) {
		regular := core.ClassifiedExpense{Expense: testExpense("Coffee", 4.5), Kind: core.KindRegular}
		if err := CheckIncomeSigns([]core.ClassifiedExpense{regular}); err != nil {
			t.Errorf("CheckIncomeSigns() error = %v, want nil", err)
		}
	})
}
