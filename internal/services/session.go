package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"reconcile/internal/config"
	"reconcile/internal/core"
	"reconcile/internal/layout"
	"reconcile/internal/log"
	"reconcile/internal/parser"
	"reconcile/internal/sheets"
)

// Decider supplies the classification decision for one record. The
// interactive prompt implements it; batch collaborators can too.
type Decider interface {
	Decide(e core.Expense) (category, recurringKey string, err error)
}

// DeciderFunc adapts a function to the Decider interface.
type DeciderFunc func(core.Expense) (string, string, error)

func (f DeciderFunc) Decide(e core.Expense) (string, string, error) { return f(e) }

// ConfirmFunc asks the user a yes/no question. A nil ConfirmFunc means the
// check is advisory and the session proceeds.
type ConfirmFunc func(prompt string) bool

// Session orchestrates one reconciliation run: load, classify, validate,
// commit. Strictly sequential; nothing is written before Commit, so any
// failure or declined confirmation leaves the target workbook untouched.
type Session struct {
	cfg        *config.Config
	classifier *Classifier
	writer     sheets.GridWriter
	logger     *log.Logger

	expenses   []core.Expense
	classified []core.ClassifiedExpense
}

// NewSession wires a session from the validated config and a workbook
// backend.
func NewSession(cfg *config.Config, writer sheets.GridWriter, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(slog.LevelInfo, "session")
	}
	return &Session{
		cfg:        cfg,
		classifier: NewClassifier(cfg.Categories, cfg.RecurringExpectations),
		writer:     writer,
		logger:     logger,
	}
}

// Classifier exposes the session's classifier to the prompting collaborator.
func (s *Session) Classifier() *Classifier {
	return s.classifier
}

// Expenses returns the loaded, not-yet-classified records.
func (s *Session) Expenses() []core.Expense {
	return s.expenses
}

// Classified returns the classified records.
func (s *Session) Classified() []core.ClassifiedExpense {
	return s.classified
}

// Load reads the CSV inputs. Fail-fast: on error nothing is kept.
func (s *Session) Load(paths ...string) error {
	records, err := parser.Load(paths...)
	if err != nil {
		return err
	}
	s.expenses = records
	s.logger.Info("transactions loaded", "files", len(paths), "records", len(records))
	return nil
}

// ClassifyAll walks the loaded records in order, asking the decider for each
// one. Later prompts depend on earlier ones completing, so this is strictly
// sequential.
func (s *Session) ClassifyAll(d Decider) error {
	classified := make([]core.ClassifiedExpense, 0, len(s.expenses))
	for _, e := range s.expenses {
		category, key, err := d.Decide(e)
		if err != nil {
			return fmt.Errorf("classify %q: %w", e.Description, err)
		}
		c, err := s.classifier.Classify(e, category, key)
		if err != nil {
			return err
		}
		classified = append(classified, c)
	}
	s.classified = classified
	return nil
}

// RecurringReport computes the expectation check for the classified records.
func (s *Session) RecurringReport() core.RecurringCheckResult {
	return BuildRecurringReport(s.classified, s.cfg.RecurringExpectations)
}

// Validate enforces the income sign invariant and checks recurring
// expectations. Outstanding expectations are advisory: with a confirm
// callback the user decides whether to proceed; declining blocks the write.
// When confirmations are skipped (batch runs) the check only warns.
func (s *Session) Validate(confirm ConfirmFunc) error {
	if err := CheckIncomeSigns(s.classified); err != nil {
		return err
	}
	if s.cfg.SkipConfirm {
		confirm = nil
	}

	outstanding := s.RecurringReport().Outstanding()
	if len(outstanding) == 0 {
		return nil
	}

	keys := make([]string, 0, len(outstanding))
	for key := range outstanding {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	lines := make([]string, len(keys))
	for i, key := range keys {
		lines[i] = fmt.Sprintf("%s: %s short", key, core.FormatAmount(outstanding[key]))
	}
	summary := strings.Join(lines, ", ")

	if confirm == nil {
		s.logger.Warn("recurring expectations unmet", "outstanding", summary)
		return nil
	}
	if !confirm(fmt.Sprintf("Recurring expectations unmet (%s). Continue anyway?", summary)) {
		return fmt.Errorf("%w: unmet recurring expectations declined", core.ErrValidation)
	}
	return nil
}

// Commit lays out the month sheet and persists it through the configured
// backend. This is the only step that touches the target.
func (s *Session) Commit(ctx context.Context) error {
	grid := layout.BuildMonthGrid(s.classified)
	if err := s.writer.WriteSheet(ctx, s.cfg.Month, grid); err != nil {
		return fmt.Errorf("write sheet %q: %w", s.cfg.Month, err)
	}
	s.logger.Info("sheet written", "month", s.cfg.Month, "records", len(s.classified))
	return nil
}
