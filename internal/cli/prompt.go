package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"reconcile/internal/core"
	"reconcile/internal/services"
)

// Prompter asks the user for a classification decision per record, and for
// yes/no confirmations. Invalid input re-prompts; the core never sees it.
type Prompter struct {
	in         *bufio.Scanner
	out        io.Writer
	classifier *services.Classifier
}

var _ services.Decider = (*Prompter)(nil)

func NewPrompter(in io.Reader, out io.Writer, classifier *services.Classifier) *Prompter {
	return &Prompter{
		in:         bufio.NewScanner(in),
		out:        out,
		classifier: classifier,
	}
}

// Decide shows one record and prompts until a valid category (and recurring
// key, when applicable) is entered.
func (p *Prompter) Decide(e core.Expense) (string, string, error) {
	fmt.Fprintf(p.out, "\n%s  %-40s  %10.2f\n", e.Date, e.Description, e.Amount)
	for {
		fmt.Fprintf(p.out, "Category [%s]: ", strings.Join(p.classifier.Menu(), ", "))
		choice, err := p.readLine()
		if err != nil {
			return "", "", err
		}
		category, ok := p.classifier.ResolveCategory(choice)
		if !ok {
			fmt.Fprintf(p.out, "Unknown category %q.\n", choice)
			continue
		}
		if category != core.CategoryRecurring {
			return category, "", nil
		}
		key, err := p.promptRecurringKey()
		if err != nil {
			return "", "", err
		}
		return category, key, nil
	}
}

func (p *Prompter) promptRecurringKey() (string, error) {
	for {
		fmt.Fprintf(p.out, "Recurring key [%s]: ", strings.Join(p.classifier.RecurringKeys(), ", "))
		raw, err := p.readLine()
		if err != nil {
			return "", err
		}
		key, ok := p.classifier.ResolveKey(raw)
		if !ok {
			fmt.Fprintf(p.out, "Unknown recurring key %q.\n", raw)
			continue
		}
		return key, nil
	}
}

// Confirm asks a yes/no question, defaulting to no.
func (p *Prompter) Confirm(prompt string) bool {
	fmt.Fprintf(p.out, "%s [y/N]: ", prompt)
	answer, err := p.readLine()
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	}
	return false
}

func (p *Prompter) readLine() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}
