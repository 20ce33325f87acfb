package layout

import (
	"fmt"
	"strings"

	"reconcile/internal/core"
)

// Cell is one grid write: either a literal value or a formula (stored
// without its leading "=").
type Cell struct {
	Ref     string
	Value   any
	Formula string
}

// Merge is a merged-cell span, carried both as A1 refs and as 1-based
// numeric coordinates for backends that address cells numerically.
type Merge struct {
	From, To                       string
	FromCol, FromRow, ToCol, ToRow int
}

// Grid is the backend-agnostic layout of one month sheet: ordered cell
// writes plus merged title spans.
type Grid struct {
	Cells  []Cell
	Merges []Merge
}

// Fixed layout anchors. Regions grow downward from their anchor; the
// summary block and region titles never move.
const (
	summaryLabelCol = 1 // A
	summaryValueCol = 2 // B
	netIncomeRow    = 1
	balanceRow      = 2
	totalSpendRow   = 3

	regionTitleRow = 5

	purchasesCol  = 1 // A..D: Date, Category, Description, Amount
	purchasesWide = 4
	recurringCol  = 6 // F..G: key, amount
	miscCol       = 9 // I..J: description, amount
	pairWide      = 2
)

// region describes one growing itemized area: the anchors are data, not
// scattered literals.
type region struct {
	title     string
	col       int      // leftmost column
	width     int      // merged title span
	header    []string // optional column header row under the title
	amountCol int      // absolute column holding amounts
}

var (
	purchasesRegion = region{
		title:     "Purchases",
		col:       purchasesCol,
		width:     purchasesWide,
		header:    []string{"Date", "Category", "Description", "Amount"},
		amountCol: purchasesCol + 3,
	}
	recurringRegion = region{
		title:     "Recurring Expenses",
		col:       recurringCol,
		width:     pairWide,
		amountCol: recurringCol + 1,
	}
	miscRegion = region{
		title:     "Miscellaneous",
		col:       miscCol,
		width:     pairWide,
		amountCol: miscCol + 1,
	}
)

// BuildMonthGrid lays out the classified records into the month sheet grid.
// Income is summarized into a single running-sum formula; payments appear in
// no region; each itemized region ends with a SUM total over exactly the
// rows it wrote, or a literal 0 when empty.
func BuildMonthGrid(records []core.ClassifiedExpense) Grid {
	var g Grid
	sections := Partition(records)
	byName := map[string][]core.ClassifiedExpense{}
	for _, s := range sections {
		byName[s.Name] = s.Records
	}

	// Regular section minus payments becomes the Purchases rows.
	var purchases [][]any
	for _, r := range byName[SectionRegular] {
		if r.IsPayment() {
			continue
		}
		purchases = append(purchases, []any{r.Date.String(), r.CategoryLabel(), r.Description, r.Amount})
	}
	purchasesTotal := g.writeRegion(purchasesRegion, purchases)

	var recurring [][]any
	for _, r := range byName[SectionRecurring] {
		recurring = append(recurring, []any{r.RecurringKey, r.Amount})
	}
	g.writeRegion(recurringRegion, recurring)

	var misc [][]any
	for _, r := range byName[SectionMiscellaneous] {
		misc = append(misc, []any{r.Description, r.Amount})
	}
	miscTotal := g.writeRegion(miscRegion, misc)

	// Summary block. Income transactions are never itemized: they fold into
	// one running-sum formula.
	netIncomeRef := CellRef(summaryValueCol, netIncomeRow)
	g.setValue(CellRef(summaryLabelCol, netIncomeRow), "Net Income")
	if income := byName[SectionIncome]; len(income) == 0 {
		g.setValue(netIncomeRef, 0)
	} else {
		g.setFormula(netIncomeRef, incomeRunningSum(income))
	}

	g.setValue(CellRef(summaryLabelCol, balanceRow), "Balance")
	g.setFormula(CellRef(summaryValueCol, balanceRow),
		fmt.Sprintf("%s-%s", netIncomeRef, CellRef(summaryValueCol, totalSpendRow)))

	g.setValue(CellRef(summaryLabelCol, totalSpendRow), "Total Spending")
	g.setFormula(CellRef(summaryValueCol, totalSpendRow),
		fmt.Sprintf("%s+%s", miscTotal, purchasesTotal))

	return g
}

// writeRegion writes one itemized region (title, optional header, data rows,
// total) and returns the ref of its total cell.
func (g *Grid) writeRegion(r region, rows [][]any) (totalRef string) {
	g.setValue(CellRef(r.col, regionTitleRow), r.title)
	g.merge(r.col, regionTitleRow, r.col+r.width-1, regionTitleRow)

	dataRow := regionTitleRow + 1
	if len(r.header) > 0 {
		for i, h := range r.header {
			g.setValue(CellRef(r.col+i, dataRow), h)
		}
		dataRow++
	}

	for i, row := range rows {
		for j, v := range row {
			g.setValue(CellRef(r.col+j, dataRow+i), v)
		}
	}

	totalRow := dataRow + len(rows)
	totalRef = CellRef(r.amountCol, totalRow)
	if len(rows) == 0 {
		// Never emit a SUM over a zero-height range.
		g.setValue(totalRef, 0)
		return totalRef
	}
	first := CellRef(r.amountCol, dataRow)
	last := CellRef(r.amountCol, totalRow-1)
	g.setFormula(totalRef, fmt.Sprintf("SUM(%s:%s)", first, last))
	return totalRef
}

// incomeRunningSum builds the "=0+a+b+..." accumulator over the income
// amounts, keeping each contribution visible in the formula.
func incomeRunningSum(income []core.ClassifiedExpense) string {
	var b strings.Builder
	b.WriteString("0")
	for _, r := range income {
		if r.Amount < 0 {
			b.WriteString(core.FormatAmount(r.Amount))
		} else {
			b.WriteString("+")
			b.WriteString(core.FormatAmount(r.Amount))
		}
	}
	return b.String()
}

func (g *Grid) setValue(ref string, v any) {
	g.Cells = append(g.Cells, Cell{Ref: ref, Value: v})
}

func (g *Grid) setFormula(ref, formula string) {
	g.Cells = append(g.Cells, Cell{Ref: ref, Formula: formula})
}

func (g *Grid) merge(fromCol, fromRow, toCol, toRow int) {
	g.Merges = append(g.Merges, Merge{
		From:    CellRef(fromCol, fromRow),
		To:      CellRef(toCol, toRow),
		FromCol: fromCol, FromRow: fromRow, ToCol: toCol, ToRow: toRow,
	})
}

// Find returns the cell at ref, if any was written.
func (g Grid) Find(ref string) (Cell, bool) {
	for _, c := range g.Cells {
		if c.Ref == ref {
			return c, true
		}
	}
	return Cell{}, false
}

// CellRef converts 1-based column and row numbers to an A1-style reference.
func CellRef(col, row int) string {
	return ColumnName(col) + fmt.Sprint(row)
}

// ColumnName converts a 1-based column number to its letter name
// (1 -> A, 27 -> AA).
func ColumnName(col int) string {
	var name []byte
	for col > 0 {
		col--
		name = append([]byte{byte('A' + col%26)}, name...)
		col /= 26
	}
	return string(name)
}
