package advisor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/npatel/finledger/internal/currency"
	"github.com/npatel/finledger/internal/models"
	"github.com/npatel/finledger/internal/store"
)

// topExpenseCategories is how many expense categories the summary names.
const topExpenseCategories = 5

// BuildContext aggregates the snapshot into the financial summary string the
// advisor service consumes: totals, top expenses, debt summary, goal progress.
func BuildContext(snap store.Snapshot) string {
	f := currency.NewFormatter(snap.Settings.Currency)
	var b strings.Builder

	var income, expenses float64
	byCategory := make(map[string]float64)
	for _, t := range snap.Transactions {
		switch t.Type {
		case models.TransactionIncome:
			income += t.Amount
		case models.TransactionExpense:
			expenses += t.Amount
			byCategory[t.Category] += t.Amount
		}
	}
	fmt.Fprintf(&b, "Total income: %s. Total expenses: %s. Net: %s.\n",
		f.Format(income), f.Format(expenses), f.Format(income-expenses))
	fmt.Fprintf(&b, "Monthly income (budget): %s across %d budget segments.\n",
		f.Format(snap.Budget.MonthlyIncome), len(snap.Budget.Segments))

	if len(byCategory) > 0 {
		type catTotal struct {
			label string
			total float64
		}
		tops := make([]catTotal, 0, len(byCategory))
		for label, total := range byCategory {
			tops = append(tops, catTotal{label, total})
		}
		sort.Slice(tops, func(i, j int) bool { return tops[i].total > tops[j].total })
		if len(tops) > topExpenseCategories {
			tops = tops[:topExpenseCategories]
		}
		b.WriteString("Top expense categories:")
		for _, c := range tops {
			fmt.Fprintf(&b, " %s %s;", c.label, f.Format(c.total))
		}
		b.WriteString("\n")
	}

	var owedToMe, iOwe float64
	var openDebts int
	for _, p := range snap.People {
		for _, d := range p.Debts {
			if d.Status == models.DebtPaid {
				continue
			}
			openDebts++
			if p.RelationType == models.RelationIOwe {
				iOwe += d.Remaining()
			} else {
				owedToMe += d.Remaining()
			}
		}
	}
	fmt.Fprintf(&b, "Debts: %d open. Owed to me: %s. I owe: %s.\n",
		openDebts, f.Format(owedToMe), f.Format(iOwe))

	for _, g := range snap.Goals {
		fmt.Fprintf(&b, "Goal %q: %s of %s (%.0f%%).\n",
			g.Name, f.Format(g.CurrentAmount), f.Format(g.TargetAmount), g.Progress()*100)
	}

	return b.String()
}
