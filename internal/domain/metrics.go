package domain

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// CategoryStat is one slice of the monthly category breakdown.
type CategoryStat struct {
	Category ExpenseCategory
	Total    decimal.Decimal
	Percent  float64
}

// ExpenseSummary aggregates the expenses of a single month. All fields are
// derived; nothing here is ever persisted.
type ExpenseSummary struct {
	Month      string
	Total      decimal.Decimal
	Count      int
	Average    decimal.Decimal
	Categories []CategoryStat
}

// FilterMonth returns the expenses whose date falls in the given month
// ("YYYY-MM"). Dates are calendar-day strings, so this is a prefix match.
func FilterMonth(expenses []Expense, month string) []Expense {
	var out []Expense
	for _, e := range expenses {
		if strings.HasPrefix(e.Date, month+"-") {
			out = append(out, e)
		}
	}
	return out
}

// Summarize computes the monthly totals, the per-transaction average and the
// category breakdown. The average is zero when the month has no expenses,
// and every percentage is zero when the total is zero; neither case may
// produce a division by zero.
func Summarize(expenses []Expense, month string) ExpenseSummary {
	filtered := FilterMonth(expenses, month)

	summary := ExpenseSummary{Month: month, Count: len(filtered)}
	byCategory := make(map[ExpenseCategory]decimal.Decimal)
	for _, e := range filtered {
		summary.Total = summary.Total.Add(e.Amount)
		byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
	}

	if summary.Count > 0 {
		summary.Average = summary.Total.DivRound(decimal.NewFromInt(int64(summary.Count)), 2)
	}

	hundred := decimal.NewFromInt(100)
	for cat, total := range byCategory {
		stat := CategoryStat{Category: cat, Total: total}
		if summary.Total.IsPositive() {
			stat.Percent = total.Mul(hundred).DivRound(summary.Total, 2).InexactFloat64()
		}
		summary.Categories = append(summary.Categories, stat)
	}
	sort.Slice(summary.Categories, func(i, j int) bool {
		return summary.Categories[i].Category < summary.Categories[j].Category
	})

	return summary
}

// PartitionStock splits items into the low-stock set and the rest,
// preserving input order within each partition.
func PartitionStock(items []InventoryItem) (low, ok []InventoryItem) {
	for _, item := range items {
		if item.LowStock() {
			low = append(low, item)
		} else {
			ok = append(ok, item)
		}
	}
	return low, ok
}
