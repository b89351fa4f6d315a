package services

import (
	"math"
	"sort"
	"time"

	"fincore/internal/models"
)

// recentTransactionCount is how many transactions ride along on the
// overview for display.
const recentTransactionCount = 20

// monthWindow returns the current calendar month, the default aggregation
// window when the caller gives no explicit range.
func monthWindow(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// resolveWindow applies the default month window to missing bounds.
func resolveWindow(from, to *time.Time, now time.Time) (time.Time, time.Time) {
	start, end := monthWindow(now)
	if from != nil {
		start = *from
	}
	if to != nil {
		end = *to
	}
	return start, end
}

// buildOverview computes the financial overview from account and
// transaction state. It is pure: the same inputs always produce the same
// overview, whether the records came from the store or the demo generator.
//
// Guards keep the computation total: burn rate is zero when there are no
// expenses, and runway is nil (not a sentinel) when there is no burn.
func buildOverview(accounts []models.Account, txns []models.Transaction, start, end time.Time) *FinancialOverview {
	overview := &FinancialOverview{
		IncomeByCategory:   make(map[models.Category]int64),
		ExpensesByCategory: make(map[models.Category]int64),
		PeriodStart:        start,
		PeriodEnd:          end,
	}

	for i := range accounts {
		overview.TotalBalance += accounts[i].Balance
		overview.AvailableBalance += accounts[i].AvailableBalance
	}

	inWindow := make([]models.Transaction, 0, len(txns))
	for i := range txns {
		t := txns[i]
		if t.PostedAt.Before(start) || t.PostedAt.After(end) {
			continue
		}
		inWindow = append(inWindow, t)

		if t.IsCredit() {
			overview.TotalIncome += t.Amount
			overview.IncomeByCategory[t.Category] += t.Amount
		} else {
			overview.TotalExpenses += t.Amount
			overview.ExpensesByCategory[t.Category] += t.Amount
		}
	}

	overview.NetIncome = overview.TotalIncome - overview.TotalExpenses

	if overview.TotalExpenses > 0 {
		overview.BurnRate = int64(math.Round(float64(overview.TotalExpenses) / 30))
	}
	if overview.BurnRate > 0 {
		runway := int64(math.Round(float64(overview.TotalBalance) / float64(overview.BurnRate)))
		overview.RunwayDays = &runway
	}

	sort.SliceStable(inWindow, func(i, j int) bool {
		return inWindow[i].PostedAt.After(inWindow[j].PostedAt)
	})
	if len(inWindow) > recentTransactionCount {
		inWindow = inWindow[:recentTransactionCount]
	}
	overview.RecentTransactions = inWindow

	return overview
}
