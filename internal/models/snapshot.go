package models

import "time"

// FinancialSnapshot is a per-day persisted snapshot of the financial
// overview, keyed by snapshot date and upserted on repeat saves. It backs
// historical trend queries; the live overview is always computed fresh.
type FinancialSnapshot struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	SnapshotDate     string    `gorm:"uniqueIndex;size:10;not null" json:"snapshot_date"` // YYYY-MM-DD
	TotalBalance     int64     `gorm:"type:bigint;not null" json:"total_balance"`
	AvailableBalance int64     `gorm:"type:bigint;not null" json:"available_balance"`
	TotalIncome      int64     `gorm:"type:bigint;not null" json:"total_income"`
	TotalExpenses    int64     `gorm:"type:bigint;not null" json:"total_expenses"`
	NetIncome        int64     `gorm:"type:bigint;not null" json:"net_income"`
	BurnRate         int64     `gorm:"type:bigint;not null" json:"burn_rate"`
	RunwayDays       *int64    `gorm:"type:bigint" json:"runway_days"`
	IncomeByCategory string    `json:"income_by_category"`   // JSON-encoded map
	ExpenseByCategory string   `json:"expense_by_category"`  // JSON-encoded map
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
