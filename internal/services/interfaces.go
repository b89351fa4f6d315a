package services

import (
	"context"
	"io"
	"time"

	"fincore/internal/models"
	"fincore/internal/pagination"
	"fincore/internal/provider"
)

// BankingProvider is the slice of the provider client the sync layer needs.
type BankingProvider interface {
	IsConfigured() bool
	ListAccounts(ctx context.Context) ([]provider.AccountPayload, error)
	ListTransactions(ctx context.Context, accountID string, params provider.TransactionParams) (*provider.TransactionList, error)
}

// SyncServicer reconciles provider data into the local store. Every method
// follows the same contract: best-effort remote refresh, then an
// authoritative read of what is now durably stored, making repeated calls
// idempotent and safe to retry.
type SyncServicer interface {
	SyncAccounts(ctx context.Context) ([]models.Account, error)
	SyncTransactions(ctx context.Context, accountID uint, from, to *time.Time) ([]models.Transaction, error)
	SyncAllTransactions(ctx context.Context, from, to *time.Time) ([]models.Transaction, error)
}

// FinancialOverview is the derived point-in-time financial health view.
type FinancialOverview struct {
	TotalBalance       int64                     `json:"total_balance"`
	AvailableBalance   int64                     `json:"available_balance"`
	TotalIncome        int64                     `json:"total_income"`
	TotalExpenses      int64                     `json:"total_expenses"`
	NetIncome          int64                     `json:"net_income"`
	BurnRate           int64                     `json:"burn_rate"`
	RunwayDays         *int64                    `json:"runway_days"` // nil when burn rate is zero
	IncomeByCategory   map[models.Category]int64 `json:"income_by_category"`
	ExpensesByCategory map[models.Category]int64 `json:"expenses_by_category"`
	RecentTransactions []models.Transaction      `json:"recent_transactions"`
	PeriodStart        time.Time                 `json:"period_start"`
	PeriodEnd          time.Time                 `json:"period_end"`
	IsDemo             bool                      `json:"is_demo"`
}

// TransactionPage is a limit/offset page of transactions.
type TransactionPage struct {
	Transactions []models.Transaction `json:"transactions"`
	Total        int64                `json:"total"`
	HasMore      bool                 `json:"has_more"`
	IsDemo       bool                 `json:"is_demo"`
}

// TransactionQuery holds optional filters for listing transactions.
type TransactionQuery struct {
	Limit     int
	Offset    int
	Direction *models.Direction
	Status    *models.TransactionStatus
	DateStart *time.Time
	DateEnd   *time.Time
}

// OverviewServicer computes the financial overview and transaction listings.
type OverviewServicer interface {
	GetFinancialOverview(ctx context.Context, from, to *time.Time) (*FinancialOverview, error)
	ListTransactions(ctx context.Context, query TransactionQuery) (*TransactionPage, error)
}

// SnapshotServicer persists and reads daily financial snapshots.
type SnapshotServicer interface {
	SaveSnapshot(ctx context.Context) (*models.FinancialSnapshot, error)
	GetSnapshots(from, to time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.FinancialSnapshot], error)
}

// ProjectionPoint is one projected day of the cash-flow forecast.
type ProjectionPoint struct {
	Date             string  `json:"date"` // YYYY-MM-DD
	ProjectedBalance int64   `json:"projected_balance"`
	Inflow           int64   `json:"inflow"`
	Outflow          int64   `json:"outflow"`
	Confidence       float64 `json:"confidence"`
}

// CashFlowForecast is the full projection over the requested horizon.
type CashFlowForecast struct {
	Points []ProjectionPoint `json:"points"`
	IsDemo bool              `json:"is_demo"`
}

// CashFlowSummary condenses the forecast into headline numbers.
type CashFlowSummary struct {
	CurrentBalance   int64    `json:"current_balance"`
	Projected30Day   int64    `json:"projected_30_day"`
	Projected60Day   int64    `json:"projected_60_day"`
	Projected90Day   int64    `json:"projected_90_day"`
	AvgDailyInflow   int64    `json:"avg_daily_inflow"`
	AvgDailyOutflow  int64    `json:"avg_daily_outflow"`
	BurnRate         int64    `json:"burn_rate"`
	RunwayMonths     *float64 `json:"runway_months"` // nil when burn rate is zero
	IsDemo           bool     `json:"is_demo"`
}

// ForecastServicer projects daily balances with decaying confidence.
type ForecastServicer interface {
	GetCashFlowForecast(ctx context.Context, days int) (*CashFlowForecast, error)
	GetCashFlowSummary(ctx context.Context) (*CashFlowSummary, error)
}

// ChannelStat is revenue attribution for one sales channel.
type ChannelStat struct {
	Channel models.Channel `json:"channel"`
	Orders  int64          `json:"orders"`
	Revenue int64          `json:"revenue"`
	Share   float64        `json:"share"` // percent of total revenue
}

// ProductStat is one entry in the top-products ranking.
type ProductStat struct {
	Name    string `json:"name"`
	Units   int64  `json:"units"`
	Revenue int64  `json:"revenue"`
}

// TrendPoint is one day of the revenue trend series.
type TrendPoint struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Revenue int64  `json:"revenue"`
}

// FunnelStageStat is one conversion-funnel stage with its stage-to-stage rate.
type FunnelStageStat struct {
	Stage models.FunnelStage `json:"stage"`
	Count int64              `json:"count"`
	Rate  float64            `json:"rate"` // percent of previous stage; 0 when previous is empty
}

// CommandCenterStats is the order/revenue dashboard view.
type CommandCenterStats struct {
	Filter          string            `json:"filter"`
	OrdersToday     int64             `json:"orders_today"`
	OrdersThisWeek  int64             `json:"orders_this_week"`
	OrdersThisMonth int64             `json:"orders_this_month"`
	TotalRevenue    int64             `json:"total_revenue"`
	Channels        []ChannelStat     `json:"channels"`
	TopProducts     []ProductStat     `json:"top_products"`
	RevenueTrend    []TrendPoint      `json:"revenue_trend"`
	Funnel          []FunnelStageStat `json:"funnel"`
	IsDemo          bool              `json:"is_demo"`
}

// StatsServicer aggregates order/revenue data for the command center.
type StatsServicer interface {
	GetCommandCenterStats(ctx context.Context, filter string) (*CommandCenterStats, error)
	ExportCSV(ctx context.Context, filter string, w io.Writer) error
}
