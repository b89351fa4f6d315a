package services

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"fincore/internal/demo"
	"fincore/internal/logger"
	"fincore/internal/models"
	"fincore/internal/pagination"
)

// overviewService computes the financial overview and transaction listings.
// It is the single fallback decision point for its entry points: any
// persistence failure or empty store substitutes the demo dataset
// wholesale, flagged IsDemo, never blended with live data.
type overviewService struct {
	db   *gorm.DB
	sync SyncServicer
	demo *demo.Generator
}

// NewOverviewService creates a new OverviewServicer.
func NewOverviewService(db *gorm.DB, syncService SyncServicer, demoGen *demo.Generator) OverviewServicer {
	return &overviewService{db: db, sync: syncService, demo: demoGen}
}

// GetFinancialOverview syncs accounts and in-window transactions, then
// aggregates them into the overview. The window defaults to the current
// calendar month.
func (s *overviewService) GetFinancialOverview(ctx context.Context, from, to *time.Time) (*FinancialOverview, error) {
	now := time.Now()
	start, end := resolveWindow(from, to, now)

	accounts, err := s.sync.SyncAccounts(ctx)
	if err != nil {
		logger.Get().Warnw("overview falling back to demo data", "error", err.Error())
		return s.demoOverview(now, start, end), nil
	}
	if len(accounts) == 0 {
		return s.demoOverview(now, start, end), nil
	}

	txns, err := s.sync.SyncAllTransactions(ctx, &start, &end)
	if err != nil {
		logger.Get().Warnw("overview falling back to demo data", "error", err.Error())
		return s.demoOverview(now, start, end), nil
	}

	return buildOverview(accounts, txns, start, end), nil
}

// demoOverview aggregates the synthetic dataset through the same
// computation as live data, so shape and invariants are identical.
func (s *overviewService) demoOverview(now, start, end time.Time) *FinancialOverview {
	overview := buildOverview(s.demo.Accounts(now), s.demo.Transactions(now), start, end)
	overview.IsDemo = true
	return overview
}

// ListTransactions returns a limit/offset page of persisted transactions,
// newest first, with optional direction, status and date filters.
func (s *overviewService) ListTransactions(ctx context.Context, query TransactionQuery) (*TransactionPage, error) {
	if query.Limit <= 0 {
		query.Limit = 20
	}
	if query.Limit > 100 {
		query.Limit = 100
	}
	if query.Offset < 0 {
		query.Offset = 0
	}

	base := s.db.WithContext(ctx).Model(&models.Transaction{})
	if query.Direction != nil {
		base = base.Where("direction = ?", *query.Direction)
	}
	if query.Status != nil {
		base = base.Where("status = ?", *query.Status)
	}
	if query.DateStart != nil {
		base = base.Where("posted_at >= ?", *query.DateStart)
	}
	if query.DateEnd != nil {
		base = base.Where("posted_at <= ?", *query.DateEnd)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		logger.Get().Warnw("transaction listing falling back to demo data", "error", err.Error())
		return s.demoTransactionPage(query), nil
	}

	var txns []models.Transaction
	if err := base.Scopes(pagination.LimitOffset(query.Limit, query.Offset)).
		Order("posted_at DESC").
		Find(&txns).Error; err != nil {
		logger.Get().Warnw("transaction listing falling back to demo data", "error", err.Error())
		return s.demoTransactionPage(query), nil
	}

	if total == 0 {
		return s.demoTransactionPage(query), nil
	}

	return &TransactionPage{
		Transactions: txns,
		Total:        total,
		HasMore:      pagination.HasMore(total, query.Limit, query.Offset),
	}, nil
}

// demoTransactionPage pages through the synthetic transaction set with the
// same filters the live path applies.
func (s *overviewService) demoTransactionPage(query TransactionQuery) *TransactionPage {
	all := s.demo.Transactions(time.Now())

	filtered := all[:0:0]
	for _, t := range all {
		if query.Direction != nil && t.Direction != *query.Direction {
			continue
		}
		if query.Status != nil && t.Status != *query.Status {
			continue
		}
		if query.DateStart != nil && t.PostedAt.Before(*query.DateStart) {
			continue
		}
		if query.DateEnd != nil && t.PostedAt.After(*query.DateEnd) {
			continue
		}
		filtered = append(filtered, t)
	}

	// Newest first, matching the live ordering.
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].PostedAt.After(filtered[j].PostedAt)
	})

	total := int64(len(filtered))
	start := query.Offset
	if start > len(filtered) {
		start = len(filtered)
	}
	stop := start + query.Limit
	if stop > len(filtered) {
		stop = len(filtered)
	}

	return &TransactionPage{
		Transactions: filtered[start:stop],
		Total:        total,
		HasMore:      pagination.HasMore(total, query.Limit, query.Offset),
		IsDemo:       true,
	}
}
