package services

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "fincore/internal/errors"
	"fincore/internal/models"
	"fincore/internal/pagination"
)

// snapshotService persists daily financial snapshots for trend queries.
type snapshotService struct {
	db       *gorm.DB
	overview OverviewServicer
}

// NewSnapshotService creates a new SnapshotServicer.
func NewSnapshotService(db *gorm.DB, overviewService OverviewServicer) SnapshotServicer {
	return &snapshotService{db: db, overview: overviewService}
}

// SaveSnapshot computes today's overview and upserts it keyed by snapshot
// date, so repeated saves on the same day update one row. Demo data is
// never snapshotted: synthetic numbers must not enter the historical trend.
func (s *snapshotService) SaveSnapshot(ctx context.Context) (*models.FinancialSnapshot, error) {
	overview, err := s.overview.GetFinancialOverview(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	if overview.IsDemo {
		return nil, apperrors.ErrNoLiveData
	}

	incomeJSON, err := json.Marshal(overview.IncomeByCategory)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	expenseJSON, err := json.Marshal(overview.ExpensesByCategory)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	snapshot := models.FinancialSnapshot{
		SnapshotDate:      time.Now().Format("2006-01-02"),
		TotalBalance:      overview.TotalBalance,
		AvailableBalance:  overview.AvailableBalance,
		TotalIncome:       overview.TotalIncome,
		TotalExpenses:     overview.TotalExpenses,
		NetIncome:         overview.NetIncome,
		BurnRate:          overview.BurnRate,
		RunwayDays:        overview.RunwayDays,
		IncomeByCategory:  string(incomeJSON),
		ExpenseByCategory: string(expenseJSON),
	}

	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "snapshot_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_balance", "available_balance", "total_income", "total_expenses",
			"net_income", "burn_rate", "runway_days",
			"income_by_category", "expense_by_category", "updated_at",
		}),
	}).Create(&snapshot).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &snapshot, nil
}

// GetSnapshots returns paginated snapshots within a date range, newest first.
func (s *snapshotService) GetSnapshots(from, to time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.FinancialSnapshot], error) {
	page.Defaults()

	base := s.db.Model(&models.FinancialSnapshot{}).
		Where("snapshot_date >= ? AND snapshot_date <= ?", from.Format("2006-01-02"), to.Format("2006-01-02"))

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var snapshots []models.FinancialSnapshot
	if err := base.Order("snapshot_date DESC").Scopes(pagination.Paginate(page)).Find(&snapshots).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(snapshots, page.Page, page.PageSize, totalItems)
	return &result, nil
}
