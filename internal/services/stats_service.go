package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"time"

	"gorm.io/gorm"

	"fincore/internal/demo"
	apperrors "fincore/internal/errors"
	"fincore/internal/logger"
	"fincore/internal/models"
)

const topProductCount = 5

// trendDays caps the daily revenue trend series so long filters do not
// blow the payload up to hundreds of points.
const trendDays = 30

var validStatsFilters = map[string]bool{
	"today":  true,
	"7days":  true,
	"30days": true,
	"90days": true,
	"year":   true,
}

var funnelOrder = []models.FunnelStage{
	models.FunnelStageVisit,
	models.FunnelStageCart,
	models.FunnelStageCheckout,
	models.FunnelStagePurchase,
}

// statsService aggregates the order store into the command-center view.
// Like the overview, any persistence failure or empty order store swaps in
// the scaled synthetic dataset, flagged IsDemo.
type statsService struct {
	db   *gorm.DB
	demo *demo.Generator
}

// NewStatsService creates a new StatsServicer.
func NewStatsService(db *gorm.DB, demoGen *demo.Generator) StatsServicer {
	return &statsService{db: db, demo: demoGen}
}

// GetCommandCenterStats aggregates orders and funnel events within the
// filter window.
func (s *statsService) GetCommandCenterStats(ctx context.Context, filter string) (*CommandCenterStats, error) {
	if filter == "" {
		filter = "30days"
	}
	if !validStatsFilters[filter] {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("invalid stats filter: %s", filter))
	}

	now := time.Now()
	windowStart := now.AddDate(0, 0, -windowDaysFor(filter))

	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("placed_at >= ?", windowStart).
		Find(&orders).Error
	if err != nil {
		logger.Get().Warnw("command-center stats falling back to demo data", "error", err.Error())
		return s.demoStats(now, filter), nil
	}
	if len(orders) == 0 {
		return s.demoStats(now, filter), nil
	}

	funnel, err := s.funnelCounts(ctx, windowStart)
	if err != nil {
		logger.Get().Warnw("command-center stats falling back to demo data", "error", err.Error())
		return s.demoStats(now, filter), nil
	}

	return computeStats(orders, funnel, filter, now), nil
}

// funnelCounts groups funnel events by stage within the window.
func (s *statsService) funnelCounts(ctx context.Context, windowStart time.Time) (map[models.FunnelStage]int64, error) {
	type stageCount struct {
		Stage models.FunnelStage
		Count int64
	}
	var rows []stageCount
	err := s.db.WithContext(ctx).
		Model(&models.FunnelEvent{}).
		Select("stage, COUNT(*) as count").
		Where("occurred_at >= ?", windowStart).
		Group("stage").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.FunnelStage]int64, len(rows))
	for _, r := range rows {
		counts[r.Stage] = r.Count
	}
	return counts, nil
}

// demoStats runs the scaled synthetic dataset through the same aggregation
// as live orders.
func (s *statsService) demoStats(now time.Time, filter string) *CommandCenterStats {
	stats := computeStats(s.demo.Orders(now, filter), s.demo.FunnelCounts(filter), filter, now)
	stats.IsDemo = true
	return stats
}

// computeStats is the pure aggregation over an order set and funnel counts.
func computeStats(orders []models.Order, funnel map[models.FunnelStage]int64, filter string, now time.Time) *CommandCenterStats {
	stats := &CommandCenterStats{Filter: filter}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := now.AddDate(0, 0, -7)
	monthStart := now.AddDate(0, -1, 0)

	channelAgg := map[models.Channel]*ChannelStat{}
	productAgg := map[string]*ProductStat{}
	revenueByDay := map[string]int64{}

	for _, o := range orders {
		if !o.PlacedAt.Before(dayStart) {
			stats.OrdersToday++
		}
		if o.PlacedAt.After(weekStart) {
			stats.OrdersThisWeek++
		}
		if o.PlacedAt.After(monthStart) {
			stats.OrdersThisMonth++
		}
		stats.TotalRevenue += o.Total

		cs, ok := channelAgg[o.Channel]
		if !ok {
			cs = &ChannelStat{Channel: o.Channel}
			channelAgg[o.Channel] = cs
		}
		cs.Orders++
		cs.Revenue += o.Total

		for _, item := range o.Items {
			ps, ok := productAgg[item.ProductName]
			if !ok {
				ps = &ProductStat{Name: item.ProductName}
				productAgg[item.ProductName] = ps
			}
			ps.Units += item.Quantity
			ps.Revenue += item.UnitPrice * item.Quantity
		}

		revenueByDay[o.PlacedAt.Format("2006-01-02")] += o.Total
	}

	for _, channel := range []models.Channel{models.ChannelDirect, models.ChannelWholesale} {
		cs, ok := channelAgg[channel]
		if !ok {
			cs = &ChannelStat{Channel: channel}
		}
		if stats.TotalRevenue > 0 {
			cs.Share = float64(cs.Revenue) / float64(stats.TotalRevenue) * 100
		}
		stats.Channels = append(stats.Channels, *cs)
	}

	for _, ps := range productAgg {
		stats.TopProducts = append(stats.TopProducts, *ps)
	}
	sort.Slice(stats.TopProducts, func(i, j int) bool {
		if stats.TopProducts[i].Units != stats.TopProducts[j].Units {
			return stats.TopProducts[i].Units > stats.TopProducts[j].Units
		}
		return stats.TopProducts[i].Name < stats.TopProducts[j].Name
	})
	if len(stats.TopProducts) > topProductCount {
		stats.TopProducts = stats.TopProducts[:topProductCount]
	}

	days := windowDaysFor(filter)
	if days > trendDays {
		days = trendDays
	}
	for i := days - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format("2006-01-02")
		stats.RevenueTrend = append(stats.RevenueTrend, TrendPoint{
			Date:    date,
			Revenue: revenueByDay[date],
		})
	}

	prev := int64(-1)
	for _, stage := range funnelOrder {
		count := funnel[stage]
		stat := FunnelStageStat{Stage: stage, Count: count}
		switch {
		case prev < 0:
			stat.Rate = 100
		case prev > 0:
			stat.Rate = float64(count) / float64(prev) * 100
		}
		stats.Funnel = append(stats.Funnel, stat)
		prev = count
	}

	return stats
}

// ExportCSV renders the command-center stats as flat CSV sections. Section
// and column order is fixed; downstream consumers parse this positionally.
func (s *statsService) ExportCSV(ctx context.Context, filter string, w io.Writer) error {
	stats, err := s.GetCommandCenterStats(ctx, filter)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)

	write := func(record ...string) {
		// csv.Writer sticky error surfaces on Flush
		_ = cw.Write(record)
	}

	write("Order Summary")
	write("Metric", "Value")
	write("Orders Today", fmt.Sprintf("%d", stats.OrdersToday))
	write("Orders This Week", fmt.Sprintf("%d", stats.OrdersThisWeek))
	write("Orders This Month", fmt.Sprintf("%d", stats.OrdersThisMonth))
	write()

	write("Channel Breakdown")
	write("Channel", "Orders", "Revenue", "Share %")
	for _, c := range stats.Channels {
		write(string(c.Channel), fmt.Sprintf("%d", c.Orders), formatCents(c.Revenue), fmt.Sprintf("%.1f", c.Share))
	}
	write()

	write("Financial Summary")
	write("Metric", "Value")
	write("Total Revenue", formatCents(stats.TotalRevenue))
	var avgOrder int64
	orderCount := int64(0)
	for _, c := range stats.Channels {
		orderCount += c.Orders
	}
	if orderCount > 0 {
		avgOrder = stats.TotalRevenue / orderCount
	}
	write("Average Order Value", formatCents(avgOrder))
	write()

	write("Top Products")
	write("Product", "Units", "Revenue")
	for _, p := range stats.TopProducts {
		write(p.Name, fmt.Sprintf("%d", p.Units), formatCents(p.Revenue))
	}
	write()

	write("Revenue Trend")
	write("Date", "Revenue")
	for _, t := range stats.RevenueTrend {
		write(t.Date, formatCents(t.Revenue))
	}
	write()

	write("Conversion Funnel")
	write("Stage", "Count", "Rate %")
	for _, f := range stats.Funnel {
		write(string(f.Stage), fmt.Sprintf("%d", f.Count), fmt.Sprintf("%.1f", f.Rate))
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// formatCents renders a cent amount as a decimal money string.
func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// windowDaysFor converts a stats filter to its window length in days.
func windowDaysFor(filter string) int {
	switch filter {
	case "today":
		return 1
	case "7days":
		return 7
	case "90days":
		return 90
	case "year":
		return 365
	default:
		return 30
	}
}
