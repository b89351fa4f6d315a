package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fincore/internal/errors"
	"fincore/internal/services"
)

// StatsHandler handles command-center stats requests.
type StatsHandler struct {
	statsService services.StatsServicer
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService services.StatsServicer) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// StatsRequest represents the query parameters shared by the command-center views.
type StatsRequest struct {
	Filter string `form:"filter" binding:"omitempty,stats_filter"`
}

// GetCommandCenterStats handles the order/revenue dashboard view.
// @Summary     Get command-center stats
// @Description Get order counts, channel split, top products, revenue trend and conversion funnel for a time filter.
// @Tags        stats
// @Produce     json
// @Param       filter query string false "Time filter: today, 7days, 30days, 90days, year (default 30days)"
// @Success     200 {object} services.CommandCenterStats "Command-center stats"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Router      /command-center-stats [get]
func (h *StatsHandler) GetCommandCenterStats(c *gin.Context) {
	var req StatsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	stats, err := h.statsService.GetCommandCenterStats(c.Request.Context(), req.Filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ExportCSV handles the CSV rendering of the command-center stats.
// @Summary     Export command-center stats as CSV
// @Description Download the stats view as CSV with fixed section and column order.
// @Tags        stats
// @Produce     text/csv
// @Param       filter query string false "Time filter: today, 7days, 30days, 90days, year (default 30days)"
// @Success     200 {string} string "CSV data"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Router      /command-center-stats/export [get]
func (h *StatsHandler) ExportCSV(c *gin.Context) {
	var req StatsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	// Render into a buffer first so an error never leaves a half-written body.
	var buf bytes.Buffer
	if err := h.statsService.ExportCSV(c.Request.Context(), req.Filter, &buf); err != nil {
		respondWithError(c, err)
		return
	}

	filename := fmt.Sprintf("command-center-stats-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}
