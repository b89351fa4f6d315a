package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fincore/internal/errors"
	"fincore/internal/models"
	"fincore/internal/services"
)

// OverviewHandler handles financial overview and transaction listing requests.
type OverviewHandler struct {
	overviewService services.OverviewServicer
}

// NewOverviewHandler creates a new OverviewHandler.
func NewOverviewHandler(overviewService services.OverviewServicer) *OverviewHandler {
	return &OverviewHandler{overviewService: overviewService}
}

// GetFinancialOverview handles retrieving the aggregated financial overview.
// @Summary     Get financial overview
// @Description Get balances, monthly income/expense breakdowns, burn rate and runway. Falls back to demo data when no live data exists.
// @Tags        overview
// @Produce     json
// @Param       date_start query string false "Window start (RFC3339 or YYYY-MM-DD, default first of month)"
// @Param       date_end   query string false "Window end (RFC3339 or YYYY-MM-DD, default end of month)"
// @Success     200 {object} services.FinancialOverview "Financial overview"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /financial-overview [get]
func (h *OverviewHandler) GetFinancialOverview(c *gin.Context) {
	var from, to *time.Time
	if v := c.Query("date_start"); v != "" {
		t, err := parseFlexibleTime(v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
		from = &t
	}
	if v := c.Query("date_end"); v != "" {
		t, err := parseFlexibleTime(v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
		to = &t
	}

	overview, err := h.overviewService.GetFinancialOverview(c.Request.Context(), from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

// ListTransactionsRequest represents the query parameters for listing transactions.
type ListTransactionsRequest struct {
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset    int    `form:"offset" binding:"omitempty,min=0"`
	Type      string `form:"type" binding:"omitempty,direction"`
	Status    string `form:"status" binding:"omitempty,transaction_status"`
	DateStart string `form:"date_start"`
	DateEnd   string `form:"date_end"`
}

// ListTransactions handles listing transactions with filters and paging.
// @Summary     List transactions
// @Description List transactions newest first with optional direction, status and date filters. Falls back to demo data when the store is empty.
// @Tags        transactions
// @Produce     json
// @Param       limit      query int    false "Page size (default 20, max 100)"
// @Param       offset     query int    false "Offset (default 0)"
// @Param       type       query string false "Direction filter (credit or debit)"
// @Param       status     query string false "Status filter (pending, posted or failed)"
// @Param       date_start query string false "Posted-at lower bound"
// @Param       date_end   query string false "Posted-at upper bound"
// @Success     200 {object} services.TransactionPage "Transaction page"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /transactions [get]
func (h *OverviewHandler) ListTransactions(c *gin.Context) {
	var req ListTransactionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	query := services.TransactionQuery{Limit: req.Limit, Offset: req.Offset}
	if req.Type != "" {
		direction := models.Direction(req.Type)
		query.Direction = &direction
	}
	if req.Status != "" {
		status := models.TransactionStatus(req.Status)
		query.Status = &status
	}
	if req.DateStart != "" {
		t, err := parseFlexibleTime(req.DateStart)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
		query.DateStart = &t
	}
	if req.DateEnd != "" {
		t, err := parseFlexibleTime(req.DateEnd)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
		query.DateEnd = &t
	}

	page, err := h.overviewService.ListTransactions(c.Request.Context(), query)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}
