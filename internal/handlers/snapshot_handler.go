package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fincore/internal/errors"
	"fincore/internal/pagination"
	"fincore/internal/services"
)

// SnapshotHandler handles financial snapshot requests.
type SnapshotHandler struct {
	snapshotService services.SnapshotServicer
}

// NewSnapshotHandler creates a new SnapshotHandler.
func NewSnapshotHandler(snapshotService services.SnapshotServicer) *SnapshotHandler {
	return &SnapshotHandler{snapshotService: snapshotService}
}

// SaveSnapshot handles persisting today's financial snapshot.
// @Summary     Save financial snapshot
// @Description Compute today's overview and persist it keyed by date; same-day saves update in place. Fails when only demo data is available.
// @Tags        snapshots
// @Produce     json
// @Success     200 {object} models.FinancialSnapshot "Persisted snapshot"
// @Failure     409 {object} ErrorResponse "No live data"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /financial-snapshot [post]
func (h *SnapshotHandler) SaveSnapshot(c *gin.Context) {
	snapshot, err := h.snapshotService.SaveSnapshot(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// GetSnapshots handles retrieving historical snapshots for a date range.
// @Summary     Get financial snapshots
// @Description Get paginated daily snapshots for a date range, newest first.
// @Tags        snapshots
// @Produce     json
// @Param       from      query string true  "Start date (RFC3339 or YYYY-MM-DD)"
// @Param       to        query string true  "End date (RFC3339 or YYYY-MM-DD)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.FinancialSnapshot] "Paginated snapshots"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /financial-snapshots [get]
func (h *SnapshotHandler) GetSnapshots(c *gin.Context) {
	fromStr := c.Query("from")
	if fromStr == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "from is required"))
		return
	}
	from, err := parseFlexibleTime(fromStr)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	toStr := c.Query("to")
	if toStr == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "to is required"))
		return
	}
	to, err := parseFlexibleTime(toStr)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.snapshotService.GetSnapshots(from, to, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
