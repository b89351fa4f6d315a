package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "fincore/internal/errors"
	"fincore/internal/services"
)

// ForecastHandler handles cash-flow forecast requests.
type ForecastHandler struct {
	forecastService services.ForecastServicer
}

// NewForecastHandler creates a new ForecastHandler.
func NewForecastHandler(forecastService services.ForecastServicer) *ForecastHandler {
	return &ForecastHandler{forecastService: forecastService}
}

// GetCashFlowForecast handles the day-by-day balance projection.
// @Summary     Get cash-flow forecast
// @Description Project daily balances forward with decaying confidence, up to 90 days.
// @Tags        forecast
// @Produce     json
// @Param       days query int false "Projection horizon in days (default and max 90)"
// @Success     200 {object} services.CashFlowForecast "Projection series"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /cash-flow-forecast [get]
func (h *ForecastHandler) GetCashFlowForecast(c *gin.Context) {
	days := 0
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid days"))
			return
		}
		days = n
	}

	forecast, err := h.forecastService.GetCashFlowForecast(c.Request.Context(), days)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, forecast)
}

// GetCashFlowSummary handles the condensed forecast view.
// @Summary     Get cash-flow summary
// @Description Get 30/60/90-day projected balances, average daily flows, burn rate and runway.
// @Tags        forecast
// @Produce     json
// @Success     200 {object} services.CashFlowSummary "Forecast summary"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /cash-flow-summary [get]
func (h *ForecastHandler) GetCashFlowSummary(c *gin.Context) {
	summary, err := h.forecastService.GetCashFlowSummary(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
