package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fincore/internal/services"
)

// SyncHandler handles explicit reconciliation triggers.
type SyncHandler struct {
	syncService services.SyncServicer
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(syncService services.SyncServicer) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

// Sync handles an explicit full reconciliation of accounts and transactions.
// @Summary     Trigger reconciliation
// @Description Refresh accounts and transactions from the banking provider. Safe to retry; provider outages degrade to the persisted state.
// @Tags        sync
// @Produce     json
// @Success     200 {object} map[string]interface{} "Sync result counts"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /sync [post]
func (h *SyncHandler) Sync(c *gin.Context) {
	accounts, err := h.syncService.SyncAccounts(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	txns, err := h.syncService.SyncAllTransactions(c.Request.Context(), nil, nil)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accounts_synced":     len(accounts),
		"transactions_synced": len(txns),
	})
}
