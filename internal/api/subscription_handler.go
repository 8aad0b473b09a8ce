package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"goshopper-backend-go/internal/core"
)

// SubscriptionHandler handles subscription-state API endpoints.
type SubscriptionHandler struct {
	subscriptionService core.SubscriptionService
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(ss core.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: ss}
}

// GetCurrentSubscription handles GET /subscriptions/me. The response is the
// wall-clock-derived state, not the raw document.
func (h *SubscriptionHandler) GetCurrentSubscription(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	_, state, err := h.subscriptionService.GetState(c.Request.Context(), userID)
	if err != nil {
		mapCoreErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, NewSubscriptionStateResponse(state))
}

// RecordScan handles POST /subscriptions/record-scan. Receipt creation meters
// scans internally; this endpoint exists for client-driven metering parity.
func (h *SubscriptionHandler) RecordScan(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	state, err := h.subscriptionService.RecordScan(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrScanLimitReached) || errors.Is(err, core.ErrSubscriptionInactive) {
			// The derived state accompanies the rejection so clients can show
			// the right upgrade prompt.
			status := http.StatusPaymentRequired
			if errors.Is(err, core.ErrSubscriptionInactive) {
				status = http.StatusForbidden
			}
			c.JSON(status, gin.H{"error": err.Error(), "state": NewSubscriptionStateResponse(state)})
			return
		}
		mapCoreErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, NewSubscriptionStateResponse(state))
}
