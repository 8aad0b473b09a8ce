package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"goshopper-backend-go/internal/core"
	"goshopper-backend-go/internal/currency"
	"goshopper-backend-go/internal/models"
)

// currentUserID pulls the authenticated user's ID out of the Gin context.
// Returns "" and writes the error response when the context is missing it.
func currentUserID(c *gin.Context) string {
	rawUserID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: User ID not found in context"})
		return ""
	}
	userID, ok := rawUserID.(string)
	if !ok || userID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid user ID format in context"})
		return ""
	}
	return userID
}

// mapCoreErrorToStatus maps errors from the core services to HTTP status
// codes and ErrorResponse payloads.
func mapCoreErrorToStatus(c *gin.Context, err error) {
	var statusCode int
	var errResponse ErrorResponse

	switch {
	case errors.Is(err, core.ErrReceiptNotFound),
		errors.Is(err, core.ErrListNotFound),
		errors.Is(err, core.ErrUserNotFound):
		statusCode = http.StatusNotFound
		errResponse = ErrorResponse{Error: err.Error()}
	case errors.Is(err, core.ErrForbidden):
		statusCode = http.StatusForbidden
		errResponse = ErrorResponse{Error: core.ErrForbidden.Error()}
	case errors.Is(err, core.ErrScanLimitReached),
		errors.Is(err, core.ErrListLimitReached):
		statusCode = http.StatusPaymentRequired
		errResponse = ErrorResponse{Error: err.Error()}
	case errors.Is(err, core.ErrSubscriptionInactive),
		errors.Is(err, core.ErrUpgradeRequired):
		statusCode = http.StatusForbidden
		errResponse = ErrorResponse{Error: err.Error()}
	case errors.Is(err, core.ErrNoComparisonData):
		statusCode = http.StatusNotFound
		errResponse = ErrorResponse{Error: core.ErrNoComparisonData.Error()}
	case errors.Is(err, currency.ErrUnsupportedCurrency):
		statusCode = http.StatusBadRequest
		errResponse = ErrorResponse{Error: err.Error()}
	default:
		log.Printf("Internal Server Error: %v", err)
		statusCode = http.StatusInternalServerError
		errResponse = ErrorResponse{Error: "An unexpected internal server error occurred."}
	}
	c.JSON(statusCode, errResponse)
}

// ReceiptHandler handles API endpoints related to receipts.
type ReceiptHandler struct {
	receiptService      core.ReceiptService
	priceCompareService core.PriceCompareService
}

// NewReceiptHandler creates a new ReceiptHandler.
func NewReceiptHandler(rs core.ReceiptService, pcs core.PriceCompareService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: rs, priceCompareService: pcs}
}

// CreateReceipt handles POST /receipts.
func (h *ReceiptHandler) CreateReceipt(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	var req models.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	receipt, err := h.receiptService.Create(c.Request.Context(), userID, req)
	if err != nil {
		mapCoreErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusCreated, receipt)
}

// ListReceipts handles GET /receipts. The optional limit query param caps the
// page size.
func (h *ReceiptHandler) ListReceipts(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	limit := 0
	if rawLimit := c.Query("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid limit parameter"})
			return
		}
		limit = parsed
	}

	receipts, err := h.receiptService.List(c.Request.Context(), userID, limit)
	if err != nil {
		mapCoreErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, receipts)
}

// GetReceipt handles GET /receipts/:receiptId.
func (h *ReceiptHandler) GetReceipt(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}
	receiptID := c.Param("receiptId")
	if receiptID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Receipt ID is required"})
		return
	}

	receipt, err := h.receiptService.GetByID(c.Request.Context(), userID, receiptID)
	if err != nil {
		mapCoreErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}

// DeleteReceipt handles DELETE /receipts/:receiptId.
func (h *ReceiptHandler) DeleteReceipt(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}
	receiptID := c.Param("receiptId")
	if receiptID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Receipt ID is required"})
		return
	}

	if err := h.receiptService.Delete(c.Request.Context(), userID, receiptID); err != nil {
		mapCoreErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Receipt deleted successfully"})
}

// UpdateReceiptCity handles PATCH /receipts/:receiptId/city.
func (h *ReceiptHandler) UpdateReceiptCity(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}
	receiptID := c.Param("receiptId")
	if receiptID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Receipt ID is required"})
		return
	}

	var req models.UpdateReceiptCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	if err := h.receiptService.UpdateCity(c.Request.Context(), userID, receiptID, req.City); err != nil {
		mapCoreErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Receipt city updated successfully"})
}

// GetComparison handles GET /receipts/:receiptId/comparison. A repository
// failure while loading observations is surfaced as 503; no observations at
// all is 404.
func (h *ReceiptHandler) GetComparison(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}
	receiptID := c.Param("receiptId")
	if receiptID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Receipt ID is required"})
		return
	}

	report, err := h.priceCompareService.GetComparison(c.Request.Context(), userID, receiptID)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNoComparisonData),
			errors.Is(err, core.ErrReceiptNotFound),
			errors.Is(err, core.ErrForbidden),
			errors.Is(err, core.ErrUpgradeRequired):
			mapCoreErrorToStatus(c, err)
		default:
			log.Printf("GetComparison Error: %v", err)
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Price comparison is temporarily unavailable"})
		}
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetSpendingStats handles GET /receipts/stats. The period query param is one
// of week, month (default) or year.
func (h *ReceiptHandler) GetSpendingStats(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	now := time.Now().UTC()
	var since time.Time
	switch c.DefaultQuery("period", "month") {
	case "week":
		since = now.AddDate(0, 0, -7)
	case "month":
		since = now.AddDate(0, -1, 0)
	case "year":
		since = now.AddDate(-1, 0, 0)
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid period parameter; expected week, month or year"})
		return
	}

	stats, err := h.receiptService.SpendingStats(c.Request.Context(), userID, since)
	if err != nil {
		mapCoreErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
