package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"goshopper-backend-go/internal/core"
	"goshopper-backend-go/internal/models"
)

// webhookSignatureHeader carries the gateway's hex-encoded HMAC-SHA256 of the
// raw request body.
const webhookSignatureHeader = "X-Webhook-Signature"

// PaymentHandler handles mobile-money payment API endpoints.
type PaymentHandler struct {
	paymentService core.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(ps core.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: ps}
}

// mapPaymentErrorToStatus maps errors from core.PaymentService to HTTP status
// codes and ErrorResponse payloads.
func mapPaymentErrorToStatus(c *gin.Context, err error) {
	var statusCode int
	var errResponse ErrorResponse

	switch {
	case errors.Is(err, core.ErrInvalidPhoneNumber),
		errors.Is(err, core.ErrUnknownProvider),
		errors.Is(err, core.ErrUnknownPlan):
		statusCode = http.StatusBadRequest
		errResponse = ErrorResponse{Error: err.Error()}
	case errors.Is(err, core.ErrInvalidSignature):
		statusCode = http.StatusUnauthorized
		errResponse = ErrorResponse{Error: core.ErrInvalidSignature.Error()}
	case errors.Is(err, core.ErrPaymentNotFound):
		statusCode = http.StatusNotFound
		errResponse = ErrorResponse{Error: err.Error()}
	case errors.Is(err, core.ErrPaymentAlreadyFinal):
		statusCode = http.StatusConflict
		errResponse = ErrorResponse{Error: err.Error()}
	case errors.Is(err, core.ErrGatewayUnavailable):
		statusCode = http.StatusServiceUnavailable
		errResponse = ErrorResponse{Error: "Payment gateway is temporarily unavailable"}
	default:
		log.Printf("Internal Server Error: %v", err)
		statusCode = http.StatusInternalServerError
		errResponse = ErrorResponse{Error: "An unexpected internal server error occurred."}
	}
	c.JSON(statusCode, errResponse)
}

// InitiatePayment handles POST /payments/initiate.
func (h *PaymentHandler) InitiatePayment(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		return
	}

	var req models.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	payment, err := h.paymentService.InitiatePayment(c.Request.Context(), userID, req)
	if err != nil {
		mapPaymentErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusAccepted, payment)
}

// HandleWebhook handles POST /payments/webhook. The route is public; the
// gateway authenticates via the signature header over the raw body, so the
// body is read before JSON binding.
func (h *PaymentHandler) HandleWebhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to read request body"})
		return
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	var req models.PaymentWebhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid webhook payload", Details: err.Error()})
		return
	}
	if req.PaymentID == "" || req.Status == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "paymentId and status are required"})
		return
	}

	signature := c.GetHeader(webhookSignatureHeader)
	if err := h.paymentService.HandleWebhook(c.Request.Context(), signature, body, req); err != nil {
		mapPaymentErrorToStatus(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Webhook processed"})
}
