package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"goshopper-backend-go/internal/core"
	"goshopper-backend-go/internal/models"
)

type stubPaymentService struct {
	webhookErr    error
	gotSignature  string
	gotBody       []byte
	initiateErr   error
	initiateReply *models.Payment
}

func (s *stubPaymentService) InitiatePayment(ctx context.Context, userID string, req models.InitiatePaymentRequest) (*models.Payment, error) {
	if s.initiateErr != nil {
		return nil, s.initiateErr
	}
	return s.initiateReply, nil
}

func (s *stubPaymentService) HandleWebhook(ctx context.Context, signature string, body []byte, req models.PaymentWebhookRequest) error {
	s.gotSignature = signature
	s.gotBody = body
	return s.webhookErr
}

func newWebhookRouter(svc core.PaymentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewPaymentHandler(svc)
	router.POST("/payments/webhook", handler.HandleWebhook)
	return router
}

func TestHandleWebhook_PassesRawBodyAndSignature(t *testing.T) {
	svc := &stubPaymentService{}
	router := newWebhookRouter(svc)

	body := []byte(`{"paymentId":"pay-1","status":"SUCCESS"}`)
	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(webhookSignatureHeader, "abc123")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc123", svc.gotSignature)
	assert.Equal(t, body, svc.gotBody)
}

func TestHandleWebhook_InvalidSignature(t *testing.T) {
	svc := &stubPaymentService{webhookErr: core.ErrInvalidSignature}
	router := newWebhookRouter(svc)

	body := []byte(`{"paymentId":"pay-1","status":"SUCCESS"}`)
	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", bytes.NewReader(body))
	req.Header.Set(webhookSignatureHeader, "forged")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleWebhook_MissingRequiredFields(t *testing.T) {
	svc := &stubPaymentService{}
	router := newWebhookRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", bytes.NewReader([]byte(`{"gatewayRef":"x"}`)))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.gotBody, "service must not be called for invalid payloads")
}

func TestHandleWebhook_FinalPaymentConflicts(t *testing.T) {
	svc := &stubPaymentService{webhookErr: core.ErrPaymentAlreadyFinal}
	router := newWebhookRouter(svc)

	body := []byte(`{"paymentId":"pay-1","status":"FAILED"}`)
	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", bytes.NewReader(body))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}
