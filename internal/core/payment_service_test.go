package core

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"goshopper-backend-go/internal/config"
	"goshopper-backend-go/internal/db"
	"goshopper-backend-go/internal/models"
)

func TestValidatePhoneNumber(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "international format", input: "+243812345678", want: "812345678"},
		{name: "local format", input: "0812345678", want: "812345678"},
		{name: "bare country code", input: "243972345678", want: "972345678"},
		{name: "spaces and dashes", input: "+243 81-234-5678", want: "812345678"},
		{name: "too short", input: "+24381234", wantErr: true},
		{name: "too long", input: "08123456789", wantErr: true},
		{name: "letters", input: "+24381234567a", wantErr: true},
		{name: "no recognized prefix", input: "812345678", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidatePhoneNumber(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPhoneNumber)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectProvider(t *testing.T) {
	tests := []struct {
		subscriber string
		want       models.MobileMoneyProvider
	}{
		{"812345678", models.ProviderMPesa},
		{"823456789", models.ProviderMPesa},
		{"834567890", models.ProviderMPesa},
		{"971234567", models.ProviderAirtel},
		{"991234567", models.ProviderAirtel},
		{"841234567", models.ProviderOrange},
		{"851234567", models.ProviderOrange},
		{"891234567", models.ProviderOrange},
		{"901234567", models.ProviderAfricell},
		{"911234567", models.ProviderAfricell},
	}
	for _, tt := range tests {
		t.Run(tt.subscriber, func(t *testing.T) {
			got, err := DetectProvider(tt.subscriber)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectProvider_UnknownPrefix(t *testing.T) {
	_, err := DetectProvider("701234567")
	assert.ErrorIs(t, err, ErrUnknownProvider)

	_, err = DetectProvider("7")
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

// memSubscriptionRepo is an in-memory SubscriptionRepository. Update errors
// are popped from updateErrs one per call to simulate transient failures.
type memSubscriptionRepo struct {
	sub        *models.Subscription
	updateErrs []error
}

func (r *memSubscriptionRepo) GetByUserID(ctx context.Context, userID string) (*models.Subscription, error) {
	if r.sub == nil || r.sub.UserID != userID {
		return nil, fmt.Errorf("subscription for user '%s' not found: %w", userID, db.ErrNotFound)
	}
	cp := *r.sub
	return &cp, nil
}

func (r *memSubscriptionRepo) Create(ctx context.Context, sub *models.Subscription) error {
	cp := *sub
	r.sub = &cp
	return nil
}

func (r *memSubscriptionRepo) Update(ctx context.Context, sub *models.Subscription) error {
	if len(r.updateErrs) > 0 {
		err := r.updateErrs[0]
		r.updateErrs = r.updateErrs[1:]
		if err != nil {
			return err
		}
	}
	cp := *sub
	r.sub = &cp
	return nil
}

// memPaymentRepo is an in-memory PaymentRepository.
type memPaymentRepo struct {
	payments map[string]*models.Payment
}

func (r *memPaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	cp := *payment
	r.payments[payment.ID] = &cp
	return nil
}

func (r *memPaymentRepo) GetByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	p, ok := r.payments[paymentID]
	if !ok {
		return nil, fmt.Errorf("payment '%s' not found: %w", paymentID, db.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (r *memPaymentRepo) Update(ctx context.Context, payment *models.Payment) error {
	cp := *payment
	r.payments[payment.ID] = &cp
	return nil
}

func signWebhookBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

const testWebhookSecret = "whsec-test"

func newWebhookTestService(t *testing.T, subRepo db.SubscriptionRepository, payRepo db.PaymentRepository) PaymentService {
	t.Helper()
	cfg := &config.Config{
		EncryptionKey:        base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0x01}, 32)),
		PaymentGatewayURL:    "http://gateway.invalid",
		PaymentGatewayAPIKey: "test-key",
		PaymentWebhookSecret: testWebhookSecret,
	}
	subSvc := NewSubscriptionService(subRepo, nil, zap.NewNop())
	svc, err := NewPaymentService(payRepo, subSvc, nil, NewEncryptionService(), cfg, zap.NewNop())
	require.NoError(t, err)
	return svc
}

func TestHandleWebhook_ActivationFailureLeavesPaymentRetryable(t *testing.T) {
	subRepo := &memSubscriptionRepo{
		sub: &models.Subscription{
			UserID: "user-1",
			Status: models.StatusFreemium,
			PlanID: models.PlanFreemium,
		},
		// First activation attempt hits a transient storage failure.
		updateErrs: []error{errors.New("deadline exceeded")},
	}
	payRepo := &memPaymentRepo{payments: map[string]*models.Payment{
		"pay-1": {
			ID:       "pay-1",
			UserID:   "user-1",
			PlanID:   models.PlanBasic,
			Amount:   1.99,
			Currency: "USD",
			Status:   models.PaymentPending,
		},
	}}
	svc := newWebhookTestService(t, subRepo, payRepo)

	body := []byte(`{"paymentId":"pay-1","status":"SUCCESS"}`)
	signature := signWebhookBody(testWebhookSecret, body)
	req := models.PaymentWebhookRequest{PaymentID: "pay-1", Status: models.PaymentSuccess}

	err := svc.HandleWebhook(context.Background(), signature, body, req)
	require.Error(t, err)
	assert.Equal(t, models.PaymentPending, payRepo.payments["pay-1"].Status,
		"payment must stay pending when activation fails")
	assert.Equal(t, models.PlanFreemium, subRepo.sub.PlanID)

	// The gateway redelivers the same event; this time it must go through.
	err = svc.HandleWebhook(context.Background(), signature, body, req)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentSuccess, payRepo.payments["pay-1"].Status)
	assert.Equal(t, models.PlanBasic, subRepo.sub.PlanID)
	assert.Equal(t, models.StatusActive, subRepo.sub.Status)
}

func TestHandleWebhook_SuccessActivatesPlan(t *testing.T) {
	subRepo := &memSubscriptionRepo{
		sub: &models.Subscription{
			UserID: "user-2",
			Status: models.StatusFreemium,
			PlanID: models.PlanFreemium,
		},
	}
	payRepo := &memPaymentRepo{payments: map[string]*models.Payment{
		"pay-2": {
			ID:       "pay-2",
			UserID:   "user-2",
			PlanID:   models.PlanStandard,
			Amount:   3.99,
			Currency: "USD",
			Status:   models.PaymentPending,
		},
	}}
	svc := newWebhookTestService(t, subRepo, payRepo)

	body := []byte(`{"paymentId":"pay-2","status":"SUCCESS","gatewayRef":"tx-9"}`)
	signature := signWebhookBody(testWebhookSecret, body)
	req := models.PaymentWebhookRequest{PaymentID: "pay-2", Status: models.PaymentSuccess, GatewayRef: "tx-9"}

	err := svc.HandleWebhook(context.Background(), signature, body, req)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentSuccess, payRepo.payments["pay-2"].Status)
	assert.Equal(t, "tx-9", payRepo.payments["pay-2"].GatewayRef)
	assert.Equal(t, models.PlanStandard, subRepo.sub.PlanID)
	require.NotNil(t, subRepo.sub.LastPaymentDate)
	assert.Equal(t, 3.99, subRepo.sub.LastPaymentAmount)

	// A duplicate delivery after the terminal state is a conflict.
	err = svc.HandleWebhook(context.Background(), signature, body, req)
	assert.ErrorIs(t, err, ErrPaymentAlreadyFinal)
}

func TestVerifyWebhookSignature(t *testing.T) {
	secret := "test-webhook-secret"
	body := []byte(`{"paymentId":"abc","status":"SUCCESS"}`)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	signature := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, VerifyWebhookSignature(secret, body, signature))
	assert.True(t, VerifyWebhookSignature(secret, body, "  "+signature+" "), "whitespace tolerated")
	assert.False(t, VerifyWebhookSignature(secret, body, "deadbeef"))
	assert.False(t, VerifyWebhookSignature("other-secret", body, signature))
	assert.False(t, VerifyWebhookSignature(secret, []byte(`{"tampered":true}`), signature))
}
