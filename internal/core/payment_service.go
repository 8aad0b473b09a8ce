package core

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"goshopper-backend-go/internal/config"
	"goshopper-backend-go/internal/db"
	"goshopper-backend-go/internal/models"
)

// Sentinel errors for payment operations.
var (
	ErrInvalidPhoneNumber   = errors.New("invalid DRC phone number")
	ErrUnknownProvider      = errors.New("unknown mobile money provider")
	ErrInvalidSignature     = errors.New("invalid webhook signature")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrPaymentAlreadyFinal  = errors.New("payment already in a terminal state")
	ErrGatewayUnavailable   = errors.New("payment gateway unavailable")
	ErrInvalidEncryptionKey = errors.New("invalid encryption key loaded")
)

const gatewayTimeout = 15 * time.Second

// providerPrefixes maps DRC subscriber-number prefixes to networks.
var providerPrefixes = map[string]models.MobileMoneyProvider{
	"81": models.ProviderMPesa,
	"82": models.ProviderMPesa,
	"83": models.ProviderMPesa,
	"97": models.ProviderAirtel,
	"99": models.ProviderAirtel,
	"84": models.ProviderOrange,
	"85": models.ProviderOrange,
	"89": models.ProviderOrange,
	"90": models.ProviderAfricell,
	"91": models.ProviderAfricell,
}

// ValidatePhoneNumber accepts DRC numbers in +243XXXXXXXXX or 0XXXXXXXXX form
// and returns the 9-digit subscriber number.
func ValidatePhoneNumber(phone string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, strings.TrimSpace(phone))

	var subscriber string
	switch {
	case strings.HasPrefix(cleaned, "+243"):
		subscriber = cleaned[4:]
	case strings.HasPrefix(cleaned, "243") && len(cleaned) == 12:
		subscriber = cleaned[3:]
	case strings.HasPrefix(cleaned, "0"):
		subscriber = cleaned[1:]
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPhoneNumber, phone)
	}

	if len(subscriber) != 9 {
		return "", fmt.Errorf("%w: expected 9 subscriber digits, got %d", ErrInvalidPhoneNumber, len(subscriber))
	}
	for _, r := range subscriber {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: non-digit in subscriber number", ErrInvalidPhoneNumber)
		}
	}
	return subscriber, nil
}

// DetectProvider resolves the mobile-money network from a validated 9-digit
// subscriber number.
func DetectProvider(subscriber string) (models.MobileMoneyProvider, error) {
	if len(subscriber) < 2 {
		return "", fmt.Errorf("%w: number too short", ErrUnknownProvider)
	}
	provider, ok := providerPrefixes[subscriber[:2]]
	if !ok {
		return "", fmt.Errorf("%w: prefix %s", ErrUnknownProvider, subscriber[:2])
	}
	return provider, nil
}

// VerifyWebhookSignature checks the hex-encoded HMAC-SHA256 of the raw body
// against the shared webhook secret. Comparison is constant-time.
func VerifyWebhookSignature(secret string, body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(strings.TrimSpace(signature))))
}

// gatewayChargeRequest is the opaque JSON POST to the payment gateway. The
// gateway's wire format is not owned here; this is the minimal envelope it
// accepts.
type gatewayChargeRequest struct {
	Reference   string  `json:"reference"`
	PhoneNumber string  `json:"phoneNumber"`
	Provider    string  `json:"provider"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
}

type gatewayChargeResponse struct {
	TransactionID string `json:"transactionId"`
}

// paymentService implements the PaymentService interface.
type paymentService struct {
	paymentRepo   db.PaymentRepository
	subSvc        SubscriptionService
	auditSvc      AuditService
	encryptionSvc EncryptionService
	encryptionKey []byte
	gatewayURL    string
	gatewayAPIKey string
	webhookSecret string
	httpClient    *http.Client
	logger        *zap.Logger
}

// NewPaymentService creates a new PaymentService instance. The encryption key
// is decoded and length-checked once at construction.
func NewPaymentService(
	paymentRepo db.PaymentRepository,
	subSvc SubscriptionService,
	auditSvc AuditService,
	encryptionSvc EncryptionService,
	appConfig *config.Config,
	logger *zap.Logger,
) (PaymentService, error) {
	if appConfig == nil || appConfig.EncryptionKey == "" {
		return nil, fmt.Errorf("%w: encryption key is missing from application configuration", ErrInvalidEncryptionKey)
	}
	key, err := base64.StdEncoding.DecodeString(appConfig.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode base64 encryption key: %v", ErrInvalidEncryptionKey, err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("%w: key length must be 32 bytes for AES-256, but got %d bytes", ErrInvalidEncryptionKey, len(key))
	}

	return &paymentService{
		paymentRepo:   paymentRepo,
		subSvc:        subSvc,
		auditSvc:      auditSvc,
		encryptionSvc: encryptionSvc,
		encryptionKey: key,
		gatewayURL:    appConfig.PaymentGatewayURL,
		gatewayAPIKey: appConfig.PaymentGatewayAPIKey,
		webhookSecret: appConfig.PaymentWebhookSecret,
		httpClient:    &http.Client{Timeout: gatewayTimeout},
		logger:        logger,
	}, nil
}

// InitiatePayment validates the phone number and plan, records a PENDING
// payment with the phone number encrypted at rest, and asks the gateway to
// charge the subscriber. Activation happens later via the webhook.
func (s *paymentService) InitiatePayment(ctx context.Context, userID string, req models.InitiatePaymentRequest) (*models.Payment, error) {
	if !models.IsKnownPlan(req.PlanID) || req.PlanID == models.PlanFreemium {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlan, req.PlanID)
	}

	subscriber, err := ValidatePhoneNumber(req.PhoneNumber)
	if err != nil {
		return nil, err
	}
	provider, err := DetectProvider(subscriber)
	if err != nil {
		return nil, err
	}

	currencyCode := req.Currency
	if currencyCode == "" {
		currencyCode = "USD"
	}
	amount := models.MonthlyPriceUSD(req.PlanID)

	encryptedPhone, err := s.encryptionSvc.Encrypt("+243"+subscriber, s.encryptionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt phone number: %w", err)
	}

	payment := &models.Payment{
		ID:             uuid.NewString(),
		UserID:         userID,
		PlanID:         req.PlanID,
		Provider:       provider,
		PhoneEncrypted: encryptedPhone,
		Amount:         amount,
		Currency:       currencyCode,
		Status:         models.PaymentPending,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create payment record: %w", err)
	}

	gatewayRef, err := s.charge(ctx, payment.ID, "+243"+subscriber, provider, amount, currencyCode)
	if err != nil {
		payment.Status = models.PaymentFailed
		payment.FailureReason = "gateway request failed"
		if updateErr := s.paymentRepo.Update(ctx, payment); updateErr != nil {
			s.logger.Error("failed to mark payment as failed after gateway error",
				zap.String("paymentId", payment.ID),
				zap.Error(updateErr))
		}
		return nil, err
	}
	payment.GatewayRef = gatewayRef
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to store gateway reference: %w", err)
	}

	if s.auditSvc != nil {
		auditErr := s.auditSvc.CreateAuditLog(ctx, models.AuditLog{
			UserID:     userID,
			Action:     models.AuditPaymentInitiated,
			TargetType: "PAYMENT",
			TargetID:   payment.ID,
			Details:    map[string]interface{}{"planId": string(req.PlanID), "provider": string(provider), "amount": amount},
		})
		if auditErr != nil {
			s.logger.Warn("failed to write audit log for payment initiation", zap.Error(auditErr))
		}
	}

	return payment, nil
}

// charge POSTs the charge request to the gateway and returns its transaction
// reference.
func (s *paymentService) charge(ctx context.Context, reference, phone string, provider models.MobileMoneyProvider, amount float64, currencyCode string) (string, error) {
	body, err := json.Marshal(gatewayChargeRequest{
		Reference:   reference,
		PhoneNumber: phone,
		Provider:    string(provider),
		Amount:      amount,
		Currency:    currencyCode,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode gateway request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.gatewayURL+"/charges", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build gateway request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.gatewayAPIKey)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		s.logger.Error("payment gateway rejected charge",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", respBody))
		return "", fmt.Errorf("%w: status %d", ErrGatewayUnavailable, resp.StatusCode)
	}

	var chargeResp gatewayChargeResponse
	if err := json.NewDecoder(resp.Body).Decode(&chargeResp); err != nil {
		return "", fmt.Errorf("failed to decode gateway response: %w", err)
	}
	return chargeResp.TransactionID, nil
}

// HandleWebhook processes the gateway's status callback. The raw body is
// signature-checked before the parsed payload is trusted. SUCCESS activates
// the plan; FAILED is terminal for the attempt.
func (s *paymentService) HandleWebhook(ctx context.Context, signature string, body []byte, req models.PaymentWebhookRequest) error {
	if !VerifyWebhookSignature(s.webhookSecret, body, signature) {
		return ErrInvalidSignature
	}

	payment, err := s.paymentRepo.GetByID(ctx, req.PaymentID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrPaymentNotFound, req.PaymentID)
		}
		return fmt.Errorf("failed to load payment %s: %w", req.PaymentID, err)
	}
	if payment.Status != models.PaymentPending {
		return fmt.Errorf("%w: %s is %s", ErrPaymentAlreadyFinal, payment.ID, payment.Status)
	}

	switch req.Status {
	case models.PaymentPending:
		// Gateway heartbeat; nothing to update.
		return nil
	case models.PaymentSuccess:
		// Activate before marking the payment terminal. A transient
		// activation failure leaves the payment PENDING so the gateway's
		// retry can run the whole branch again instead of hitting the
		// terminal-state guard with the plan never granted.
		if _, err := s.subSvc.ActivatePlan(ctx, payment.UserID, payment.PlanID, payment.Amount, payment.Currency); err != nil {
			return fmt.Errorf("plan activation failed for payment %s: %w", payment.ID, err)
		}
		payment.Status = models.PaymentSuccess
		if req.GatewayRef != "" {
			payment.GatewayRef = req.GatewayRef
		}
		if err := s.paymentRepo.Update(ctx, payment); err != nil {
			return fmt.Errorf("failed to mark payment %s as succeeded: %w", payment.ID, err)
		}
		if s.auditSvc != nil {
			auditErr := s.auditSvc.CreateAuditLog(ctx, models.AuditLog{
				UserID:     payment.UserID,
				Action:     models.AuditPaymentCompleted,
				TargetType: "PAYMENT",
				TargetID:   payment.ID,
				Details:    map[string]interface{}{"planId": string(payment.PlanID), "amount": payment.Amount},
			})
			if auditErr != nil {
				s.logger.Warn("failed to write audit log for payment completion", zap.Error(auditErr))
			}
		}
		return nil
	case models.PaymentFailed:
		payment.Status = models.PaymentFailed
		payment.FailureReason = req.Reason
		if err := s.paymentRepo.Update(ctx, payment); err != nil {
			return fmt.Errorf("failed to mark payment %s as failed: %w", payment.ID, err)
		}
		return nil
	default:
		return fmt.Errorf("unrecognized payment status %q", req.Status)
	}
}
