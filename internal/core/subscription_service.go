package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"goshopper-backend-go/internal/db"
	"goshopper-backend-go/internal/models"
)

// Sentinel errors surfaced to the API layer.
var (
	ErrScanLimitReached     = errors.New("monthly scan limit reached")
	ErrSubscriptionInactive = errors.New("subscription is not active")
	ErrUnknownPlan          = errors.New("unknown subscription plan")
)

// subscriptionService implements the SubscriptionService interface.
type subscriptionService struct {
	subRepo  db.SubscriptionRepository
	auditSvc AuditService
	logger   *zap.Logger
	now      func() time.Time
}

// NewSubscriptionService creates a new SubscriptionService instance.
func NewSubscriptionService(subRepo db.SubscriptionRepository, auditSvc AuditService, logger *zap.Logger) SubscriptionService {
	return &subscriptionService{
		subRepo:  subRepo,
		auditSvc: auditSvc,
		logger:   logger,
		now:      time.Now,
	}
}

// GetOrCreate returns the user's subscription document, provisioning the
// trial defaults on first access.
func (s *subscriptionService) GetOrCreate(ctx context.Context, userID string) (*models.Subscription, error) {
	sub, err := s.subRepo.GetByUserID(ctx, userID)
	if err == nil {
		return sub, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("failed to get subscription for %s: %w", userID, err)
	}

	now := s.now().UTC()
	trialEnd := now.Add(TrialDurationDays * 24 * time.Hour)
	sub = &models.Subscription{
		UserID:          userID,
		Status:          models.StatusTrial,
		PlanID:          models.PlanFreemium,
		TrialStartDate:  &now,
		TrialEndDate:    &trialEnd,
		TrialScansLimit: TrialScanLimit,
		Currency:        "USD",
	}
	if createErr := s.subRepo.Create(ctx, sub); createErr != nil {
		return nil, fmt.Errorf("failed to create trial subscription for %s: %w", userID, createErr)
	}
	s.logger.Info("provisioned trial subscription",
		zap.String("userId", userID),
		zap.Time("trialEndDate", trialEnd))
	return sub, nil
}

// GetState returns the subscription document together with its derived state.
func (s *subscriptionService) GetState(ctx context.Context, userID string) (*models.Subscription, *models.SubscriptionState, error) {
	sub, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return sub, DeriveState(sub, s.now().UTC()), nil
}

// RecordScan meters one receipt scan against the applicable counter. It
// rejects with ErrSubscriptionInactive when the subscription is expired or
// cancelled, and with ErrScanLimitReached when the allowance is used up.
func (s *subscriptionService) RecordScan(ctx context.Context, userID string) (*models.SubscriptionState, error) {
	sub, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	state := DeriveState(sub, now)
	if !state.CanScan {
		switch state.EffectiveStatus {
		case models.StatusExpired, models.StatusCancelled:
			return state, ErrSubscriptionInactive
		default:
			return state, ErrScanLimitReached
		}
	}

	if state.IsTrialActive {
		sub.TrialScansUsed++
	} else {
		sub.MonthlyScansUsed++
	}
	if err := s.subRepo.Update(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to record scan for %s: %w", userID, err)
	}

	return DeriveState(sub, now), nil
}

// ActivatePlan switches the user to a paid plan after a successful payment.
// The subscription period is one month from activation, the monthly counter
// resets, and the payment amount and date are recorded on the document.
func (s *subscriptionService) ActivatePlan(ctx context.Context, userID string, planID models.PlanID, amount float64, currency string) (*models.Subscription, error) {
	if !models.IsKnownPlan(planID) || planID == models.PlanFreemium {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlan, planID)
	}

	sub, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	end := now.AddDate(0, 1, 0)
	graceEnd := end.Add(GracePeriodDays * 24 * time.Hour)

	sub.Status = models.StatusActive
	sub.PlanID = planID
	sub.SubscriptionStartDate = &now
	sub.SubscriptionEndDate = &end
	sub.GracePeriodEnd = &graceEnd
	sub.MonthlyScansUsed = 0
	sub.Currency = currency
	sub.LastPaymentAmount = amount
	sub.LastPaymentDate = &now

	if err := s.subRepo.Update(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to activate plan %s for %s: %w", planID, userID, err)
	}

	s.logger.Info("activated subscription plan",
		zap.String("userId", userID),
		zap.String("planId", string(planID)),
		zap.Time("subscriptionEndDate", end))

	if s.auditSvc != nil {
		auditErr := s.auditSvc.CreateAuditLog(ctx, models.AuditLog{
			UserID:     userID,
			Action:     models.AuditPlanActivated,
			TargetType: "SUBSCRIPTION",
			TargetID:   userID,
			Details:    map[string]interface{}{"planId": string(planID), "amount": amount, "currency": currency},
		})
		if auditErr != nil {
			s.logger.Warn("failed to write audit log for plan activation", zap.Error(auditErr))
		}
	}

	return sub, nil
}
