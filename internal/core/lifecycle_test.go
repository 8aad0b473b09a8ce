package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"goshopper-backend-go/internal/models"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestDeriveState_ActiveTrial(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	sub := &models.Subscription{
		Status:          models.StatusTrial,
		PlanID:          models.PlanFreemium,
		TrialStartDate:  timePtr(now.AddDate(0, 0, -4)),
		TrialEndDate:    timePtr(now.AddDate(0, 0, 10)),
		TrialScansUsed:  3,
		TrialScansLimit: TrialScanLimit,
	}

	state := DeriveState(sub, now)

	assert.Equal(t, models.StatusTrial, state.EffectiveStatus)
	assert.True(t, state.IsTrialActive)
	assert.Equal(t, 10, state.TrialDaysRemaining)
	assert.Equal(t, 7, state.ScansRemaining)
	assert.False(t, state.ScansUnlimited)
	assert.True(t, state.CanScan)
}

func TestDeriveState_TrialDaysRoundUp(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	sub := &models.Subscription{
		Status:          models.StatusTrial,
		PlanID:          models.PlanFreemium,
		TrialEndDate:    timePtr(now.Add(36 * time.Hour)),
		TrialScansLimit: TrialScanLimit,
	}

	state := DeriveState(sub, now)

	assert.Equal(t, 2, state.TrialDaysRemaining, "partial day counts as a full day")
}

func TestDeriveState_ExpiredTrial(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	sub := &models.Subscription{
		Status:          models.StatusTrial,
		PlanID:          models.PlanFreemium,
		TrialEndDate:    timePtr(now.AddDate(0, 0, -1)),
		TrialScansLimit: TrialScanLimit,
	}

	state := DeriveState(sub, now)

	assert.Equal(t, models.StatusExpired, state.EffectiveStatus)
	assert.False(t, state.IsTrialActive)
	assert.Equal(t, 0, state.TrialDaysRemaining)
	assert.False(t, state.CanScan)
}

func TestDeriveState_NilTrialEndDateFailsClosed(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	sub := &models.Subscription{
		Status:          models.StatusTrial,
		PlanID:          models.PlanFreemium,
		TrialScansLimit: TrialScanLimit,
	}

	state := DeriveState(sub, now)

	assert.Equal(t, models.StatusExpired, state.EffectiveStatus)
	assert.False(t, state.IsTrialActive)
	assert.Equal(t, 0, state.TrialDaysRemaining)
	assert.False(t, state.CanScan)
}

func TestDeriveState_ActiveSubscription(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	sub := &models.Subscription{
		Status:                models.StatusActive,
		PlanID:                models.PlanBasic,
		SubscriptionStartDate: timePtr(now.AddDate(0, 0, -10)),
		SubscriptionEndDate:   timePtr(now.AddDate(0, 0, 20)),
		MonthlyScansUsed:      5,
	}

	state := DeriveState(sub, now)

	assert.Equal(t, models.StatusActive, state.EffectiveStatus)
	assert.Equal(t, 20, state.DaysUntilExpiration)
	assert.False(t, state.IsExpiringSoon)
	assert.Equal(t, 15, state.ScansRemaining)
	assert.True(t, state.CanScan)
}

func TestDeriveState_ExpiringSoon(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	sub := &models.Subscription{
		Status:              models.StatusActive,
		PlanID:              models.PlanStandard,
		SubscriptionEndDate: timePtr(now.AddDate(0, 0, 3)),
	}

	state := DeriveState(sub, now)

	assert.Equal(t, models.StatusActive, state.EffectiveStatus)
	assert.Equal(t, 3, state.DaysUntilExpiration)
	assert.True(t, state.IsExpiringSoon)
}

func TestDeriveState_GracePeriod(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	sub := &models.Subscription{
		Status:              models.StatusActive,
		PlanID:              models.PlanBasic,
		SubscriptionEndDate: timePtr(now.AddDate(0, 0, -2)),
		MonthlyScansUsed:    0,
	}

	state := DeriveState(sub, now)

	assert.Equal(t, models.StatusGrace, state.EffectiveStatus)
	assert.True(t, state.CanScan, "grace period keeps access")
}

func TestDeriveState_PastGraceExpires(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	sub := &models.Subscription{
		Status:              models.StatusActive,
		PlanID:              models.PlanBasic,
		SubscriptionEndDate: timePtr(now.AddDate(0, 0, -(GracePeriodDays + 1))),
	}

	state := DeriveState(sub, now)

	assert.Equal(t, models.StatusExpired, state.EffectiveStatus)
	assert.False(t, state.CanScan)
}

func TestDeriveState_ExplicitGracePeriodEnd(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	sub := &models.Subscription{
		Status:              models.StatusGrace,
		PlanID:              models.PlanBasic,
		SubscriptionEndDate: timePtr(now.AddDate(0, 0, -5)),
		GracePeriodEnd:      timePtr(now.AddDate(0, 0, 2)),
	}

	state := DeriveState(sub, now)

	assert.Equal(t, models.StatusGrace, state.EffectiveStatus)
}

func TestDeriveState_PremiumUnlimited(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	sub := &models.Subscription{
		Status:              models.StatusActive,
		PlanID:              models.PlanPremium,
		SubscriptionEndDate: timePtr(now.AddDate(0, 1, 0)),
		MonthlyScansUsed:    9000,
	}

	state := DeriveState(sub, now)

	assert.True(t, state.ScansUnlimited)
	assert.Equal(t, models.UnlimitedScans, state.ScansRemaining)
	assert.True(t, state.CanScan)
}

func TestDeriveState_FreemiumLimitReached(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	sub := &models.Subscription{
		Status:           models.StatusFreemium,
		PlanID:           models.PlanFreemium,
		MonthlyScansUsed: 5,
	}

	state := DeriveState(sub, now)

	assert.Equal(t, models.StatusFreemium, state.EffectiveStatus)
	assert.Equal(t, 0, state.ScansRemaining)
	assert.False(t, state.CanScan)
}

func TestDeriveState_CancelledCannotScan(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	sub := &models.Subscription{
		Status: models.StatusCancelled,
		PlanID: models.PlanStandard,
	}

	state := DeriveState(sub, now)

	assert.Equal(t, models.StatusCancelled, state.EffectiveStatus)
	assert.False(t, state.CanScan)
}

func TestDeriveState_OverusedCounterClampsToZero(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	sub := &models.Subscription{
		Status:           models.StatusFreemium,
		PlanID:           models.PlanFreemium,
		MonthlyScansUsed: 12,
	}

	state := DeriveState(sub, now)

	assert.Equal(t, 0, state.ScansRemaining)
}
