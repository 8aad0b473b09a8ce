package core

import (
	"time"

	"goshopper-backend-go/internal/models"
)

// Lifecycle policy constants.
const (
	TrialDurationDays  = 14
	TrialScanLimit     = 10
	GracePeriodDays    = 7
	ExpiringSoonWindow = 7 // days before subscription end
)

// daysUntil returns the number of whole or partial days between now and t,
// rounded up, floored at 0.
func daysUntil(now time.Time, t *time.Time) int {
	if t == nil {
		return 0
	}
	d := t.Sub(now)
	if d <= 0 {
		return 0
	}
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// effectiveStatus re-derives the subscription status from its dates. The
// stored status can be stale (nothing runs a cron over subscription docs), so
// every read passes through here before any gating decision.
func effectiveStatus(sub *models.Subscription, now time.Time) models.SubscriptionStatus {
	switch sub.Status {
	case models.StatusTrial:
		if sub.TrialEndDate == nil || !now.Before(*sub.TrialEndDate) {
			return models.StatusExpired
		}
		return models.StatusTrial
	case models.StatusActive, models.StatusExpiringSoon, models.StatusGrace:
		if sub.SubscriptionEndDate == nil {
			return models.StatusExpired
		}
		if now.Before(*sub.SubscriptionEndDate) {
			return models.StatusActive
		}
		graceEnd := sub.GracePeriodEnd
		if graceEnd == nil {
			g := sub.SubscriptionEndDate.Add(GracePeriodDays * 24 * time.Hour)
			graceEnd = &g
		}
		if now.Before(*graceEnd) {
			return models.StatusGrace
		}
		return models.StatusExpired
	default:
		return sub.Status
	}
}

// DeriveState computes the wall-clock view of a subscription at now. It is a
// pure function; callers pass time.Now() so tests can pin the clock.
func DeriveState(sub *models.Subscription, now time.Time) *models.SubscriptionState {
	state := &models.SubscriptionState{
		EffectiveStatus: effectiveStatus(sub, now),
		PlanID:          sub.PlanID,
	}

	state.IsTrialActive = sub.Status == models.StatusTrial &&
		sub.TrialEndDate != nil && now.Before(*sub.TrialEndDate)
	if state.IsTrialActive {
		state.TrialDaysRemaining = daysUntil(now, sub.TrialEndDate)
	}

	if state.EffectiveStatus == models.StatusActive || state.EffectiveStatus == models.StatusGrace {
		state.DaysUntilExpiration = daysUntil(now, sub.SubscriptionEndDate)
		state.IsExpiringSoon = state.DaysUntilExpiration > 0 &&
			state.DaysUntilExpiration <= ExpiringSoonWindow
	}

	if state.IsTrialActive {
		remaining := sub.TrialScansLimit - sub.TrialScansUsed
		if remaining < 0 {
			remaining = 0
		}
		state.ScansRemaining = remaining
	} else {
		limit := models.MonthlyScanLimit(sub.PlanID)
		if limit == models.UnlimitedScans {
			state.ScansUnlimited = true
			state.ScansRemaining = models.UnlimitedScans
		} else {
			remaining := limit - sub.MonthlyScansUsed
			if remaining < 0 {
				remaining = 0
			}
			state.ScansRemaining = remaining
		}
	}

	switch state.EffectiveStatus {
	case models.StatusExpired, models.StatusCancelled:
		state.CanScan = false
	default:
		state.CanScan = state.ScansUnlimited || state.ScansRemaining > 0
	}

	return state
}
