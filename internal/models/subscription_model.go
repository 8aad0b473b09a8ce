package models

import "time"

// SubscriptionStatus captures the lifecycle of a subscription.
type SubscriptionStatus string

const (
	StatusTrial        SubscriptionStatus = "trial"
	StatusActive       SubscriptionStatus = "active"
	StatusGrace        SubscriptionStatus = "grace"
	StatusFreemium     SubscriptionStatus = "freemium"
	StatusExpired      SubscriptionStatus = "expired"
	StatusCancelled    SubscriptionStatus = "cancelled"
	StatusPending      SubscriptionStatus = "pending"
	StatusExpiringSoon SubscriptionStatus = "expiring_soon"
)

// PlanID identifies a subscription tier.
type PlanID string

const (
	PlanFreemium PlanID = "freemium"
	PlanBasic    PlanID = "basic"
	PlanStandard PlanID = "standard"
	PlanPremium  PlanID = "premium"
)

// UnlimitedScans is the sentinel scan limit for plans without metering.
const UnlimitedScans = -1

// MonthlyScanLimit returns the scans-per-month allowance for a plan.
// Premium returns UnlimitedScans.
func MonthlyScanLimit(plan PlanID) int {
	switch plan {
	case PlanBasic:
		return 20
	case PlanStandard:
		return 50
	case PlanPremium:
		return UnlimitedScans
	default:
		return 5
	}
}

// MonthlyPriceUSD returns the monthly price of a plan in USD.
func MonthlyPriceUSD(plan PlanID) float64 {
	switch plan {
	case PlanBasic:
		return 1.99
	case PlanStandard:
		return 3.99
	case PlanPremium:
		return 6.99
	default:
		return 0
	}
}

// IsKnownPlan reports whether plan is one of the configured tiers.
func IsKnownPlan(plan PlanID) bool {
	switch plan {
	case PlanFreemium, PlanBasic, PlanStandard, PlanPremium:
		return true
	}
	return false
}

// Subscription is the per-user subscription document. The stored status is a
// snapshot; the effective status is re-derived from the dates on every read
// (see core.DeriveState), so stale documents across app restarts are harmless.
type Subscription struct {
	UserID string             `json:"userId" firestore:"-"` // document ID
	Status SubscriptionStatus `json:"status" firestore:"status"`
	PlanID PlanID             `json:"planId" firestore:"planId"`

	TrialStartDate  *time.Time `json:"trialStartDate,omitempty" firestore:"trialStartDate,omitempty"`
	TrialEndDate    *time.Time `json:"trialEndDate,omitempty" firestore:"trialEndDate,omitempty"`
	TrialScansUsed  int        `json:"trialScansUsed" firestore:"trialScansUsed"`
	TrialScansLimit int        `json:"trialScansLimit" firestore:"trialScansLimit"`

	SubscriptionStartDate *time.Time `json:"subscriptionStartDate,omitempty" firestore:"subscriptionStartDate,omitempty"`
	SubscriptionEndDate   *time.Time `json:"subscriptionEndDate,omitempty" firestore:"subscriptionEndDate,omitempty"`
	GracePeriodEnd        *time.Time `json:"gracePeriodEnd,omitempty" firestore:"gracePeriodEnd,omitempty"`

	MonthlyScansUsed int `json:"monthlyScansUsed" firestore:"monthlyScansUsed"`

	Currency          string     `json:"currency,omitempty" firestore:"currency,omitempty"`
	LastPaymentAmount float64    `json:"lastPaymentAmount,omitempty" firestore:"lastPaymentAmount,omitempty"`
	LastPaymentDate   *time.Time `json:"lastPaymentDate,omitempty" firestore:"lastPaymentDate,omitempty"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

// SubscriptionState is the wall-clock-derived view of a subscription returned
// to clients. ScansRemaining is UnlimitedScans when the plan is unmetered.
type SubscriptionState struct {
	EffectiveStatus     SubscriptionStatus `json:"effectiveStatus"`
	PlanID              PlanID             `json:"planId"`
	IsTrialActive       bool               `json:"isTrialActive"`
	TrialDaysRemaining  int                `json:"trialDaysRemaining"`
	DaysUntilExpiration int                `json:"daysUntilExpiration"`
	IsExpiringSoon      bool               `json:"isExpiringSoon"`
	ScansRemaining      int                `json:"scansRemaining"`
	ScansUnlimited      bool               `json:"scansUnlimited"`
	CanScan             bool               `json:"canScan"`
}
