package entitlements

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"goshopper-backend-go/internal/models"
)

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func trialSub(end *time.Time) *models.Subscription {
	return &models.Subscription{
		Status:       models.StatusTrial,
		PlanID:       models.PlanFreemium,
		TrialEndDate: end,
	}
}

func TestHasAccessNilSubscription(t *testing.T) {
	for _, f := range []Feature{FeatureReceiptScanning, FeatureShoppingLists, FeaturePriceAlerts} {
		assert.Falsef(t, HasAccess(f, nil, now), "feature %s", f)
	}
}

func TestHasAccessActiveTrialUnlocksEverything(t *testing.T) {
	end := now.Add(48 * time.Hour)
	sub := trialSub(&end)

	for feature := range featureMatrix {
		assert.Truef(t, HasAccess(feature, sub, now), "feature %s should be unlocked during trial", feature)
	}
}

func TestHasAccessExpiredTrialFallsBackToPlan(t *testing.T) {
	end := now.Add(-time.Hour)
	sub := trialSub(&end)

	assert.True(t, HasAccess(FeatureReceiptScanning, sub, now))
	assert.False(t, HasAccess(FeatureShoppingLists, sub, now))
	assert.False(t, HasAccess(FeaturePriceAlerts, sub, now))
}

func TestHasAccessTrialWithoutEndDateFailsClosed(t *testing.T) {
	sub := trialSub(nil)
	assert.False(t, HasAccess(FeaturePriceAlerts, sub, now))
	assert.True(t, HasAccess(FeatureReceiptScanning, sub, now)) // freemium matrix entry still applies
}

func TestHasAccessPlanMatrix(t *testing.T) {
	tests := []struct {
		plan    models.PlanID
		feature Feature
		want    bool
	}{
		{models.PlanFreemium, FeatureShoppingLists, false},
		{models.PlanBasic, FeatureShoppingLists, true},
		{models.PlanBasic, FeaturePriceComparison, false},
		{models.PlanStandard, FeaturePriceComparison, true},
		{models.PlanStandard, FeaturePriceAlerts, false},
		{models.PlanPremium, FeaturePriceAlerts, true},
	}

	for _, tt := range tests {
		sub := &models.Subscription{Status: models.StatusActive, PlanID: tt.plan}
		assert.Equalf(t, tt.want, HasAccess(tt.feature, sub, now), "%s / %s", tt.plan, tt.feature)
	}
}

func TestCanCreateShoppingListFreemiumCap(t *testing.T) {
	sub := &models.Subscription{Status: models.StatusFreemium, PlanID: models.PlanFreemium}

	gate := CanCreateShoppingList(sub, 0)
	assert.True(t, gate.CanCreate)
	assert.Empty(t, gate.Reason)

	gate = CanCreateShoppingList(sub, 1)
	assert.False(t, gate.CanCreate)
	assert.Contains(t, gate.Reason, "Basic")
}

func TestCanCreateShoppingListPaidPlansUnlimited(t *testing.T) {
	for _, plan := range []models.PlanID{models.PlanBasic, models.PlanStandard, models.PlanPremium} {
		sub := &models.Subscription{Status: models.StatusActive, PlanID: plan}
		assert.Truef(t, CanCreateShoppingList(sub, 250).CanCreate, "plan %s", plan)
	}
}

func TestCanCreateShoppingListNilSubscription(t *testing.T) {
	gate := CanCreateShoppingList(nil, 0)
	assert.False(t, gate.CanCreate)
	assert.NotEmpty(t, gate.Reason)
}

func TestMinimumPlanFor(t *testing.T) {
	assert.Equal(t, "Freemium", MinimumPlanFor(FeatureReceiptScanning))
	assert.Equal(t, "Basic", MinimumPlanFor(FeatureShoppingLists))
	assert.Equal(t, "Standard", MinimumPlanFor(FeaturePriceComparison))
	assert.Equal(t, "Premium", MinimumPlanFor(FeaturePriceAlerts))
}
