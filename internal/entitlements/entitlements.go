// Package entitlements maps subscription plans to the features they unlock.
package entitlements

import (
	"fmt"
	"time"

	"goshopper-backend-go/internal/models"
)

// Feature names gated by plan.
type Feature string

const (
	FeatureReceiptScanning Feature = "receiptScanning"
	FeatureShoppingLists   Feature = "shoppingLists"
	FeatureSpendingStats   Feature = "spendingStats"
	FeaturePriceComparison Feature = "priceComparison"
	FeaturePriceAlerts     Feature = "priceAlerts"
	FeatureDataExport      Feature = "dataExport"
)

// featureMatrix lists the plans that include each feature. Scanning is
// available on every plan (it is metered, not gated).
var featureMatrix = map[Feature][]models.PlanID{
	FeatureReceiptScanning: {models.PlanFreemium, models.PlanBasic, models.PlanStandard, models.PlanPremium},
	FeatureShoppingLists:   {models.PlanBasic, models.PlanStandard, models.PlanPremium},
	FeatureSpendingStats:   {models.PlanBasic, models.PlanStandard, models.PlanPremium},
	FeaturePriceComparison: {models.PlanStandard, models.PlanPremium},
	FeatureDataExport:      {models.PlanStandard, models.PlanPremium},
	FeaturePriceAlerts:     {models.PlanPremium},
}

// planDisplayNames backs upgrade prompts: feature -> minimum plan shown to
// the user. Static lookup data, not computed.
var planDisplayNames = map[models.PlanID]string{
	models.PlanFreemium: "Freemium",
	models.PlanBasic:    "Basic",
	models.PlanStandard: "Standard",
	models.PlanPremium:  "Premium",
}

// FreemiumListLimit caps shopping lists on the freemium plan.
const FreemiumListLimit = 1

// HasAccess reports whether the subscription may use feature at the given
// time. An active trial unlocks every feature regardless of plan. A nil
// subscription, or a trial without an end date, denies access.
func HasAccess(feature Feature, sub *models.Subscription, now time.Time) bool {
	if sub == nil {
		return false
	}
	if sub.Status == models.StatusTrial && sub.TrialEndDate != nil && now.Before(*sub.TrialEndDate) {
		return true
	}
	for _, plan := range featureMatrix[feature] {
		if plan == sub.PlanID {
			return true
		}
	}
	return false
}

// ListGate is the structured verdict for shopping-list creation. Denials
// carry a human-readable reason so callers can show an upgrade prompt.
type ListGate struct {
	CanCreate bool   `json:"canCreate"`
	Reason    string `json:"reason,omitempty"`
}

// CanCreateShoppingList applies the per-plan list cap. Freemium is capped at
// exactly one list; every other plan is unlimited.
func CanCreateShoppingList(sub *models.Subscription, currentCount int) ListGate {
	if sub == nil {
		return ListGate{CanCreate: false, Reason: "no subscription found"}
	}
	if sub.PlanID != models.PlanFreemium {
		return ListGate{CanCreate: true}
	}
	if currentCount >= FreemiumListLimit {
		return ListGate{
			CanCreate: false,
			Reason: fmt.Sprintf("the %s plan is limited to %d shopping list; upgrade to %s for unlimited lists",
				planDisplayNames[models.PlanFreemium], FreemiumListLimit, MinimumPlanFor(FeatureShoppingLists)),
		}
	}
	return ListGate{CanCreate: true}
}

// MinimumPlanFor returns the display name of the cheapest plan that includes
// feature, for upgrade prompts.
func MinimumPlanFor(feature Feature) string {
	order := []models.PlanID{models.PlanFreemium, models.PlanBasic, models.PlanStandard, models.PlanPremium}
	included := make(map[models.PlanID]bool)
	for _, p := range featureMatrix[feature] {
		included[p] = true
	}
	for _, p := range order {
		if included[p] {
			return planDisplayNames[p]
		}
	}
	return planDisplayNames[models.PlanPremium]
}
