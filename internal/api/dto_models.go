package api

import (
	"strconv"

	"goshopper-backend-go/internal/models"
)

// ErrorResponse is a generic structure for returning errors via API.
type ErrorResponse struct {
	Error   string `json:"error"`             // A high-level error message or code
	Details string `json:"details,omitempty"` // More specific details about the error, if available
}

// SuccessResponse is a generic structure for simple success messages.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// SubscriptionStateResponse is the client-facing view of the derived
// subscription state. ScansRemaining is rendered as a string so unlimited
// plans show "∞" instead of a sentinel number.
type SubscriptionStateResponse struct {
	EffectiveStatus     models.SubscriptionStatus `json:"effectiveStatus"`
	PlanID              models.PlanID             `json:"planId"`
	IsTrialActive       bool                      `json:"isTrialActive"`
	TrialDaysRemaining  int                       `json:"trialDaysRemaining"`
	DaysUntilExpiration int                       `json:"daysUntilExpiration"`
	IsExpiringSoon      bool                      `json:"isExpiringSoon"`
	ScansRemaining      string                    `json:"scansRemaining"`
	CanScan             bool                      `json:"canScan"`
}

// NewSubscriptionStateResponse shapes a derived state for the client.
func NewSubscriptionStateResponse(state *models.SubscriptionState) SubscriptionStateResponse {
	scans := strconv.Itoa(state.ScansRemaining)
	if state.ScansUnlimited {
		scans = "∞"
	}
	return SubscriptionStateResponse{
		EffectiveStatus:     state.EffectiveStatus,
		PlanID:              state.PlanID,
		IsTrialActive:       state.IsTrialActive,
		TrialDaysRemaining:  state.TrialDaysRemaining,
		DaysUntilExpiration: state.DaysUntilExpiration,
		IsExpiringSoon:      state.IsExpiringSoon,
		ScansRemaining:      scans,
		CanScan:             state.CanScan,
	}
}
