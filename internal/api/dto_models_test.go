package api

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"goshopper-backend-go/internal/models"
)

func TestNewSubscriptionStateResponse_Metered(t *testing.T) {
	state := &models.SubscriptionState{
		EffectiveStatus: models.StatusActive,
		PlanID:          models.PlanBasic,
		ScansRemaining:  13,
		CanScan:         true,
	}

	resp := NewSubscriptionStateResponse(state)

	assert.Equal(t, "13", resp.ScansRemaining)
	assert.True(t, resp.CanScan)
}

func TestNewSubscriptionStateResponse_Unlimited(t *testing.T) {
	state := &models.SubscriptionState{
		EffectiveStatus: models.StatusActive,
		PlanID:          models.PlanPremium,
		ScansRemaining:  models.UnlimitedScans,
		ScansUnlimited:  true,
		CanScan:         true,
	}

	resp := NewSubscriptionStateResponse(state)

	assert.Equal(t, "∞", resp.ScansRemaining)
}
