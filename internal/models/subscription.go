package models

import (
	"strings"
	"time"
)

// Tier is a subscription level. Tiers are totally ordered: free < premium < pro.
type Tier string

const (
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
	TierPro     Tier = "pro"
)

// ParseTier maps user or wire text onto a Tier. Anything unrecognised is free.
func ParseTier(s string) Tier {
	switch Tier(strings.ToLower(strings.TrimSpace(s))) {
	case TierPremium:
		return TierPremium
	case TierPro:
		return TierPro
	default:
		return TierFree
	}
}

// Rank returns the position of the tier in the entitlement order.
func (t Tier) Rank() int {
	switch t {
	case TierPro:
		return 2
	case TierPremium:
		return 1
	default:
		return 0
	}
}

func (t Tier) Valid() bool {
	return t == TierFree || t == TierPremium || t == TierPro
}

func (t *Tier) UnmarshalText(text []byte) error {
	*t = ParseTier(string(text))
	return nil
}

type Feature string

const (
	FeatureBasicDietPlans       Feature = "basicDietPlans"
	FeatureRecipeLibrary        Feature = "recipeLibrary"
	FeatureProgressTracking     Feature = "progressTracking"
	FeatureCustomMealPlans      Feature = "customMealPlans"
	FeatureExclusiveRecipes     Feature = "exclusiveRecipes"
	FeaturePrioritySupport      Feature = "prioritySupport"
	FeatureAdvancedAnalytics    Feature = "advancedAnalytics"
	FeatureOneOnOneConsultation Feature = "oneOnOneConsultation"
)

// AllFeatures is the closed set of feature names. Every tier row covers all of them.
var AllFeatures = []Feature{
	FeatureBasicDietPlans,
	FeatureRecipeLibrary,
	FeatureProgressTracking,
	FeatureCustomMealPlans,
	FeatureExclusiveRecipes,
	FeaturePrioritySupport,
	FeatureAdvancedAnalytics,
	FeatureOneOnOneConsultation,
}

type FeatureMap map[Feature]bool

type Subscription struct {
	Tier             Tier       `json:"tier"`
	StartDate        *time.Time `json:"start_date,omitempty"`
	EndDate          *time.Time `json:"end_date,omitempty"`
	IsActive         bool       `json:"is_active"`
	Features         FeatureMap `json:"features"`
	PaymentReference string     `json:"payment_reference,omitempty"`
}

type UpdateSubscriptionRequest struct {
	Tier             Tier       `json:"tier" validate:"required"`
	StartDate        *time.Time `json:"start_date"`
	EndDate          *time.Time `json:"end_date"`
	IsActive         bool       `json:"is_active"`
	PaymentReference string     `json:"payment_reference" validate:"omitempty,max=128"`
}
