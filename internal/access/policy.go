// Package access decides what a subscription tier is entitled to: which
// content it can open and which product features it unlocks.
package access

import (
	"github.com/aaravmahajanofficial/nutricart/internal/models"
	"github.com/shopspring/decimal"
)

// CanAccessContent reports whether sub may open content published at
// contentTier. A nil subscription is treated as free.
func CanAccessContent(sub *models.Subscription, contentTier models.Tier) bool {
	return tierOf(sub).Rank() >= contentTier.Rank()
}

// HasFeature looks feature up in the static tier table. A nil subscription or
// an unknown tier uses the free row.
func HasFeature(sub *models.Subscription, feature models.Feature) bool {
	return row(tierOf(sub))[feature]
}

// Features returns a copy of the feature row for t.
func Features(t models.Tier) models.FeatureMap {
	src := row(t)
	out := make(models.FeatureMap, len(src))
	for k, v := range src {
		out[k] = v
	}

	return out
}

// MonthlyPrice is the list price of a tier in rupees.
func MonthlyPrice(t models.Tier) decimal.Decimal {
	switch t {
	case models.TierPro:
		return proPrice
	case models.TierPremium:
		return premiumPrice
	default:
		return decimal.Zero
	}
}

func tierOf(sub *models.Subscription) models.Tier {
	if sub == nil {
		return models.TierFree
	}

	return sub.Tier
}

func row(t models.Tier) models.FeatureMap {
	switch t {
	case models.TierPro:
		return proFeatures
	case models.TierPremium:
		return premiumFeatures
	default:
		return freeFeatures
	}
}

var (
	premiumPrice = decimal.NewFromInt(499)
	proPrice     = decimal.NewFromInt(999)
)

var freeFeatures = models.FeatureMap{
	models.FeatureBasicDietPlans:       true,
	models.FeatureRecipeLibrary:        true,
	models.FeatureProgressTracking:     false,
	models.FeatureCustomMealPlans:      false,
	models.FeatureExclusiveRecipes:     false,
	models.FeaturePrioritySupport:      false,
	models.FeatureAdvancedAnalytics:    false,
	models.FeatureOneOnOneConsultation: false,
}

var premiumFeatures = models.FeatureMap{
	models.FeatureBasicDietPlans:       true,
	models.FeatureRecipeLibrary:        true,
	models.FeatureProgressTracking:     true,
	models.FeatureCustomMealPlans:      true,
	models.FeatureExclusiveRecipes:     true,
	models.FeaturePrioritySupport:      true,
	models.FeatureAdvancedAnalytics:    false,
	models.FeatureOneOnOneConsultation: false,
}

var proFeatures = models.FeatureMap{
	models.FeatureBasicDietPlans:       true,
	models.FeatureRecipeLibrary:        true,
	models.FeatureProgressTracking:     true,
	models.FeatureCustomMealPlans:      true,
	models.FeatureExclusiveRecipes:     true,
	models.FeaturePrioritySupport:      true,
	models.FeatureAdvancedAnalytics:    true,
	models.FeatureOneOnOneConsultation: true,
}
