// Package recommend ranks diet plans and recipes against the answers of the
// compatibility quiz.
//
// Scoring is keyword based: a plan starts at 50 and earns a fixed bonus for
// every profile answer that its name or tags mention. The constants below are
// business rules and must stay as they are.
package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aaravmahajanofficial/nutricart/internal/models"
	"github.com/google/uuid"
)

const (
	BaseScore        = 50
	GoalBonus        = 20
	RestrictionBonus = 15
	BudgetBonus      = 10
	MinScore         = 60
	MaxScore         = 98

	MaxPlans   = 3
	MaxRecipes = 5

	FallbackPlanName = "Balanced Nutrition Plan"
	FallbackScore    = 75
)

type rule struct {
	answer   string
	keywords []string
	bonus    int
	feature  string
}

var goalRules = []rule{
	{answer: "weight-loss", keywords: []string{"weight", "keto"}, bonus: GoalBonus, feature: "Weight loss focused"},
	{answer: "heart-health", keywords: []string{"heart", "mediterranean"}, bonus: GoalBonus, feature: "Heart healthy"},
	{answer: "muscle-building", keywords: []string{"protein", "muscle"}, bonus: GoalBonus, feature: "Muscle building support"},
}

var restrictionRules = []rule{
	{answer: "vegetarian", keywords: []string{"vegetarian"}, bonus: RestrictionBonus, feature: "Vegetarian friendly"},
	{answer: "vegan", keywords: []string{"vegan"}, bonus: RestrictionBonus, feature: "Vegan friendly"},
	{answer: "gluten-free", keywords: []string{"gluten"}, bonus: RestrictionBonus, feature: "Gluten-free"},
}

// Recommend returns at most MaxPlans plans and MaxRecipes recipes for profile.
// Plans below MinScore are dropped; equal scores keep their input order. When
// nothing qualifies a single fallback plan is returned.
func Recommend(profile models.UserProfile, plans []models.DietPlan, recipes []models.Recipe) models.RecommendationResult {
	ranked := make([]models.Recommendation, 0, len(plans))

	for _, plan := range plans {
		score, features := Score(profile, plan)
		if score < MinScore {
			continue
		}

		ranked = append(ranked, models.Recommendation{
			Plan:     plan,
			Score:    score,
			Features: features,
			Reason:   reason(features),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) == 0 {
		ranked = append(ranked, fallback())
	}

	if len(ranked) > MaxPlans {
		ranked = ranked[:MaxPlans]
	}

	compatible := CompatibleRecipes(profile, recipes)
	if len(compatible) > MaxRecipes {
		compatible = compatible[:MaxRecipes]
	}

	return models.RecommendationResult{Plans: ranked, Recipes: compatible}
}

// Score computes the capped compatibility score of plan and the list of
// matched features, in rule order.
func Score(profile models.UserProfile, plan models.DietPlan) (int, []string) {
	haystack := strings.ToLower(plan.Name + " " + strings.Join(plan.SuitableFor, " "))
	score := BaseScore
	features := []string{}

	apply := func(answers []string, rules []rule) {
		for _, r := range rules {
			if !answered(answers, r.answer) || !mentions(haystack, r.keywords) {
				continue
			}
			score += r.bonus
			features = append(features, r.feature)
		}
	}

	apply(profile.HealthGoals, goalRules)
	apply(profile.DietaryRestrictions, restrictionRules)

	budget := strings.ToLower(strings.TrimSpace(profile.Budget))
	switch {
	case strings.HasPrefix(budget, "budget") && plan.Budget == models.BudgetLow:
		score += BudgetBonus
		features = append(features, "Budget friendly")
	case strings.HasPrefix(budget, "premium") && plan.Budget == models.BudgetHigh:
		score += BudgetBonus
		features = append(features, "Premium ingredients")
	}

	return min(score, MaxScore), features
}

// CompatibleRecipes filters out recipes that carry diet tags without the
// vegetarian or vegan tag the profile asks for. Untagged recipes pass.
func CompatibleRecipes(profile models.UserProfile, recipes []models.Recipe) []models.Recipe {
	var required []string
	for _, diet := range []string{"vegetarian", "vegan"} {
		if answered(profile.DietaryRestrictions, diet) {
			required = append(required, diet)
		}
	}

	out := make([]models.Recipe, 0, len(recipes))

	for _, recipe := range recipes {
		if compatible(recipe, required) {
			out = append(out, recipe)
		}
	}

	return out
}

func compatible(recipe models.Recipe, required []string) bool {
	if len(recipe.DietCompatible) == 0 {
		return true
	}

	for _, diet := range required {
		if !answered(recipe.DietCompatible, diet) {
			return false
		}
	}

	return true
}

// normalize folds "Weight Loss", "weight-loss" and "WEIGHT  LOSS" to the same key.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.ReplaceAll(s, "-", " "))), "-")
}

func answered(answers []string, key string) bool {
	for _, a := range answers {
		if normalize(a) == key {
			return true
		}
	}

	return false
}

func mentions(haystack string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(haystack, k) {
			return true
		}
	}

	return false
}

func reason(features []string) string {
	lowered := make([]string, len(features))
	for i, f := range features {
		lowered[i] = strings.ToLower(f)
	}

	return fmt.Sprintf("Recommended because it is %s", strings.Join(lowered, ", "))
}

func fallback() models.Recommendation {
	return models.Recommendation{
		Plan: models.DietPlan{
			ID:          uuid.Nil,
			Name:        FallbackPlanName,
			Description: "A well-rounded plan with balanced macronutrients for everyday health.",
			SuitableFor: []string{"general-health"},
			Budget:      models.BudgetMedium,
			Benefits:    []string{"Sustainable energy", "Balanced macronutrients"},
			ContentTier: models.TierFree,
		},
		Score:    FallbackScore,
		Features: []string{"Balanced nutrition"},
		Reason:   "No plan closely matched your answers, so we suggest a balanced starting point",
	}
}
