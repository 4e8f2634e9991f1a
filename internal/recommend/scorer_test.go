package recommend_test

import (
	"testing"

	"github.com/aaravmahajanofficial/nutricart/internal/models"
	"github.com/aaravmahajanofficial/nutricart/internal/recommend"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plan(name string, budget models.BudgetTier, tags ...string) models.DietPlan {
	return models.DietPlan{ID: uuid.New(), Name: name, SuitableFor: tags, Budget: budget}
}

func recipe(title string, diets ...string) models.Recipe {
	return models.Recipe{ID: uuid.New(), Title: title, DietCompatible: diets}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name             string
		profile          models.UserProfile
		plan             models.DietPlan
		expectedScore    int
		expectedFeatures []string
	}{
		{
			name:             "No match stays at base",
			profile:          models.UserProfile{HealthGoals: []string{"Weight Loss"}},
			plan:             plan("Family Comfort Plan", models.BudgetMedium, "family"),
			expectedScore:    recommend.BaseScore,
			expectedFeatures: []string{},
		},
		{
			name:             "Single goal match by name",
			profile:          models.UserProfile{HealthGoals: []string{"Heart Health"}},
			plan:             plan("Mediterranean Classic", models.BudgetMedium),
			expectedScore:    70,
			expectedFeatures: []string{"Heart healthy"},
		},
		{
			name:             "Single goal match by tag, case insensitive",
			profile:          models.UserProfile{HealthGoals: []string{"muscle building"}},
			plan:             plan("Athlete Plan", models.BudgetMedium, "High-Protein"),
			expectedScore:    70,
			expectedFeatures: []string{"Muscle building support"},
		},
		{
			name: "Weight loss keto scenario",
			profile: models.UserProfile{
				HealthGoals:         []string{"Weight Loss"},
				DietaryRestrictions: []string{"Vegetarian"},
				Budget:              "Budget-friendly (₹2000-4000/month)",
			},
			plan:             plan("Keto Weight Loss Plan", models.BudgetLow, "weight-loss"),
			expectedScore:    80,
			expectedFeatures: []string{"Weight loss focused", "Budget friendly"},
		},
		{
			name: "Restrictions add fifteen each",
			profile: models.UserProfile{
				DietaryRestrictions: []string{"Vegan", "Gluten-Free"},
			},
			plan:             plan("Plant Power", models.BudgetMedium, "vegan", "gluten-free"),
			expectedScore:    80,
			expectedFeatures: []string{"Vegan friendly", "Gluten-free"},
		},
		{
			name:             "Premium budget matches high tier plans",
			profile:          models.UserProfile{HealthGoals: []string{"Heart Health"}, Budget: "Premium (₹8000+/month)"},
			plan:             plan("Heart Smart", models.BudgetHigh),
			expectedScore:    80,
			expectedFeatures: []string{"Heart healthy", "Premium ingredients"},
		},
		{
			name:             "Budget answer does not match other plan tiers",
			profile:          models.UserProfile{Budget: "Budget-friendly"},
			plan:             plan("Lean Plan", models.BudgetHigh),
			expectedScore:    recommend.BaseScore,
			expectedFeatures: []string{},
		},
		{
			name: "Score is capped",
			profile: models.UserProfile{
				HealthGoals:         []string{"Weight Loss", "Heart Health", "Muscle Building"},
				DietaryRestrictions: []string{"Vegetarian", "Gluten-Free"},
				Budget:              "Budget-friendly",
			},
			plan:          plan("Keto Heart Protein", models.BudgetLow, "vegetarian", "gluten-free"),
			expectedScore: recommend.MaxScore,
			expectedFeatures: []string{
				"Weight loss focused", "Heart healthy", "Muscle building support",
				"Vegetarian friendly", "Gluten-free", "Budget friendly",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			score, features := recommend.Score(tc.profile, tc.plan)

			assert.Equal(t, tc.expectedScore, score)
			assert.Equal(t, tc.expectedFeatures, features)
		})
	}
}

func TestRecommend(t *testing.T) {
	t.Run("Threshold boundary", func(t *testing.T) {
		profile := models.UserProfile{HealthGoals: []string{"Weight Loss"}}
		included := plan("Keto Start", models.BudgetMedium)
		excluded := plan("Comfort Food", models.BudgetMedium)

		result := recommend.Recommend(profile, []models.DietPlan{excluded, included}, nil)

		require.Len(t, result.Plans, 1)
		assert.Equal(t, included.ID, result.Plans[0].Plan.ID)
		assert.Equal(t, 70, result.Plans[0].Score)
	})

	t.Run("Fallback on empty catalog", func(t *testing.T) {
		result := recommend.Recommend(models.UserProfile{HealthGoals: []string{"Weight Loss"}}, nil, nil)

		require.Len(t, result.Plans, 1)
		assert.Equal(t, recommend.FallbackPlanName, result.Plans[0].Plan.Name)
		assert.Equal(t, recommend.FallbackScore, result.Plans[0].Score)
		assert.Empty(t, result.Recipes)
	})

	t.Run("Fallback when nothing qualifies", func(t *testing.T) {
		plans := []models.DietPlan{plan("Plain", models.BudgetMedium), plan("Simple", models.BudgetLow)}

		result := recommend.Recommend(models.UserProfile{}, plans, nil)

		require.Len(t, result.Plans, 1)
		assert.Equal(t, recommend.FallbackPlanName, result.Plans[0].Plan.Name)
	})

	t.Run("Sorted descending, ties keep input order, top three", func(t *testing.T) {
		profile := models.UserProfile{
			HealthGoals:         []string{"Weight Loss", "Heart Health"},
			DietaryRestrictions: []string{"Vegan"},
		}
		a := plan("Keto A", models.BudgetMedium)             // 70
		b := plan("Keto Heart B", models.BudgetMedium)       // 90
		c := plan("Keto C", models.BudgetMedium)             // 70
		d := plan("Vegan Keto Heart D", models.BudgetMedium) // 98 (105 capped)
		e := plan("Mediterranean E", models.BudgetMedium)    // 70

		result := recommend.Recommend(profile, []models.DietPlan{a, b, c, d, e}, nil)

		require.Len(t, result.Plans, recommend.MaxPlans)
		assert.Equal(t, d.ID, result.Plans[0].Plan.ID)
		assert.Equal(t, 98, result.Plans[0].Score)
		assert.Equal(t, b.ID, result.Plans[1].Plan.ID)
		assert.Equal(t, 90, result.Plans[1].Score)
		assert.Equal(t, a.ID, result.Plans[2].Plan.ID)
	})

	t.Run("Recipes filtered and truncated", func(t *testing.T) {
		profile := models.UserProfile{DietaryRestrictions: []string{"Vegetarian"}}
		recipes := []models.Recipe{
			recipe("Chicken Curry", "keto", "high-protein"),
			recipe("Paneer Tikka", "vegetarian"),
			recipe("Plain Rice"),
			recipe("Dal", "Vegetarian", "vegan"),
			recipe("Egg Salad", "keto"),
			recipe("Veg Pulao", "vegetarian"),
			recipe("Upma"),
			recipe("Poha", "vegetarian"),
		}

		result := recommend.Recommend(profile, nil, recipes)

		require.Len(t, result.Recipes, recommend.MaxRecipes)
		titles := make([]string, 0, len(result.Recipes))
		for _, r := range result.Recipes {
			titles = append(titles, r.Title)
		}
		assert.Equal(t, []string{"Paneer Tikka", "Plain Rice", "Dal", "Veg Pulao", "Upma"}, titles)
	})

	t.Run("Vegan profile requires vegan tag", func(t *testing.T) {
		profile := models.UserProfile{DietaryRestrictions: []string{"vegan"}}
		recipes := []models.Recipe{recipe("Paneer", "vegetarian"), recipe("Tofu Bowl", "vegan"), recipe("Toast")}

		got := recommend.CompatibleRecipes(profile, recipes)

		require.Len(t, got, 2)
		assert.Equal(t, "Tofu Bowl", got[0].Title)
		assert.Equal(t, "Toast", got[1].Title)
	})

	t.Run("No restrictions keeps every recipe", func(t *testing.T) {
		recipes := []models.Recipe{recipe("A", "keto"), recipe("B")}

		assert.Len(t, recommend.CompatibleRecipes(models.UserProfile{}, recipes), 2)
	})

	t.Run("Identical inputs give identical results", func(t *testing.T) {
		profile := models.UserProfile{
			HealthGoals:         []string{"Weight Loss", "Muscle Building"},
			DietaryRestrictions: []string{"Vegetarian"},
			Budget:              "Budget-friendly",
		}
		plans := []models.DietPlan{
			plan("Keto", models.BudgetLow), plan("Protein", models.BudgetHigh),
			plan("Vegetarian Lean", models.BudgetLow, "weight-loss"), plan("Other", models.BudgetMedium),
		}
		recipes := []models.Recipe{recipe("A", "vegetarian"), recipe("B", "keto"), recipe("C")}

		first := recommend.Recommend(profile, plans, recipes)
		second := recommend.Recommend(profile, plans, recipes)

		assert.Equal(t, first, second)
	})
}
