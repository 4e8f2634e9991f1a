package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/aaravmahajanofficial/nutricart/internal/models"
	"github.com/aaravmahajanofficial/nutricart/internal/recommend"
	"github.com/spf13/cobra"
)

func recommendCmd(app func() *App) *cobra.Command {
	var (
		profile models.UserProfile
		offline bool
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Take the diet quiz and get plan recommendations",
		Long: `Scores every diet plan against your quiz answers.

Goals: weight-loss, heart-health, muscle-building.
Restrictions: vegetarian, vegan, gluten-free.
Budget: low, medium, high.`,
		Example: "  nutricart recommend --goal weight-loss --restriction vegetarian --budget low",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			ctx := cmd.Context()

			var result *models.RecommendationResult

			if offline {
				plans, err := a.client.ListDietPlans(ctx)
				if err != nil {
					return a.fail(err)
				}

				recipes, err := a.client.ListRecipes(ctx)
				if err != nil {
					return a.fail(err)
				}

				local := recommend.Recommend(profile, plans, recipes)
				result = &local
			} else {
				var err error
				if result, err = a.client.Recommend(ctx, profile); err != nil {
					return a.fail(err)
				}
			}

			printRecommendations(cmd.OutOrStdout(), result)

			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&profile.Age, "age", 0, "Age in years")
	f.StringVar(&profile.Gender, "gender", "", "Gender")
	f.Float64Var(&profile.Weight, "weight", 0, "Weight in kg")
	f.Float64Var(&profile.Height, "height", 0, "Height in cm")
	f.StringVar(&profile.ActivityLevel, "activity", "", "Activity level")
	f.StringSliceVar(&profile.HealthGoals, "goal", nil, "Health goal (repeatable)")
	f.StringSliceVar(&profile.DietaryRestrictions, "restriction", nil, "Dietary restriction (repeatable)")
	f.StringVar(&profile.Budget, "budget", "", "Monthly food budget")
	f.StringVar(&profile.CookingExperience, "cooking", "", "Cooking experience")
	f.BoolVar(&offline, "local", false, "Score plans on this machine instead of the server")

	return cmd
}

func printRecommendations(w io.Writer, result *models.RecommendationResult) {
	fmt.Fprintln(w, "Recommended plans:")

	for i, rec := range result.Plans {
		fmt.Fprintf(w, "\n%d. %s  %d%% match\n", i+1, rec.Plan.Name, rec.Score)
		fmt.Fprintf(w, "   %s\n", rec.Reason)

		if len(rec.Features) > 0 {
			fmt.Fprintf(w, "   %s\n", strings.Join(rec.Features, ", "))
		}
	}

	if len(result.Recipes) == 0 {
		return
	}

	fmt.Fprintln(w, "\nRecipes to try:")

	for _, r := range result.Recipes {
		fmt.Fprintf(w, "  - %s (%d min)\n", r.Title, r.PrepMinutes)
	}
}
