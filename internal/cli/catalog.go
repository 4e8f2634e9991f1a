package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aaravmahajanofficial/nutricart/internal/models"
	"github.com/aaravmahajanofficial/nutricart/pkg/storefront"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// browse loads the subscription used to gate premium content. Browsing
// continues on the free plan when the session cannot be restored.
func (a *App) browse(ctx context.Context) {
	if _, err := a.restore(ctx); err != nil {
		a.logger.Warn("Could not restore session, showing free content only", slog.String("error", err.Error()))
	}
}

func parseID(arg string) (uuid.UUID, error) {
	id, err := uuid.Parse(arg)
	if err != nil {
		return uuid.Nil, inputError(fmt.Sprintf("%q is not a valid ID", arg))
	}

	return id, nil
}

// upgradeHint explains how to unlock content of tier.
func upgradeHint(tier models.Tier) string {
	return fmt.Sprintf("This content needs the %s plan. Run `nutricart subscription upgrade %s` to unlock it.", tier, tier)
}

func productsCmd(app func() *App) *cobra.Command {
	var q storefront.ProductQuery

	cmd := &cobra.Command{
		Use:   "products [id]",
		Short: "List products, or show one product",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			w := cmd.OutOrStdout()

			if len(args) == 1 {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}

				p, err := a.client.GetProduct(cmd.Context(), id)
				if err != nil {
					return a.fail(err)
				}

				fmt.Fprintf(w, "%s\n%s\n\nPrice: %s per %s\nIn stock: %d\n", p.Name, p.Description, rupees(p.Price), p.Unit, p.StockQuantity)

				return nil
			}

			page, err := a.client.ListProducts(cmd.Context(), q)
			if err != nil {
				return a.fail(err)
			}

			tw := newTable(w)
			fmt.Fprintln(tw, "ID\tNAME\tPRICE\tSTOCK")

			for _, p := range page.Data {
				fmt.Fprintf(tw, "%s\t%s\t%s / %s\t%d\n", p.ID, p.Name, rupees(p.Price), p.Unit, p.StockQuantity)
			}

			tw.Flush()
			fmt.Fprintf(w, "\nPage %d of %d (%d products)\n", page.Page, page.TotalPages, page.Total)

			return nil
		},
	}

	cmd.Flags().Int64Var(&q.CategoryID, "category", 0, "Only products in this category")
	cmd.Flags().StringVarP(&q.Search, "search", "q", "", "Search product names")
	cmd.Flags().IntVar(&q.Page, "page", 1, "Page number")
	cmd.Flags().IntVar(&q.PageSize, "page-size", 10, "Products per page")

	return cmd
}

func categoriesCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List product categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()

			categories, err := a.client.ListCategories(cmd.Context())
			if err != nil {
				return a.fail(err)
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION")

			for _, c := range categories {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", c.ID, c.Name, c.Description)
			}

			return tw.Flush()
		},
	}
}

func dietPlansCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:     "diet-plans [id]",
		Aliases: []string{"plans"},
		Short:   "List diet plans, or show one plan",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			w := cmd.OutOrStdout()
			a.browse(cmd.Context())

			if len(args) == 1 {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}

				plan, err := a.client.GetDietPlan(cmd.Context(), id)
				if err != nil {
					return a.fail(err)
				}

				fmt.Fprintf(w, "%s\n%s\n", plan.Name, plan.Description)

				if !a.session.Subscription.CanAccess(plan.ContentTier) {
					fmt.Fprintln(w, "\n"+upgradeHint(plan.ContentTier))
					return nil
				}

				fmt.Fprintf(w, "\nSuitable for: %s\n", strings.Join(plan.SuitableFor, ", "))
				fmt.Fprintf(w, "Benefits: %s\n", strings.Join(plan.Benefits, ", "))
				fmt.Fprintf(w, "Budget: %s, %s per month, %d weeks\n", plan.Budget, rupees(plan.PricePerMonth), plan.DurationWeeks)

				return nil
			}

			plans, err := a.client.ListDietPlans(cmd.Context())
			if err != nil {
				return a.fail(err)
			}

			tw := newTable(w)
			fmt.Fprintln(tw, "ID\tNAME\tBUDGET\tPER MONTH\t")

			for _, p := range plans {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Budget, rupees(p.PricePerMonth),
					lockLabel(a.session.Subscription.CanAccess(p.ContentTier), p.ContentTier))
			}

			return tw.Flush()
		},
	}
}

func recipesCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "recipes [id]",
		Short: "List recipes, or show one recipe",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			w := cmd.OutOrStdout()
			a.browse(cmd.Context())

			if len(args) == 1 {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}

				recipe, err := a.client.GetRecipe(cmd.Context(), id)
				if err != nil {
					return a.fail(err)
				}

				printRecipe(w, recipe, a.session.Subscription.CanAccess(recipe.ContentTier))

				return nil
			}

			recipes, err := a.client.ListRecipes(cmd.Context())
			if err != nil {
				return a.fail(err)
			}

			tw := newTable(w)
			fmt.Fprintln(tw, "ID\tTITLE\tDIETS\tMINUTES\t")

			for _, r := range recipes {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", r.ID, r.Title, strings.Join(r.DietCompatible, ", "), r.PrepMinutes,
					lockLabel(a.session.Subscription.CanAccess(r.ContentTier), r.ContentTier))
			}

			return tw.Flush()
		},
	}
}

func printRecipe(w io.Writer, recipe *models.Recipe, open bool) {
	fmt.Fprintf(w, "%s\n%s\n", recipe.Title, recipe.Description)

	if !open {
		fmt.Fprintln(w, "\n"+upgradeHint(recipe.ContentTier))
		return
	}

	fmt.Fprintf(w, "\nServes %d, ready in %d minutes\n\nIngredients:\n", recipe.Servings, recipe.PrepMinutes)

	for _, ing := range recipe.Ingredients {
		line := "  - " + strings.TrimSpace(ing.Quantity+" "+ing.Name)
		if ing.ProductID != nil {
			line += " (nutricart cart add " + ing.ProductID.String() + ")"
		}

		fmt.Fprintln(w, line)
	}

	if len(recipe.Steps) > 0 {
		fmt.Fprintln(w, "\nSteps:")

		for i, step := range recipe.Steps {
			fmt.Fprintf(w, "  %d. %s\n", i+1, step)
		}
	}
}

func partnershipsCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "partnerships [id]",
		Short: "List partner offers, or show one offer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			w := cmd.OutOrStdout()
			a.browse(cmd.Context())

			if len(args) == 1 {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}

				p, err := a.client.GetPartnership(cmd.Context(), id)
				if err != nil {
					return a.fail(err)
				}

				fmt.Fprintf(w, "%s (%s)\n%s\n", p.Name, p.Kind, p.Description)

				if !a.session.Subscription.CanAccess(p.ContentTier) {
					fmt.Fprintln(w, "\n"+upgradeHint(p.ContentTier))
					return nil
				}

				fmt.Fprintf(w, "\n%d%% off for NutriCart members\n", p.DiscountPercent)
				if p.Website != "" {
					fmt.Fprintln(w, p.Website)
				}

				return nil
			}

			partners, err := a.client.ListPartnerships(cmd.Context())
			if err != nil {
				return a.fail(err)
			}

			tw := newTable(w)
			fmt.Fprintln(tw, "ID\tNAME\tKIND\tDISCOUNT\t")

			for _, p := range partners {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d%%\t%s\n", p.ID, p.Name, p.Kind, p.DiscountPercent,
					lockLabel(a.session.Subscription.CanAccess(p.ContentTier), p.ContentTier))
			}

			return tw.Flush()
		},
	}
}
