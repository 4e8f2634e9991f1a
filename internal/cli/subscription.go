package cli

import (
	"fmt"

	"github.com/aaravmahajanofficial/nutricart/internal/access"
	"github.com/aaravmahajanofficial/nutricart/internal/models"
	"github.com/spf13/cobra"
)

func subscriptionCmd(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subscription",
		Aliases: []string{"sub"},
		Short:   "Show your plan and the features it unlocks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()

			if _, err := a.requireUser(cmd.Context()); err != nil {
				return a.fail(err)
			}

			printSubscription(cmd.OutOrStdout(), a.session.Subscription.Current())

			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "pricing",
			Short: "List plans and monthly prices",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "PLAN\tPER MONTH\tFEATURES")

				for _, tier := range []models.Tier{models.TierFree, models.TierPremium, models.TierPro} {
					count := 0
					for _, on := range access.Features(tier) {
						if on {
							count++
						}
					}

					fmt.Fprintf(tw, "%s\t%s\t%d of %d\n", tier, rupees(access.MonthlyPrice(tier)), count, len(models.AllFeatures))
				}

				return tw.Flush()
			},
		},
		&cobra.Command{
			Use:       "upgrade <premium|pro>",
			Short:     "Pay for a month of a higher plan",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{string(models.TierPremium), string(models.TierPro)},
			RunE: func(cmd *cobra.Command, args []string) error {
				a := app()
				ctx := cmd.Context()

				if _, err := a.requireUser(ctx); err != nil {
					return a.fail(err)
				}

				target := models.ParseTier(args[0])
				if target == models.TierPremium || target == models.TierPro {
					fmt.Fprintf(cmd.OutOrStdout(), "Charging %s for one month of %s...\n", rupees(access.MonthlyPrice(target)), target)
				}

				sub, err := a.session.Subscription.Upgrade(ctx, target)
				a.session.Subscription.Wait()

				if err != nil {
					return a.fail(err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "You are now on the %s plan.\n\n", sub.Tier)
				printSubscription(cmd.OutOrStdout(), sub)

				return nil
			},
		},
		&cobra.Command{
			Use:   "cancel",
			Short: "Stop renewing your plan",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				a := app()
				ctx := cmd.Context()

				if _, err := a.requireUser(ctx); err != nil {
					return a.fail(err)
				}

				sub, err := a.session.Subscription.Cancel(ctx)
				a.session.Subscription.Wait()

				if err != nil {
					return a.fail(err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Your %s plan is cancelled and will not renew.\n", sub.Tier)

				return nil
			},
		},
	)

	return cmd
}
