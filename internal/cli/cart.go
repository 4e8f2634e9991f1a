package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aaravmahajanofficial/nutricart/internal/models"
	"github.com/spf13/cobra"
)

// cartRun wraps a cart operation and prints the cart it returns.
func cartRun(app func() *App, run func(ctx context.Context, a *App, args []string) (*models.Cart, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a := app()

		cart, err := run(cmd.Context(), a, args)
		if err != nil {
			return a.fail(err)
		}

		printCart(cmd.OutOrStdout(), cart)

		return nil
	}
}

func parseQuantity(arg string) (int, error) {
	qty, err := strconv.Atoi(arg)
	if err != nil {
		return 0, inputError(fmt.Sprintf("%q is not a quantity", arg))
	}

	return qty, nil
}

// setQuantity removes the line when qty is zero or below.
func (a *App) setQuantity(ctx context.Context, arg, rawQty string) (*models.Cart, error) {
	id, err := parseID(arg)
	if err != nil {
		return nil, err
	}

	qty, err := parseQuantity(rawQty)
	if err != nil {
		return nil, err
	}

	if qty <= 0 {
		return a.session.Cart.RemoveFromCart(ctx, id)
	}

	return a.session.Cart.UpdateCartItem(ctx, id, qty)
}

func cartCmd(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show and change your cart",
		Args:  cobra.NoArgs,
		RunE: cartRun(app, func(ctx context.Context, a *App, _ []string) (*models.Cart, error) {
			if _, err := a.requireUser(ctx); err != nil {
				return nil, err
			}

			return a.session.Cart.Cart(), nil
		}),
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <product-id> [quantity]",
			Short: "Add a product, 1 unit unless a quantity is given",
			Args:  cobra.RangeArgs(1, 2),
			RunE: cartRun(app, func(ctx context.Context, a *App, args []string) (*models.Cart, error) {
				id, err := parseID(args[0])
				if err != nil {
					return nil, err
				}

				qty := 1
				if len(args) == 2 {
					if qty, err = parseQuantity(args[1]); err != nil {
						return nil, err
					}
				}

				return a.session.Cart.AddToCart(ctx, id, qty)
			}),
		},
		setCmd(app),
		&cobra.Command{
			Use:   "remove <product-id>",
			Short: "Remove a product",
			Args:  cobra.ExactArgs(1),
			RunE: cartRun(app, func(ctx context.Context, a *App, args []string) (*models.Cart, error) {
				id, err := parseID(args[0])
				if err != nil {
					return nil, err
				}

				return a.session.Cart.RemoveFromCart(ctx, id)
			}),
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Empty the cart",
			Args:  cobra.NoArgs,
			RunE: cartRun(app, func(ctx context.Context, a *App, _ []string) (*models.Cart, error) {
				return a.session.Cart.ClearCart(ctx)
			}),
		},
		couponCmd(app),
	)

	return cmd
}

func setCmd(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <product-id> <quantity>",
		Short: "Set the quantity of a line; 0 or below removes it",
		Args:  cobra.ExactArgs(2),
		RunE: cartRun(app, func(ctx context.Context, a *App, args []string) (*models.Cart, error) {
			return a.setQuantity(ctx, args[0], args[1])
		}),
	}

	// a negative quantity after the product id is an argument, not a flag
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func couponCmd(app func() *App) *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "coupon [code]",
		Short: "Apply a coupon code, or drop it with --remove",
		Args:  cobra.MaximumNArgs(1),
		RunE: cartRun(app, func(ctx context.Context, a *App, args []string) (*models.Cart, error) {
			if remove {
				return a.session.Cart.RemoveCoupon(ctx)
			}

			if len(args) == 0 {
				return nil, inputError("Give a coupon code, or --remove to drop the applied one.")
			}

			return a.session.Cart.ApplyCoupon(ctx, args[0])
		}),
	}

	cmd.Flags().BoolVar(&remove, "remove", false, "Remove the applied coupon")

	return cmd
}
