package cli

import (
	"fmt"
	"log/slog"

	"github.com/aaravmahajanofficial/nutricart/internal/models"
	"github.com/spf13/cobra"
)

func checkoutCmd(app func() *App) *cobra.Command {
	var req models.CreateOrderRequest

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for everything in the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			ctx := cmd.Context()

			user, err := a.requireUser(ctx)
			if err != nil {
				return a.fail(err)
			}

			if a.session.Cart.ItemCount() == 0 {
				return inputError("Your cart is empty.")
			}

			order, err := a.client.CreateOrder(ctx, user.ID, req)
			if err != nil {
				return a.fail(err)
			}

			// The backend empties the cart once the order is stored.
			if _, err := a.session.Cart.FetchCart(ctx); err != nil {
				a.logger.Warn("Could not refresh cart after checkout", slog.String("error", err.Error()))
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "Thank you, your order is placed.")
			printOrder(w, order)

			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.ShippingAddress.Street, "street", "", "Street address")
	f.StringVar(&req.ShippingAddress.City, "city", "", "City")
	f.StringVar(&req.ShippingAddress.State, "state", "", "State")
	f.StringVar(&req.ShippingAddress.PostalCode, "postal-code", "", "Postal code")
	f.StringVar(&req.ShippingAddress.Country, "country", "IN", "Two letter country code")
	f.StringVar(&req.PaymentMethod, "payment", "cod", "Payment method: card, upi or cod")

	for _, name := range []string{"street", "city", "state", "postal-code"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func ordersCmd(app func() *App) *cobra.Command {
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List your orders, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()

			user, err := a.requireUser(cmd.Context())
			if err != nil {
				return a.fail(err)
			}

			orders, err := a.client.ListOrders(cmd.Context(), user.ID, page, pageSize)
			if err != nil {
				return a.fail(err)
			}

			w := cmd.OutOrStdout()
			if len(orders.Data) == 0 {
				fmt.Fprintln(w, "No orders yet.")
				return nil
			}

			tw := newTable(w)
			fmt.Fprintln(tw, "ID\tPLACED\tSTATUS\tITEMS\tTOTAL")

			for _, o := range orders.Data {
				items := 0
				for _, item := range o.Items {
					items += item.Quantity
				}

				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", o.ID, o.CreatedAt.Format(dateLayout), o.Status, items, rupees(o.Total))
			}

			tw.Flush()
			fmt.Fprintf(w, "\nPage %d of %d (%d orders)\n", orders.Page, orders.TotalPages, orders.Total)

			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 10, "Orders per page")

	return cmd
}
