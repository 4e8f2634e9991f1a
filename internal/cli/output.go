package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/aaravmahajanofficial/nutricart/internal/access"
	"github.com/aaravmahajanofficial/nutricart/internal/models"
	"github.com/shopspring/decimal"
)

const dateLayout = "02 Jan 2006"

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func rupees(d decimal.Decimal) string {
	return "₹" + d.StringFixed(2)
}

// lockLabel is empty when the content is open to the current plan.
func lockLabel(open bool, tier models.Tier) string {
	if open {
		return ""
	}

	return "locked (" + string(tier) + ")"
}

func printCart(w io.Writer, cart *models.Cart) {
	if cart == nil || len(cart.Items) == 0 {
		fmt.Fprintln(w, "Your cart is empty.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "PRODUCT\tNAME\tQTY\tPRICE\tLINE TOTAL")

	for _, item := range cart.Items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", item.ProductID, item.Name, item.Quantity, rupees(item.UnitPrice), rupees(item.LineTotal))
	}

	tw.Flush()

	fmt.Fprintf(w, "\nItems:     %d\n", cart.ItemCount())
	fmt.Fprintf(w, "Subtotal:  %s\n", rupees(cart.Subtotal))

	if cart.CouponCode != "" {
		fmt.Fprintf(w, "Coupon:    %s (-%s)\n", cart.CouponCode, rupees(cart.Discount))
	}

	fmt.Fprintf(w, "Total:     %s\n", rupees(cart.Total))
}

func printUser(w io.Writer, user *models.User, sub models.Subscription) {
	fmt.Fprintf(w, "Name:   %s\n", user.Name)
	fmt.Fprintf(w, "Email:  %s\n", user.Email)

	if user.Phone != "" {
		fmt.Fprintf(w, "Phone:  %s\n", user.Phone)
	}

	if user.Address != "" {
		fmt.Fprintf(w, "Address: %s\n", user.Address)
	}

	fmt.Fprintf(w, "Plan:   %s\n", planSummary(sub))
}

func planSummary(sub models.Subscription) string {
	var b strings.Builder
	b.WriteString(string(sub.Tier))

	if !sub.IsActive {
		b.WriteString(" (cancelled)")
	}

	if sub.EndDate != nil && sub.Tier != models.TierFree {
		if sub.IsActive {
			b.WriteString(", renews ")
		} else {
			b.WriteString(", ends ")
		}

		b.WriteString(sub.EndDate.Format(dateLayout))
	}

	return b.String()
}

func printSubscription(w io.Writer, sub models.Subscription) {
	fmt.Fprintf(w, "Plan: %s\n", planSummary(sub))

	if sub.StartDate != nil && sub.Tier != models.TierFree {
		fmt.Fprintf(w, "Started: %s\n", sub.StartDate.Format(dateLayout))
	}

	if sub.PaymentReference != "" {
		fmt.Fprintf(w, "Payment: %s\n", sub.PaymentReference)
	}

	fmt.Fprintln(w, "\nFeatures:")

	for _, f := range models.AllFeatures {
		mark := " "
		if access.HasFeature(&sub, f) {
			mark = "x"
		}

		fmt.Fprintf(w, "  [%s] %s\n", mark, f)
	}
}

func printOrder(w io.Writer, order *models.Order) {
	fmt.Fprintf(w, "Order %s (%s)\n", order.ID, order.Status)

	tw := newTable(w)
	for _, item := range order.Items {
		fmt.Fprintf(tw, "  %s\t%d x %s\t%s\n", item.Name, item.Quantity, rupees(item.UnitPrice), rupees(item.LineTotal))
	}

	tw.Flush()

	if order.CouponCode != "" {
		fmt.Fprintf(w, "Coupon %s: -%s\n", order.CouponCode, rupees(order.Discount))
	}

	fmt.Fprintf(w, "Total: %s, paid by %s\n", rupees(order.Total), order.PaymentMethod)
}
