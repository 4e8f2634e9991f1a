// Package stripe charges subscription upgrades through Stripe PaymentIntents.
package stripe

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
)

var ErrPaymentNotCompleted = errors.New("payment not completed")

type Charge struct {
	Amount        decimal.Decimal
	Currency      string
	Description   string
	PaymentMethod string
	ReceiptEmail  string
	Metadata      map[string]string
}

type Processor struct {
	api *client.API
}

func NewProcessor(apiKey string) *Processor {
	api := &client.API{}
	api.Init(apiKey, nil)

	return &Processor{api: api}
}

// NewProcessorWithBackend routes every Stripe call through backend.
func NewProcessorWithBackend(apiKey string, backend stripe.Backend) *Processor {
	api := &client.API{}
	api.Init(apiKey, &stripe.Backends{API: backend, Connect: backend, Uploads: backend})

	return &Processor{api: api}
}

// minorUnits converts a major-unit amount (rupees) into the smallest currency
// unit Stripe expects (paise).
func minorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

// Charge creates and confirms a PaymentIntent in one call and returns its id.
func (p *Processor) Charge(ctx context.Context, c Charge) (string, error) {
	if !c.Amount.IsPositive() {
		return "", fmt.Errorf("charge amount must be positive, got %s", c.Amount)
	}

	params := &stripe.PaymentIntentParams{
		Params:        stripe.Params{Context: ctx},
		Amount:        stripe.Int64(minorUnits(c.Amount)),
		Currency:      stripe.String(c.Currency),
		Description:   stripe.String(c.Description),
		PaymentMethod: stripe.String(c.PaymentMethod),
		Confirm:       stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}

	if c.ReceiptEmail != "" {
		params.ReceiptEmail = stripe.String(c.ReceiptEmail)
	}

	for k, v := range c.Metadata {
		params.AddMetadata(k, v)
	}

	intent, err := p.api.PaymentIntents.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
			return "", fmt.Errorf("stripe declined the payment: %s: %w", stripeErr.Msg, err)
		}

		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}

	switch intent.Status {
	case stripe.PaymentIntentStatusSucceeded, stripe.PaymentIntentStatusProcessing:
		return intent.ID, nil
	default:
		return "", fmt.Errorf("%w: intent %s is %s", ErrPaymentNotCompleted, intent.ID, intent.Status)
	}
}
