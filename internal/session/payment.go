package session

import (
	"context"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/nutricart/internal/models"
	"github.com/aaravmahajanofficial/nutricart/pkg/stripe"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentRequest struct {
	UserID   uuid.UUID
	Email    string
	Tier     models.Tier
	Amount   decimal.Decimal
	Currency string
}

// PaymentProcessor charges a subscription upgrade and returns the payment
// reference.
type PaymentProcessor interface {
	Charge(ctx context.Context, req PaymentRequest) (string, error)
}

// SimulatedProcessor approves every charge after Delay.
type SimulatedProcessor struct {
	Delay time.Duration
}

func (p SimulatedProcessor) Charge(ctx context.Context, req PaymentRequest) (string, error) {
	timer := time.NewTimer(p.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-timer.C:
	}

	return "PAY-" + uuid.NewString(), nil
}

// Charger is implemented by *stripe.Processor.
type Charger interface {
	Charge(ctx context.Context, c stripe.Charge) (string, error)
}

// StripeProcessor charges through Stripe PaymentIntents using a saved payment
// method.
type StripeProcessor struct {
	charger       Charger
	paymentMethod string
}

func NewStripeProcessor(charger Charger, paymentMethod string) *StripeProcessor {
	return &StripeProcessor{charger: charger, paymentMethod: paymentMethod}
}

func (p *StripeProcessor) Charge(ctx context.Context, req PaymentRequest) (string, error) {
	ref, err := p.charger.Charge(ctx, stripe.Charge{
		Amount:        req.Amount,
		Currency:      req.Currency,
		Description:   fmt.Sprintf("NutriCart %s subscription", req.Tier),
		PaymentMethod: p.paymentMethod,
		ReceiptEmail:  req.Email,
		Metadata: map[string]string{
			"tier":    string(req.Tier),
			"user_id": req.UserID.String(),
		},
	})
	if err != nil {
		return "", &PaymentError{Message: "Your payment could not be completed.", Err: err}
	}

	return ref, nil
}
