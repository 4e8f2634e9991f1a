package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/nutricart/internal/config"
	"github.com/aaravmahajanofficial/nutricart/internal/models"
	"github.com/aaravmahajanofficial/nutricart/internal/session"
	"github.com/aaravmahajanofficial/nutricart/internal/telemetry"
	"github.com/aaravmahajanofficial/nutricart/pkg/storefront"
	"github.com/aaravmahajanofficial/nutricart/pkg/stripe"
)

var errNotSignedIn = errors.New("You are not signed in. Run `nutricart login` first.")

// inputError is a problem with the command line itself. It is shown as is.
type inputError string

func (e inputError) Error() string { return string(e) }

// App is the storefront state shared by every command of one invocation.
type App struct {
	cfg     *config.ClientConfig
	logger  *slog.Logger
	client  *storefront.Client
	session *session.Session
}

func newApp(cfg *config.ClientConfig, logger *slog.Logger) *App {
	tokens := session.NewTokenStore(cfg.TokenFile)

	client := storefront.New(cfg.BaseURL,
		storefront.WithHTTPClient(&http.Client{
			Timeout:   cfg.RequestTimeout,
			Transport: telemetry.Transport(nil),
		}),
		storefront.WithTokenSource(tokens),
	)

	cart := session.NewCartStore(client, tokens, logger)
	subscription := session.NewSubscriptionStore(client, paymentProcessor(cfg.Payment), cfg.Payment.Currency, logger)

	return &App{
		cfg:     cfg,
		logger:  logger,
		client:  client,
		session: session.New(client, tokens, cart, subscription, logger),
	}
}

func paymentProcessor(p config.Payment) session.PaymentProcessor {
	if p.Provider == config.PaymentProviderStripe {
		return session.NewStripeProcessor(stripe.NewProcessor(p.StripeAPIKey), p.PaymentMethod)
	}

	return session.SimulatedProcessor{Delay: p.SimulatedDelay}
}

// restore resumes the stored session. It returns nil when signed out.
func (a *App) restore(ctx context.Context) (*models.User, error) {
	return a.session.Restore(ctx)
}

// requireUser resumes the stored session and fails when signed out.
func (a *App) requireUser(ctx context.Context) (*models.User, error) {
	user, err := a.restore(ctx)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, errNotSignedIn
	}

	return user, nil
}

// fail turns err into the message shown to the user. The underlying error is
// only logged.
func (a *App) fail(err error) error {
	var input inputError
	if err == nil || errors.Is(err, errNotSignedIn) || errors.As(err, &input) {
		return err
	}

	a.logger.Debug("Command failed", slog.String("error", err.Error()))

	if errors.Is(err, session.ErrNotAuthenticated) {
		return errNotSignedIn
	}

	return errors.New(session.UserMessage(err))
}
