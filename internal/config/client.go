package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	PaymentProviderSimulated = "simulated"
	PaymentProviderStripe    = "stripe"
)

type Payment struct {
	Provider       string        `yaml:"provider" env:"NUTRICART_PAYMENT_PROVIDER" env-default:"simulated"`
	SimulatedDelay time.Duration `yaml:"simulated_delay" env:"NUTRICART_PAYMENT_DELAY" env-default:"1500ms"`
	StripeAPIKey   string        `yaml:"stripe_api_key" env:"STRIPE_API_KEY"`
	PaymentMethod  string        `yaml:"payment_method" env:"STRIPE_PAYMENT_METHOD" env-default:"pm_card_visa"`
	Currency       string        `yaml:"currency" env-default:"inr"`
}

// ClientConfig configures the nutricart command line storefront.
type ClientConfig struct {
	BaseURL        string        `yaml:"base_url" env:"NUTRICART_API_URL" env-default:"http://localhost:8080/api"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"NUTRICART_TIMEOUT" env-default:"15s"`
	TokenFile      string        `yaml:"token_file" env:"NUTRICART_TOKEN_FILE"`
	Payment        Payment       `yaml:"payment"`
}

// LoadClientConfig reads path when it is set and exists, otherwise only the
// environment and defaults apply.
func LoadClientConfig(path string) (*ClientConfig, error) {
	var cfg ClientConfig

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return nil, fmt.Errorf("can not read client config file: %w", err)
			}

			return cfg.withDefaults()
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("can not read client environment: %w", err)
	}

	return cfg.withDefaults()
}

func (c *ClientConfig) withDefaults() (*ClientConfig, error) {
	if c.TokenFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("locating user config dir: %w", err)
		}

		c.TokenFile = filepath.Join(dir, "nutricart", "storage.yaml")
	}

	switch c.Payment.Provider {
	case PaymentProviderSimulated:
	case PaymentProviderStripe:
		if c.Payment.StripeAPIKey == "" {
			return nil, fmt.Errorf("payment provider %q needs stripe_api_key", c.Payment.Provider)
		}
	default:
		return nil, fmt.Errorf("unknown payment provider %q", c.Payment.Provider)
	}

	return c, nil
}
