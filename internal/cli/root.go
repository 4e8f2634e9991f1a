// Package cli implements the nutricart command line storefront.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aaravmahajanofficial/nutricart/internal/config"
	"github.com/spf13/cobra"
)

const (
	Version = "0.1.0"
	appName = "nutricart"
)

func NewRootCmd() *cobra.Command {
	var (
		configPath string
		verbose    bool
		app        *App
	)

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Shop groceries and diet plans from the terminal",
		Long: `nutricart is a command line client for the NutriCart storefront.

Browse products, diet plans and recipes, keep a cart, check out and manage
your subscription. Your sign-in is remembered between runs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}

			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			cfg, err := config.LoadClientConfig(configPath)
			if err != nil {
				return err
			}

			logger.Debug("Loaded client config", slog.String("baseUrl", cfg.BaseURL), slog.String("payments", cfg.Payment.Provider))

			app = newApp(cfg, logger)

			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("NUTRICART_CONFIG"), "Client config file (YAML)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log requests and state changes to stderr")

	current := func() *App { return app }

	cmd.AddCommand(
		loginCmd(current),
		registerCmd(current),
		logoutCmd(current),
		meCmd(current),
		profileCmd(current),
		passwordCmd(current),
		productsCmd(current),
		categoriesCmd(current),
		dietPlansCmd(current),
		recipesCmd(current),
		partnershipsCmd(current),
		recommendCmd(current),
		cartCmd(current),
		checkoutCmd(current),
		ordersCmd(current),
		subscriptionCmd(current),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
			},
		},
	)

	return cmd
}
