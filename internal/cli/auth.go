package cli

import (
	"fmt"

	"github.com/aaravmahajanofficial/nutricart/internal/models"
	"github.com/spf13/cobra"
)

func loginCmd(app func() *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()

			user, err := a.session.Login(cmd.Context(), email, password)
			if err != nil {
				return a.fail(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Welcome back, %s. You are on the %s plan.\n", user.Name, a.session.Subscription.Current().Tier)

			if n := a.session.Cart.ItemCount(); n > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Your cart has %d item(s).\n", n)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func registerCmd(app func() *App) *cobra.Command {
	var req models.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account on the free plan and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()

			user, err := a.session.Register(cmd.Context(), req)
			if err != nil {
				return a.fail(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Welcome to NutriCart, %s.\n", user.Name)

			return nil
		},
	}

	cmd.Flags().StringVarP(&req.Name, "name", "n", "", "Your name")
	cmd.Flags().StringVarP(&req.Email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "Account password (6 characters or more)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func logoutCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()

			if err := a.session.Logout(); err != nil {
				return a.fail(err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")

			return nil
		},
	}
}

func meCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()

			user, err := a.requireUser(cmd.Context())
			if err != nil {
				return a.fail(err)
			}

			printUser(cmd.OutOrStdout(), user, a.session.Subscription.Current())

			return nil
		},
	}
}

func profileCmd(app func() *App) *cobra.Command {
	var name, phone, address string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Update your name, phone or address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()

			var req models.UpdateProfileRequest
			if cmd.Flags().Changed("name") {
				req.Name = &name
			}
			if cmd.Flags().Changed("phone") {
				req.Phone = &phone
			}
			if cmd.Flags().Changed("address") {
				req.Address = &address
			}

			if req.Name == nil && req.Phone == nil && req.Address == nil {
				return cmd.Usage()
			}

			if _, err := a.requireUser(cmd.Context()); err != nil {
				return a.fail(err)
			}

			user, err := a.session.UpdateProfile(cmd.Context(), req)
			if err != nil {
				return a.fail(err)
			}

			printUser(cmd.OutOrStdout(), user, a.session.Subscription.Current())

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&phone, "phone", "", "New phone number")
	cmd.Flags().StringVar(&address, "address", "", "New delivery address")

	return cmd
}

func passwordCmd(app func() *App) *cobra.Command {
	var current, next string

	cmd := &cobra.Command{
		Use:   "password",
		Short: "Change your password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()

			if _, err := a.requireUser(cmd.Context()); err != nil {
				return a.fail(err)
			}

			if err := a.session.ChangePassword(cmd.Context(), current, next); err != nil {
				return a.fail(err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Password updated.")

			return nil
		},
	}

	cmd.Flags().StringVar(&current, "current", "", "Current password")
	cmd.Flags().StringVar(&next, "new", "", "New password")
	_ = cmd.MarkFlagRequired("current")
	_ = cmd.MarkFlagRequired("new")

	return cmd
}
