package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"forum-client/internal/api"
	"forum-client/internal/render"
	"forum-client/internal/validate"
)

func newSignupCommand(app *App) *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Local pre-checks mirror the backend rules; anything that
			// slips through still comes back as a 422 we surface inline.
			if !validate.IsValidUsername(username) {
				return fmt.Errorf("username must be 3-20 alphanumeric characters")
			}
			if !validate.IsValidEmail(email) {
				return fmt.Errorf("email address is not valid")
			}
			if err := validate.PasswordStrength(password); err != nil {
				return err
			}

			err := app.client.Auth().Signup(app.ctx(cmd), api.SignupRequest{
				Username: username,
				Email:    email,
				Password: password,
			})
			if err != nil {
				if msgs := api.TranslateSignupError(err); len(msgs) > 0 {
					for _, m := range msgs {
						fmt.Fprintln(cmd.OutOrStdout(), m)
					}
					return fmt.Errorf("signup rejected")
				}
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Account created. You can now log in.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&email, "email", "e", "", "email address")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}

func newLoginCommand(app *App) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the access token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := app.ctx(cmd)

			token, err := app.client.Auth().Login(ctx, username, password)
			if err != nil {
				if api.IsStatus(err, 401) {
					return fmt.Errorf("invalid credentials")
				}
				return err
			}

			if err := app.store.SetToken(token); err != nil {
				return fmt.Errorf("failed to store credential: %w", err)
			}

			actor := app.resolver.ResolveActor(ctx)
			if actor.LoggedIn() {
				fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s %s\n", actor.Username, render.RoleTag(actor.Role))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Logged in.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username or email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("password")

	return cmd
}

func newLogoutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored access token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.store.ClearToken(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newWhoamiCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current actor",
		RunE: func(cmd *cobra.Command, _ []string) error {
			actor := app.resolver.ResolveActor(app.ctx(cmd))
			if !actor.LoggedIn() {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in (guest).")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (id %d)\n", actor.Username, render.RoleTag(actor.Role), actor.ID)
			return nil
		},
	}
}
