package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"forum-client/internal/models"
	"forum-client/internal/permissions"
	"forum-client/internal/render"
)

func newModCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mod",
		Short: "User management (ban, promote, demote)",
	}

	cmd.AddCommand(newModBanCommand(app))
	cmd.AddCommand(newModPromoteCommand(app))
	cmd.AddCommand(newModDemoteCommand(app))

	return cmd
}

// requireUserAction resolves the target user and checks the capability
// gate, so a denied action fails locally before any request is made.
func (a *App) requireUserAction(ctx context.Context, action permissions.Action, username string) (models.User, error) {
	target, err := a.client.Users().ByName(ctx, username)
	if err != nil {
		return models.User{}, err
	}

	actor := a.resolver.ResolveActor(ctx)
	actions := permissions.UserActions(actor.Role, target.Role)
	if !actions.Has(action) {
		return models.User{}, fmt.Errorf("your role (%s) does not permit %s on %s %s",
			actor.Role, action, target.Username, render.RoleTag(target.Role))
	}
	return *target, nil
}

func newModBanCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ban <username>",
		Short: "Ban a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := app.ctx(cmd)

			target, err := app.requireUserAction(ctx, permissions.ActionBan, args[0])
			if err != nil {
				return err
			}

			if err := app.client.Moderation().Ban(ctx, target.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Banned %s.\n", target.Username)
			return nil
		},
	}
}

func newModPromoteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "promote <username> <mod|admin>",
		Short: "Promote a user to moderator or administrator",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := app.ctx(cmd)

			var action permissions.Action
			switch args[1] {
			case "mod":
				action = permissions.ActionPromoteToMod
			case "admin":
				action = permissions.ActionPromoteToAdmin
			default:
				return fmt.Errorf("role must be mod or admin, got %q", args[1])
			}

			target, err := app.requireUserAction(ctx, action, args[0])
			if err != nil {
				return err
			}

			if err := app.client.Moderation().Promote(ctx, target.ID, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Promoted %s to %s.\n", target.Username, args[1])
			return nil
		},
	}
}

func newModDemoteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "demote <username> <mod|admin>",
		Short: "Demote a moderator or administrator",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := app.ctx(cmd)

			var action permissions.Action
			switch args[1] {
			case "mod":
				action = permissions.ActionDemoteMod
			case "admin":
				action = permissions.ActionDemoteAdmin
			default:
				return fmt.Errorf("role must be mod or admin, got %q", args[1])
			}

			target, err := app.requireUserAction(ctx, action, args[0])
			if err != nil {
				return err
			}

			if err := app.client.Moderation().Demote(ctx, target.ID, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Demoted %s from %s.\n", target.Username, args[1])
			return nil
		},
	}
}
