package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"forum-client/internal/api"
	"forum-client/internal/models"
	"forum-client/internal/render"
	"forum-client/internal/validate"
)

func newChatsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chats",
		Short: "Direct chats with other users",
	}

	cmd.AddCommand(newChatsListCommand(app))
	cmd.AddCommand(newChatsViewCommand(app))
	cmd.AddCommand(newChatsCreateCommand(app))
	cmd.AddCommand(newChatsSendCommand(app))

	return cmd
}

func newChatsListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your chats",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := app.ctx(cmd)

			if !app.resolver.ResolveActor(ctx).LoggedIn() {
				return fmt.Errorf("log in to use chats")
			}

			chats, err := app.client.Users().MyChats(ctx)
			if err != nil {
				return err
			}
			if len(chats) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No chats yet. Start one with: forum chats create <username>")
				return nil
			}
			for _, chat := range chats {
				fmt.Fprintf(cmd.OutOrStdout(), "#%-4d %s\n", chat.ID, chat.OtherUsername)
			}
			return nil
		},
	}
}

func newChatsViewCommand(app *App) *cobra.Command {
	var watch bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "view <chat-id>",
		Short: "Show a chat's messages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := app.ctx(cmd)
			out := cmd.OutOrStdout()

			chatID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid chat id %q", args[0])
			}

			actor := app.resolver.ResolveActor(ctx)
			if !actor.LoggedIn() {
				return fmt.Errorf("log in to use chats")
			}

			chat, err := app.client.Chats().Get(ctx, chatID)
			if err != nil {
				return err
			}

			names := map[int]string{actor.ID: actor.Username}
			partnerID := chat.Partner(actor.ID)
			if partner, err := app.resolver.UserDetails(ctx, partnerID); err == nil {
				names[partnerID] = partner.Username
			}

			printMessages := func(msgs []models.Message) {
				for _, m := range msgs {
					name := names[m.SentBy]
					if name == "" {
						name = fmt.Sprintf("user %d", m.SentBy)
					}
					fmt.Fprintln(out, render.Message(m, name))
				}
			}

			msgs, err := app.client.Chats().Messages(ctx, chatID)
			if err != nil {
				return err
			}
			printMessages(msgs)

			if !watch {
				return nil
			}

			// Poll for new messages until interrupted.
			seen := len(msgs)
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-ticker.C:
				}

				msgs, err := app.client.Chats().Messages(ctx, chatID)
				if err != nil {
					app.log.Warn("chat poll failed", "chat_id", chatID, "error", err)
					continue
				}
				if len(msgs) > seen {
					printMessages(msgs[seen:])
					seen = len(msgs)
				}
			}
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep polling for new messages")
	cmd.Flags().DurationVar(&interval, "interval", 3*time.Second, "poll interval with --watch")

	return cmd
}

func newChatsCreateCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "create <username>",
		Short: "Start a chat with another user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := app.ctx(cmd)

			if !app.resolver.ResolveActor(ctx).LoggedIn() {
				return fmt.Errorf("log in to use chats")
			}

			partner, err := app.client.Users().ByName(ctx, args[0])
			if err != nil {
				if api.IsStatus(err, 404) {
					fmt.Fprintln(cmd.OutOrStdout(), "User not found")
					return fmt.Errorf("no such user %q", args[0])
				}
				return err
			}

			if err := app.client.Chats().Create(ctx, partner.ID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Chat with %s opened. See it with: forum chats list\n", partner.Username)
			return nil
		},
	}
}

func newChatsSendCommand(app *App) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "send <chat-id>",
		Short: "Send a message in a chat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := app.ctx(cmd)

			chatID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid chat id %q", args[0])
			}

			actor := app.resolver.ResolveActor(ctx)
			if !actor.LoggedIn() {
				return fmt.Errorf("log in to use chats")
			}

			if ok, msg := validate.MessageData(message); !ok {
				return fmt.Errorf("%s", msg)
			}

			if err := app.client.Chats().Send(ctx, chatID, actor.ID, message); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Sent.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "message text")
	cmd.MarkFlagRequired("message")

	return cmd
}
