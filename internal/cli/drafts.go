package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"forum-client/internal/validate"
)

func newDraftsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drafts",
		Short: "Locally saved posts not yet published",
	}

	cmd.AddCommand(newDraftsSaveCommand(app))
	cmd.AddCommand(newDraftsListCommand(app))
	cmd.AddCommand(newDraftsShowCommand(app))
	cmd.AddCommand(newDraftsRemoveCommand(app))
	cmd.AddCommand(newDraftsPublishCommand(app))

	return cmd
}

func newDraftsSaveCommand(app *App) *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save a post draft locally",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if ok, msg := validate.PostData(title, content); !ok {
				return fmt.Errorf("%s", msg)
			}

			id, err := app.store.SaveDraft(title, content)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Draft saved as %s.\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "draft title")
	cmd.Flags().StringVarP(&content, "content", "c", "", "draft content")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("content")

	return cmd
}

func newDraftsListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved drafts, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			drafts, err := app.store.ListDrafts()
			if err != nil {
				return err
			}
			if len(drafts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No drafts.")
				return nil
			}
			for _, d := range drafts {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n",
					d.ID, d.CreatedAt.Format("2006-01-02 15:04"), d.Title)
			}
			return nil
		},
	}
}

func newDraftsShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <draft-id>",
		Short: "Show one draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := app.store.GetDraft(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n%s\n", draft.Title, draft.Content)
			return nil
		},
	}
}

func newDraftsRemoveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <draft-id>",
		Short: "Delete a draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.store.DeleteDraft(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Draft removed.")
			return nil
		},
	}
}

func newDraftsPublishCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "publish <draft-id>",
		Short: "Publish a draft as a new post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := app.ctx(cmd)

			draft, err := app.store.GetDraft(args[0])
			if err != nil {
				return err
			}

			postID, err := app.client.Posts().Create(ctx, draft.Title, draft.Content)
			if err != nil {
				return err
			}

			if err := app.store.DeleteDraft(draft.ID); err != nil {
				app.log.Warn("published draft could not be removed", "draft", draft.ID, "error", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created post %d from draft.\n", postID)
			return nil
		},
	}
}
