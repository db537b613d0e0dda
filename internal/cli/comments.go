package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"forum-client/internal/editor"
	"forum-client/internal/models"
	"forum-client/internal/permissions"
	"forum-client/internal/validate"
)

func newCommentsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comments",
		Short: "Add and manage comments on posts",
	}

	cmd.AddCommand(newCommentsAddCommand(app))
	cmd.AddCommand(newCommentsEditCommand(app))
	cmd.AddCommand(newCommentsDeleteCommand(app))

	return cmd
}

func newCommentsAddCommand(app *App) *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "add <post-id>",
		Short: "Comment on a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := app.ctx(cmd)

			postID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid post id %q", args[0])
			}

			actor := app.resolver.ResolveActor(ctx)
			if !permissions.CanCreateContent(actor.Role) {
				return fmt.Errorf("your role (%s) does not permit commenting", actor.Role)
			}

			if ok, msg := validate.CommentData(content); !ok {
				return fmt.Errorf("%s", msg)
			}

			if err := app.client.Comments().Create(ctx, postID, content); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Comment added to post %d.\n", postID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&content, "content", "c", "", "comment text")
	cmd.MarkFlagRequired("content")

	return cmd
}

// findComment locates one comment on a post. There is no single-comment
// endpoint, so the whole comment list is read.
func (a *App) findComment(cmd *cobra.Command, postArg, commentArg string) (*models.Comment, error) {
	ctx := a.ctx(cmd)

	postID, err := strconv.Atoi(postArg)
	if err != nil {
		return nil, fmt.Errorf("invalid post id %q", postArg)
	}
	commentID, err := strconv.Atoi(commentArg)
	if err != nil {
		return nil, fmt.Errorf("invalid comment id %q", commentArg)
	}

	comments, err := a.client.Comments().OfPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	for i := range comments {
		if comments[i].ID == commentID {
			return &comments[i], nil
		}
	}
	return nil, fmt.Errorf("comment %d not found on post %d", commentID, postID)
}

func newCommentsEditCommand(app *App) *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "edit <post-id> <comment-id>",
		Short: "Replace the content of a comment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := app.ctx(cmd)

			comment, err := app.findComment(cmd, args[0], args[1])
			if err != nil {
				return err
			}

			if err := app.requireContentAction(ctx, permissions.ActionEdit, comment.AuthorID); err != nil {
				return err
			}

			if ok, msg := validate.CommentData(content); !ok {
				return fmt.Errorf("%s", msg)
			}

			ed := editor.ForComment(app.client, comment)
			ed.ToggleEdit()
			ed.SetDraft(content)
			if err := ed.Submit(ctx); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Comment %d updated.\n", comment.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&content, "content", "c", "", "new comment text")
	cmd.MarkFlagRequired("content")

	return cmd
}

func newCommentsDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <post-id> <comment-id>",
		Short: "Delete a comment permanently",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := app.ctx(cmd)

			comment, err := app.findComment(cmd, args[0], args[1])
			if err != nil {
				return err
			}

			if err := app.requireContentAction(ctx, permissions.ActionDelete, comment.AuthorID); err != nil {
				return err
			}

			ed := editor.ForComment(app.client, comment)
			if err := ed.Delete(ctx); err != nil {
				return fmt.Errorf("delete failed, comment is unchanged: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Comment %d deleted.\n", comment.ID)
			return nil
		},
	}
}
