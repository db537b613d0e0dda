package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"forum-client/internal/editor"
	"forum-client/internal/feed"
	"forum-client/internal/models"
	"forum-client/internal/permissions"
	"forum-client/internal/render"
	"forum-client/internal/validate"
)

func newPostsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Browse and manage posts",
	}

	cmd.AddCommand(newPostsListCommand(app))
	cmd.AddCommand(newPostsViewCommand(app))
	cmd.AddCommand(newPostsCreateCommand(app))
	cmd.AddCommand(newPostsEditCommand(app))
	cmd.AddCommand(newPostsDeleteCommand(app))
	cmd.AddCommand(newPostsVoteCommand(app))

	return cmd
}

func newPostsListCommand(app *App) *cobra.Command {
	var search, sortName string
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts, optionally filtered and sorted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := app.ctx(cmd)
			out := cmd.OutOrStdout()

			sort, ok := models.ParseSortMode(sortName)
			if !ok {
				return fmt.Errorf("unknown sort mode %q (recommended|new|popular|controversial)", sortName)
			}

			f := feed.New(app.client, app.resolver)
			f.SetSearch(search)
			f.SetSort(sort)

			if err := f.LoadPage(ctx); err != nil {
				return err
			}
			for all && f.HasMore() {
				if err := f.More(ctx); err != nil {
					return err
				}
			}

			items := f.Items()
			if len(items) == 0 {
				fmt.Fprintln(out, "No posts found.")
				return nil
			}
			for _, item := range items {
				fmt.Fprintln(out, render.FeedLine(item.Post, item.Author, item.AuthorKnown))
			}
			if f.HasMore() {
				fmt.Fprintln(out, "More posts available. Re-run with --all to load everything.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "search term")
	cmd.Flags().StringVar(&sortName, "sort", "recommended", "sort mode (recommended|new|popular|controversial)")
	cmd.Flags().BoolVar(&all, "all", false, "follow the load-more affordance until the feed is exhausted")

	return cmd
}

func newPostsViewCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "view <post-id>",
		Short: "Show a post with its tags, votes and comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := app.ctx(cmd)
			out := cmd.OutOrStdout()

			postID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid post id %q", args[0])
			}

			post, err := app.client.Posts().Get(ctx, postID)
			if err != nil {
				return err
			}

			actor := app.resolver.ResolveActor(ctx)
			author, authorErr := app.resolver.UserDetails(ctx, post.AuthorID)
			authorKnown := authorErr == nil

			fmt.Fprintln(out, render.PostHeader(*post, author, authorKnown))
			fmt.Fprintln(out, post.Content)

			if tags, err := app.client.Posts().Tags(ctx, postID); err == nil {
				if line := render.Tags(tags); line != "" {
					fmt.Fprintln(out, line)
				}
			}

			// A missing vote count degrades to 0 rather than failing the
			// page.
			votes, err := app.client.Posts().Votes(ctx, postID)
			if err != nil {
				app.log.Debug("vote count unavailable", "post_id", postID, "error", err)
				votes = 0
			}
			ownVote := 0
			if actor.LoggedIn() {
				if v, err := app.client.Posts().UserVote(ctx, postID); err == nil {
					ownVote = v
				}
			}
			fmt.Fprintln(out, render.Votes(votes, ownVote))

			if actions := permissions.ContentActions(actor.Role, author.Role, actor.ID == post.AuthorID); !actions.Empty() {
				fmt.Fprintln(out, render.Actions(actions))
			}

			comments, err := app.client.Comments().OfPost(ctx, postID)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%d comment(s)\n", len(comments))
			for _, c := range comments {
				cAuthor, err := app.resolver.UserDetails(ctx, c.AuthorID)
				known := err == nil

				fmt.Fprintf(out, "#%d %s", c.ID, render.Comment(c, cAuthor, known))
				hints := permissions.ContentActions(actor.Role, cAuthor.Role, actor.ID == c.AuthorID)
				if !hints.Empty() {
					fmt.Fprintf(out, " %s", render.Actions(hints))
				}
				if mgmt := permissions.UserActions(actor.Role, cAuthor.Role); !mgmt.Empty() {
					fmt.Fprintf(out, " %s", render.Actions(mgmt))
				}
				fmt.Fprintln(out)
			}

			if permissions.CanCreateContent(actor.Role) {
				fmt.Fprintf(out, "\nReply with: forum comments add %d --content <text>\n", postID)
			}
			return nil
		},
	}
}

func newPostsCreateCommand(app *App) *cobra.Command {
	var title, content, draftID string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publish a new post",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := app.ctx(cmd)

			if draftID != "" {
				draft, err := app.store.GetDraft(draftID)
				if err != nil {
					return err
				}
				title, content = draft.Title, draft.Content
			}

			if ok, msg := validate.PostData(title, content); !ok {
				return fmt.Errorf("%s", msg)
			}

			postID, err := app.client.Posts().Create(ctx, title, content)
			if err != nil {
				return err
			}

			if draftID != "" {
				if err := app.store.DeleteDraft(draftID); err != nil {
					app.log.Warn("published draft could not be removed", "draft", draftID, "error", err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created post %d.\n", postID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "post title")
	cmd.Flags().StringVarP(&content, "content", "c", "", "post content")
	cmd.Flags().StringVar(&draftID, "draft", "", "publish a saved draft instead of --title/--content")

	return cmd
}

func newPostsEditCommand(app *App) *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "edit <post-id>",
		Short: "Replace the content of a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := app.ctx(cmd)

			postID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid post id %q", args[0])
			}

			post, err := app.client.Posts().Get(ctx, postID)
			if err != nil {
				return err
			}

			if err := app.requireContentAction(ctx, permissions.ActionEdit, post.AuthorID); err != nil {
				return err
			}

			ed := editor.ForPost(app.client, post)
			ed.ToggleEdit()
			ed.SetDraft(content)
			if err := ed.Submit(ctx); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Post %d updated.\n", postID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&content, "content", "c", "", "new post content")
	cmd.MarkFlagRequired("content")

	return cmd
}

func newPostsDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <post-id>",
		Short: "Delete a post permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := app.ctx(cmd)

			postID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid post id %q", args[0])
			}

			post, err := app.client.Posts().Get(ctx, postID)
			if err != nil {
				return err
			}

			if err := app.requireContentAction(ctx, permissions.ActionDelete, post.AuthorID); err != nil {
				return err
			}

			ed := editor.ForPost(app.client, post)
			if err := ed.Delete(ctx); err != nil {
				return fmt.Errorf("delete failed, post is unchanged: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Post %d deleted. Back to the post list: forum posts list\n", postID)
			return nil
		},
	}
}

func newPostsVoteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "vote <post-id> <up|down>",
		Short: "Cast a vote on a post",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := app.ctx(cmd)

			postID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid post id %q", args[0])
			}

			var value int
			switch args[1] {
			case "up":
				value = 1
			case "down":
				value = -1
			default:
				return fmt.Errorf("vote must be up or down, got %q", args[1])
			}

			actor := app.resolver.ResolveActor(ctx)
			if !actor.LoggedIn() {
				return fmt.Errorf("log in to vote")
			}

			if err := app.client.Posts().Vote(ctx, postID, value); err != nil {
				return err
			}

			count, err := app.client.Posts().Votes(ctx, postID)
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Vote recorded.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.Votes(count, value))
			return nil
		},
	}
}

// requireContentAction checks the capability gate before attempting a
// content mutation, so a denied action fails locally with a clear message
// instead of a backend 403.
func (a *App) requireContentAction(ctx context.Context, action permissions.Action, authorID int) error {
	actor := a.resolver.ResolveActor(ctx)
	author, err := a.resolver.UserDetails(ctx, authorID)
	authorRole := models.RoleUnknown
	if err == nil {
		authorRole = author.Role
	}

	actions := permissions.ContentActions(actor.Role, authorRole, actor.ID == authorID)
	if !actions.Has(action) {
		return fmt.Errorf("your role (%s) does not permit %s here", actor.Role, action)
	}
	return nil
}
