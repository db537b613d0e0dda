// Package cli wires the client together behind a cobra command tree. All
// state (config, store, API client, session resolver) is constructed once
// per invocation and passed down; nothing lives in package-level mutable
// globals.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"forum-client/internal/api"
	"forum-client/internal/config"
	"forum-client/internal/logger"
	"forum-client/internal/session"
	"forum-client/internal/store"
)

// App carries the per-invocation wiring shared by all commands.
type App struct {
	cfg      *config.Config
	log      logger.Logger
	store    *store.Store
	client   *api.Client
	resolver *session.Resolver

	verbose bool
}

// NewRootCommand creates the root command for the forum CLI.
func NewRootCommand() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "forum",
		Short:         "Terminal client for the forum backend",
		Long:          "Browse, post, comment, vote, chat and moderate on the forum from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.bootstrap(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			app.close()
		},
	}

	cmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(newSignupCommand(app))
	cmd.AddCommand(newLoginCommand(app))
	cmd.AddCommand(newLogoutCommand(app))
	cmd.AddCommand(newWhoamiCommand(app))
	cmd.AddCommand(newPostsCommand(app))
	cmd.AddCommand(newCommentsCommand(app))
	cmd.AddCommand(newChatsCommand(app))
	cmd.AddCommand(newModCommand(app))
	cmd.AddCommand(newDraftsCommand(app))

	return cmd
}

// Execute runs the root command. Called by main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (a *App) bootstrap(cmd *cobra.Command) error {
	a.cfg = config.Load()

	level := a.cfg.LogLevel
	if a.verbose {
		level = "debug"
	}
	a.log = logger.New(cmd.ErrOrStderr(), level)

	st, err := store.Open(a.cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open local store: %w", err)
	}
	a.store = st

	client, err := api.NewClient(a.cfg, st)
	if err != nil {
		st.Close()
		return err
	}
	a.client = client
	a.resolver = session.NewResolver(client, st)

	return nil
}

func (a *App) close() {
	if a.store != nil {
		a.store.Close()
	}
}

// ctx returns the command context with the invocation logger attached.
func (a *App) ctx(cmd *cobra.Command) context.Context {
	return logger.WithContext(cmd.Context(), a.log)
}
