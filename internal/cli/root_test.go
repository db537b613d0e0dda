package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandTree(t *testing.T) {
	root := NewRootCommand()

	want := []string{
		"signup", "login", "logout", "whoami",
		"posts", "comments", "chats", "mod", "drafts",
	}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, "command %s", name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestPostsSubcommands(t *testing.T) {
	root := NewRootCommand()

	for _, path := range [][]string{
		{"posts", "list"},
		{"posts", "view"},
		{"posts", "create"},
		{"posts", "edit"},
		{"posts", "delete"},
		{"posts", "vote"},
		{"comments", "add"},
		{"chats", "view"},
		{"mod", "ban"},
		{"drafts", "publish"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, "%v", path)
		assert.Equal(t, path[len(path)-1], cmd.Name(), "%v", path)
	}
}
