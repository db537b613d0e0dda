package render

import (
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"forum-client/internal/models"
	"forum-client/internal/permissions"
)

func TestMain(m *testing.M) {
	// Pin rendering to plain text so output does not depend on the
	// terminal running the tests.
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func TestRoleTag(t *testing.T) {
	assert.Equal(t, "(admin)", RoleTag(models.RoleAdmin))
	assert.Equal(t, "(moderator)", RoleTag(models.RoleModerator))
	assert.Equal(t, "(guest)", RoleTag(models.RoleGuest))
}

func TestIdentity(t *testing.T) {
	u := models.User{ID: 1, Username: "alice", Role: models.RoleAdmin}
	assert.Equal(t, "alice (admin)", Identity(u, true))
	assert.Equal(t, "[unknown author]", Identity(models.User{}, false))
}

func TestVotes(t *testing.T) {
	assert.Equal(t, "votes: 3", Votes(3, 0))
	assert.Equal(t, "votes: 3 (you voted up)", Votes(3, 1))
	assert.Equal(t, "votes: -2 (you voted down)", Votes(-2, -1))
}

func TestTagsEmpty(t *testing.T) {
	assert.Equal(t, "", Tags(nil))
	assert.Equal(t, "tags: [go]", Tags([]string{"go"}))
}

func TestActionsOrderIsStable(t *testing.T) {
	set := permissions.ActionSet{
		permissions.ActionDelete:       true,
		permissions.ActionBan:          true,
		permissions.ActionEdit:         true,
		permissions.ActionPromoteToMod: true,
	}
	assert.Equal(t, "[edit, delete, ban, promote-to-mod]", Actions(set))
	assert.Equal(t, "", Actions(permissions.ActionSet{}))
}

func TestPostViewGolden(t *testing.T) {
	post := models.Post{
		ID:           7,
		AuthorID:     1,
		Title:        "Welcome thread",
		Content:      "Glad you are all here.",
		CreationDate: "2026-01-01 09:00",
	}
	admin := models.User{ID: 1, Username: "alice", Role: models.RoleAdmin}
	bob := models.User{ID: 2, Username: "bob", Role: models.RoleUser}
	comment := models.Comment{
		ID:           11,
		PostID:       7,
		AuthorID:     2,
		Content:      "Nice to be here",
		CreationDate: "2026-01-02 10:00",
	}

	var b strings.Builder
	b.WriteString(FeedLine(post, admin, true) + "\n")
	b.WriteString(PostHeader(post, admin, true) + "\n")
	b.WriteString(post.Content + "\n")
	b.WriteString(Tags([]string{"go", "web"}) + "\n")
	b.WriteString(Votes(3, 1) + "\n")
	b.WriteString(Actions(permissions.ActionSet{
		permissions.ActionEdit:   true,
		permissions.ActionDelete: true,
	}) + "\n")
	b.WriteString(Comment(comment, bob, true) + "\n")
	b.WriteString(Comment(comment, models.User{}, false) + "\n")
	b.WriteString(Message(models.Message{SentBy: 2, Body: "hi", CreatedAt: "2026-01-03 08:15"}, "bob") + "\n")

	g := goldie.New(t)
	g.Assert(t, "post_view", []byte(b.String()))
}
