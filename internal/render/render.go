// Package render turns value objects into terminal text. It is the view
// half of the data/view split: no function here performs I/O or mutates
// the values it renders.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"forum-client/internal/models"
	"forum-client/internal/permissions"
)

var (
	dimStyle   = lipgloss.NewStyle().Faint(true)
	titleStyle = lipgloss.NewStyle().Bold(true)

	roleStyles = map[string]lipgloss.Style{
		"red":   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		"green": lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"blue":  lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	}
)

// RoleTag renders "(role)" in the role's display color.
func RoleTag(role models.Role) string {
	tag := fmt.Sprintf("(%s)", role)
	if style, ok := roleStyles[role.Color()]; ok {
		return style.Render(tag)
	}
	return tag
}

// Identity renders a user's display identity. known=false degrades to a
// placeholder instead of failing the surrounding view.
func Identity(u models.User, known bool) string {
	if !known {
		return dimStyle.Render("[unknown author]")
	}
	return fmt.Sprintf("%s %s", u.Username, RoleTag(u.Role))
}

// FeedLine renders one post-list entry.
func FeedLine(post models.Post, author models.User, authorKnown bool) string {
	return fmt.Sprintf("#%-4d %s  %s", post.ID, titleStyle.Render(post.Title), Identity(author, authorKnown))
}

// PostHeader renders the title line of a single post view.
func PostHeader(post models.Post, author models.User, authorKnown bool) string {
	return fmt.Sprintf("%s  ---  %s", titleStyle.Render(post.Title), Identity(author, authorKnown))
}

// Votes renders the aggregate count and the actor's own vote marker.
func Votes(count, ownVote int) string {
	switch ownVote {
	case 1:
		return fmt.Sprintf("votes: %d (you voted up)", count)
	case -1:
		return fmt.Sprintf("votes: %d (you voted down)", count)
	default:
		return fmt.Sprintf("votes: %d", count)
	}
}

// Tags renders the tag list of a post, or "" when there are none.
func Tags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return "tags: [" + strings.Join(tags, "] [") + "]"
}

// Comment renders one comment line with its author identity.
func Comment(c models.Comment, author models.User, authorKnown bool) string {
	return fmt.Sprintf("%s - %s: %s", dimStyle.Render(c.CreationDate), Identity(author, authorKnown), c.Content)
}

// Message renders one chat message.
func Message(m models.Message, senderName string) string {
	return fmt.Sprintf("%s - %s: %s", dimStyle.Render(m.CreatedAt), senderName, m.Body)
}

// actionOrder fixes the display order of action hints.
var actionOrder = []permissions.Action{
	permissions.ActionEdit,
	permissions.ActionDelete,
	permissions.ActionBan,
	permissions.ActionPromoteToMod,
	permissions.ActionPromoteToAdmin,
	permissions.ActionDemoteMod,
	permissions.ActionDemoteAdmin,
}

// Actions renders the permitted-action hint for an item, or "" when the
// actor holds no actions against it.
func Actions(set permissions.ActionSet) string {
	if set.Empty() {
		return ""
	}
	var names []string
	for _, a := range actionOrder {
		if set.Has(a) {
			names = append(names, a.String())
		}
	}
	return dimStyle.Render("[" + strings.Join(names, ", ") + "]")
}
