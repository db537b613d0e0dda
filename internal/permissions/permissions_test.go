package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"forum-client/internal/models"
)

var allRoles = []models.Role{
	models.RoleUnknown,
	models.RoleGuest,
	models.RoleBanned,
	models.RoleUser,
	models.RoleModerator,
	models.RoleAdmin,
}

func TestForMatrix(t *testing.T) {
	tests := []struct {
		role models.Role
		want Permissions
	}{
		{models.RoleAdmin, Permissions{
			CanBanUser:        true,
			CanPromoteToMod:   true,
			CanPromoteToAdmin: true,
			CanDemoteMod:      true,
			CanCreateContent:  true,
			CanDeleteContent:  true,
		}},
		{models.RoleModerator, Permissions{
			CanBanUser:       true,
			CanCreateContent: true,
			CanDeleteContent: true,
		}},
		{models.RoleUser, Permissions{CanCreateContent: true}},
		{models.RoleGuest, Permissions{}},
		{models.RoleBanned, Permissions{}},
		{models.RoleUnknown, Permissions{}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, For(tt.role), "role %s", tt.role)
	}
}

func TestDemoteAdminIsNeverOffered(t *testing.T) {
	for _, actor := range allRoles {
		assert.False(t, For(actor).CanDemoteAdmin, "actor %s", actor)
		for _, target := range allRoles {
			assert.False(t, UserActions(actor, target).Has(ActionDemoteAdmin),
				"actor %s target %s", actor, target)
		}
	}
}

func TestCanCreateContent(t *testing.T) {
	assert.True(t, CanCreateContent(models.RoleUser))
	assert.True(t, CanCreateContent(models.RoleModerator))
	assert.True(t, CanCreateContent(models.RoleAdmin))
	assert.False(t, CanCreateContent(models.RoleGuest))
	assert.False(t, CanCreateContent(models.RoleBanned))
	assert.False(t, CanCreateContent(models.RoleUnknown))
}

func TestContentActionsAuthorOverride(t *testing.T) {
	// Authors keep edit and delete on their own content whatever their
	// role, including banned.
	for _, actor := range allRoles {
		set := ContentActions(actor, actor, true)
		assert.True(t, set.Has(ActionEdit), "author %s edits own content", actor)
		assert.True(t, set.Has(ActionDelete), "author %s deletes own content", actor)
	}
}

func TestContentActionsOnOthers(t *testing.T) {
	tests := []struct {
		name      string
		actor     models.Role
		author    models.Role
		canEdit   bool
		canDelete bool
	}{
		{"guest on user content", models.RoleGuest, models.RoleUser, false, false},
		{"user on user content", models.RoleUser, models.RoleUser, false, false},
		{"moderator on user content", models.RoleModerator, models.RoleUser, false, true},
		{"moderator on moderator content", models.RoleModerator, models.RoleModerator, false, false},
		{"moderator on admin content", models.RoleModerator, models.RoleAdmin, false, false},
		{"admin on user content", models.RoleAdmin, models.RoleUser, false, true},
		{"admin on moderator content", models.RoleAdmin, models.RoleModerator, false, true},
		{"admin on admin content", models.RoleAdmin, models.RoleAdmin, false, true},
		{"banned on user content", models.RoleBanned, models.RoleUser, false, false},
		{"unknown actor", models.RoleUnknown, models.RoleUser, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := ContentActions(tt.actor, tt.author, false)
			assert.Equal(t, tt.canEdit, set.Has(ActionEdit), "edit")
			assert.Equal(t, tt.canDelete, set.Has(ActionDelete), "delete")
		})
	}
}

func TestUserActions(t *testing.T) {
	tests := []struct {
		name   string
		actor  models.Role
		target models.Role
		want   []Action
	}{
		{"admin on user", models.RoleAdmin, models.RoleUser,
			[]Action{ActionBan, ActionPromoteToMod, ActionPromoteToAdmin}},
		{"admin on moderator", models.RoleAdmin, models.RoleModerator,
			[]Action{ActionPromoteToAdmin, ActionDemoteMod}},
		{"admin on admin", models.RoleAdmin, models.RoleAdmin, nil},
		{"moderator on user", models.RoleModerator, models.RoleUser, []Action{ActionBan}},
		{"moderator on moderator", models.RoleModerator, models.RoleModerator, nil},
		{"moderator on admin", models.RoleModerator, models.RoleAdmin, nil},
		{"user on user", models.RoleUser, models.RoleUser, nil},
		{"guest on user", models.RoleGuest, models.RoleUser, nil},
		{"admin on banned", models.RoleAdmin, models.RoleBanned, nil},
		{"admin on unknown", models.RoleAdmin, models.RoleUnknown, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := UserActions(tt.actor, tt.target)
			assert.Len(t, set, len(tt.want))
			for _, a := range tt.want {
				assert.True(t, set.Has(a), "expected %s", a)
			}
		})
	}
}

func TestActionSetEmpty(t *testing.T) {
	assert.True(t, ActionSet{}.Empty())
	assert.False(t, ActionSet{ActionEdit: true}.Empty())
	assert.False(t, ActionSet{}.Has(ActionEdit))
}
