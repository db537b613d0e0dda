// Package permissions is the capability gate: pure lookups deciding which
// actions the UI offers for a piece of content or a user. It performs no
// I/O and never fails; roles it does not recognize simply hold nothing.
package permissions

import "forum-client/internal/models"

// Action is one interactive control the UI can offer.
type Action int

const (
	ActionEdit Action = iota
	ActionDelete
	ActionBan
	ActionPromoteToMod
	ActionPromoteToAdmin
	ActionDemoteMod
	ActionDemoteAdmin
)

func (a Action) String() string {
	switch a {
	case ActionEdit:
		return "edit"
	case ActionDelete:
		return "delete"
	case ActionBan:
		return "ban"
	case ActionPromoteToMod:
		return "promote-to-mod"
	case ActionPromoteToAdmin:
		return "promote-to-admin"
	case ActionDemoteMod:
		return "demote-mod"
	case ActionDemoteAdmin:
		return "demote-admin"
	default:
		return "unknown"
	}
}

// ActionSet is the set of permitted actions for one (actor, target) pair.
type ActionSet map[Action]bool

func (s ActionSet) Has(a Action) bool { return s[a] }
func (s ActionSet) Empty() bool       { return len(s) == 0 }

// Permissions is one row of the role-permission matrix.
type Permissions struct {
	CanBanUser        bool
	CanPromoteToMod   bool
	CanPromoteToAdmin bool
	CanDemoteMod      bool
	CanDemoteAdmin    bool
	CanCreateContent  bool
	CanEditContent    bool
	CanDeleteContent  bool
}

// For returns the matrix row of a role. Every known role has a total row;
// unknown roles get the zero row, which permits nothing.
//
// CanDemoteAdmin is false for every role, so the demote-admin action is
// never offered. That matches the matrix as shipped; whether admins are
// meant to be undemotable is unresolved upstream, so the denial stands.
func For(role models.Role) Permissions {
	switch role {
	case models.RoleAdmin:
		return Permissions{
			CanBanUser:        true,
			CanPromoteToMod:   true,
			CanPromoteToAdmin: true,
			CanDemoteMod:      true,
			CanDemoteAdmin:    false,
			CanCreateContent:  true,
			CanEditContent:    false,
			CanDeleteContent:  true,
		}
	case models.RoleModerator:
		return Permissions{
			CanBanUser:       true,
			CanCreateContent: true,
			CanDeleteContent: true,
		}
	case models.RoleUser:
		return Permissions{
			CanCreateContent: true,
		}
	case models.RoleGuest, models.RoleBanned:
		return Permissions{}
	default:
		return Permissions{}
	}
}

// CanCreateContent reports whether a role may author posts and comments.
func CanCreateContent(role models.Role) bool {
	return For(role).CanCreateContent
}

// ContentActions computes the edit/delete controls for a content item.
// Authors always keep edit and delete on their own content regardless of
// role. For everyone else the matrix decides, with target eligibility on
// delete: admins may delete anything, moderators only content authored by
// plain users.
func ContentActions(actor, author models.Role, isAuthor bool) ActionSet {
	set := ActionSet{}
	perms := For(actor)

	if isAuthor || perms.CanEditContent {
		set[ActionEdit] = true
	}

	if isAuthor || (perms.CanDeleteContent && deleteEligible(actor, author)) {
		set[ActionDelete] = true
	}

	return set
}

func deleteEligible(actor, author models.Role) bool {
	if actor == models.RoleAdmin {
		return true
	}
	return author != models.RoleAdmin && author != models.RoleModerator
}

// UserActions computes the role-management controls offered against a
// target user. Each transition is only offered when the target currently
// holds a role eligible for it.
func UserActions(actor, author models.Role) ActionSet {
	set := ActionSet{}
	perms := For(actor)

	if perms.CanBanUser && author == models.RoleUser {
		set[ActionBan] = true
	}
	if perms.CanPromoteToMod && author == models.RoleUser {
		set[ActionPromoteToMod] = true
	}
	if perms.CanPromoteToAdmin && (author == models.RoleUser || author == models.RoleModerator) {
		set[ActionPromoteToAdmin] = true
	}
	if perms.CanDemoteMod && author == models.RoleModerator {
		set[ActionDemoteMod] = true
	}
	if perms.CanDemoteAdmin && author == models.RoleAdmin {
		set[ActionDemoteAdmin] = true
	}

	return set
}
