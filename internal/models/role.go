package models

// Role is the moderation rank of an actor. The zero value is RoleUnknown so
// that an unrecognized role string coming off the wire never gains
// privileges by accident.
type Role int

const (
	RoleUnknown Role = iota
	RoleGuest
	RoleBanned
	RoleUser
	RoleModerator
	RoleAdmin
)

// ParseRole maps a backend role string to a Role. Anything it does not
// recognize becomes RoleUnknown, which holds no permissions.
func ParseRole(s string) Role {
	switch s {
	case "guest":
		return RoleGuest
	case "banned":
		return RoleBanned
	case "user":
		return RoleUser
	case "moderator":
		return RoleModerator
	case "admin":
		return RoleAdmin
	default:
		return RoleUnknown
	}
}

func (r Role) String() string {
	switch r {
	case RoleGuest:
		return "guest"
	case RoleBanned:
		return "banned"
	case RoleUser:
		return "user"
	case RoleModerator:
		return "moderator"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// Color returns the display color associated with a role. Roles without a
// dedicated color (guest, banned, unknown) return "".
func (r Role) Color() string {
	switch r {
	case RoleAdmin:
		return "red"
	case RoleModerator:
		return "green"
	case RoleUser:
		return "blue"
	default:
		return ""
	}
}

// UnmarshalJSON accepts the backend's role string, falling back to
// RoleUnknown for anything unexpected.
func (r *Role) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	*r = ParseRole(s)
	return nil
}

// MarshalJSON emits the wire role string.
func (r Role) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.String() + `"`), nil
}
