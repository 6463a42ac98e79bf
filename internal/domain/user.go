package domain

import "strings"

const (
	RoleAdmin   = "admin"
	RoleWaiter  = "waiter"
	RoleKitchen = "kitchen"
)

// User is a staff member. Roles is a comma-separated list in storage; a user
// can hold more than one role (e.g. an admin who also waits tables).
type User struct {
	ID       int64  `db:"id"`
	Username string `db:"username"`
	Name     string `db:"name"`
	Hash     string `db:"password_hash"`
	Roles    string `db:"roles"`
}

func (u *User) HasRole(role string) bool {
	for _, r := range strings.Split(u.Roles, ",") {
		if strings.TrimSpace(r) == role {
			return true
		}
	}
	return false
}

func (u *User) IsAdmin() bool  { return u.HasRole(RoleAdmin) }
func (u *User) IsWaiter() bool { return u.HasRole(RoleWaiter) }

// UserPatch carries optional field updates for a user. Nil fields are left
// untouched; Password, when set, is re-hashed by the staff service.
type UserPatch struct {
	Username *string
	Name     *string
	Password *string
	Roles    *string
}
