package models

// Role is a named privilege attached to a user account.
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// User is an account as the backend reports it. The myInfo endpoint
// omits roles, so Roles may be empty even for privileged accounts.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Roles    []Role `json:"roles,omitempty"`
}

// HasRole reports whether the user carries the named role.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}
