package session

import (
	"github.com/golang-jwt/jwt/v5"
)

// AdminRole is the role name that unlocks the back-office.
const AdminRole = "ADMIN"

// adminUsername is a fallback for backends whose tokens and myInfo
// responses carry no role information. The demo backend seeds exactly
// one admin account under this name.
const adminUsername = "admin"

// IsAdmin reports whether the current session may use the admin screens.
// Privilege comes from the token's role claims when present; the server
// still enforces every admin call, the client only decides what to show.
func (s *Store) IsAdmin() bool {
	s.mu.Lock()
	token, user := s.token, s.user
	s.mu.Unlock()

	if token == "" || user == nil {
		return false
	}
	if roles, ok := tokenRoles(token); ok {
		for _, r := range roles {
			if r == AdminRole {
				return true
			}
		}
		return false
	}
	if user.HasRole(AdminRole) {
		return true
	}
	return user.Username == adminUsername
}

// tokenRoles reads the "roles" claim without verifying the signature.
// Verification is the backend's job; a forged claim only changes what
// the client renders, every privileged call is rejected server-side.
func tokenRoles(token string) ([]string, bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, false
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}
	raw, ok := claims["roles"].([]any)
	if !ok {
		return nil, false
	}
	roles := make([]string, 0, len(raw))
	for _, r := range raw {
		name, ok := r.(string)
		if !ok {
			return nil, false
		}
		roles = append(roles, name)
	}
	return roles, true
}
