package domain

import "time"

// TokenTypeBearer is the token type returned with every access token.
const TokenTypeBearer = "Bearer"

// Principal is the authenticated identity attached to a request.
type Principal struct {
	Email string
	Role  Role
}

// HasRole reports whether the principal holds any of roles.
func (p Principal) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// Token represents an issued access token.
type Token struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}
