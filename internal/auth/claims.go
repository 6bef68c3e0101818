// Package auth provides session tokens, password hashing, and the
// authorization predicates used by the HTTP handlers.
package auth

// AdminUsername is the fixed login name of the admin account.
const AdminUsername = "admin"

// Claims is the decoded, verified payload of a session token. For the admin
// it carries Subject "admin" and Admin true; for a moderator it carries the
// moderator's ID and username.
type Claims struct {
	Subject  string
	Username string
	Admin    bool
}

// CanAdmin reports whether the caller holds the admin role.
func (c *Claims) CanAdmin() bool {
	return c.Admin
}

// CanActOn reports whether the caller may act on a resource owned by
// ownerID: admins always, moderators only on their own resources.
func (c *Claims) CanActOn(ownerID string) bool {
	return c.Admin || c.Subject == ownerID
}

// AdminClaims returns the claims issued on a successful admin login.
func AdminClaims() *Claims {
	return &Claims{Subject: AdminUsername, Admin: true}
}

// ModeratorClaims returns the claims issued on a successful moderator login.
func ModeratorClaims(id, username string) *Claims {
	return &Claims{Subject: id, Username: username}
}
