// Package models defines the data transfer objects exchanged with the
// moderation backend and cached locally by the portal client.
package models

// User is a snapshot of the authenticated principal as reported by the
// backend. Timestamps are kept as the backend's RFC 3339 strings; the client
// never interprets them.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	IsActive  bool   `json:"is_active"`
}

// LoginResult is the backend's answer to a successful login.
// ExpiresIn is a relative TTL in seconds; the client converts it to an
// absolute expiry instant exactly once, at login time.
type LoginResult struct {
	Token     string `json:"token"`
	Message   string `json:"message"`
	User      *User  `json:"user"`
	ExpiresIn int64  `json:"expiresIn"`
}

// ProfilePatch is a partial user update. Nil fields are left untouched.
type ProfilePatch struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
}

// Apply overlays the patch onto u.
func (p ProfilePatch) Apply(u *User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
}

// Empty reports whether the patch changes nothing.
func (p ProfilePatch) Empty() bool {
	return p.Username == nil && p.Email == nil
}
