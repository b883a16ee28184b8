package domain

import "strings"

// User is the identity mirrored into a session after login.
type User struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// DisplayName returns the name, falling back to the local part of the email.
func (u User) DisplayName() string {
	if strings.TrimSpace(u.Name) != "" {
		return u.Name
	}
	return EmailLocalPart(u.Email)
}

// Credential is the persisted login material for one user, keyed by email
// in the user directory. The password field holds whatever the configured
// password scheme produced.
type Credential struct {
	Password string `json:"password"`
	Name     string `json:"name"`
}

// EmailLocalPart returns the part of an email address before the '@'.
func EmailLocalPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
