// Package identity models the requester identity supplied by the chat-platform
// shell. The storefront never authenticates users itself; it only verifies that
// the identity handoff genuinely came from the host and derives the requester
// identifier used on tickets and comments.
package identity

// User is the identity object the hosting shell supplies at session start.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Usable reports whether the identity can back purchase or comment actions.
func (u *User) Usable() bool {
	return u != nil && u.ID != ""
}

// CustomerID is the requester identifier sent to the ticketing service: the
// username when known, otherwise a string derived from the opaque ID.
func (u *User) CustomerID() string {
	if !u.Usable() {
		return ""
	}
	if u.Username != "" {
		return u.Username
	}
	return "user_" + u.ID
}

// DisplayName is the greeting name: first name, then username, then a generic fallback.
func (u *User) DisplayName() string {
	switch {
	case u == nil:
		return "User"
	case u.FirstName != "":
		return u.FirstName
	case u.Username != "":
		return u.Username
	default:
		return "User"
	}
}
