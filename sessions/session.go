package sessions

import (
	"net/http"
	"time"
)

// Payload is the identity recovered from a verified session token.
// It is created once at login and never mutated.
type Payload struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"` // creation time + session TTL
}

// Expired reports whether the payload is past its expiry at the given instant.
func (p *Payload) Expired(now time.Time) bool {
	return p == nil || !now.Before(p.ExpiresAt)
}

// Cookie is the stored value of a named cookie.
type Cookie struct {
	Name  string
	Value string
}

// CookieOptions are the attributes written alongside the session cookie.
type CookieOptions struct {
	HTTPOnly bool
	SameSite http.SameSite
	Path     string
	Secure   bool
	Expires  time.Time
}

// CookieStore abstracts the cookie transport of the hosting web framework.
type CookieStore interface {
	// Set writes a cookie
	Set(name, value string, opts CookieOptions) error

	// Get returns the named cookie, or nil when it is not present
	Get(name string) (*Cookie, error)

	// Delete expires the named cookie
	Delete(name string) error
}
