package server

import (
	"net/http"
	"sync"

	"github.com/jrsteele09/uigen-server/sessions"
)

// requestCookies adapts a request/response pair to sessions.CookieStore.
// Cookies set or deleted while handling the request are visible to later
// reads in the same request.
type requestCookies struct {
	w http.ResponseWriter
	r *http.Request

	mu      sync.Mutex
	pending map[string]*sessions.Cookie // nil marks a deleted cookie
}

var _ sessions.CookieStore = (*requestCookies)(nil)

func newRequestCookies(w http.ResponseWriter, r *http.Request) *requestCookies {
	return &requestCookies{w: w, r: r, pending: make(map[string]*sessions.Cookie)}
}

func (c *requestCookies) Set(name, value string, opts sessions.CookieOptions) error {
	http.SetCookie(c.w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     opts.Path,
		HttpOnly: opts.HTTPOnly,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
		Expires:  opts.Expires,
	})

	c.mu.Lock()
	c.pending[name] = &sessions.Cookie{Name: name, Value: value}
	c.mu.Unlock()
	return nil
}

func (c *requestCookies) Get(name string) (*sessions.Cookie, error) {
	c.mu.Lock()
	pending, ok := c.pending[name]
	c.mu.Unlock()
	if ok {
		return pending, nil
	}

	cookie, err := c.r.Cookie(name)
	if err == http.ErrNoCookie {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sessions.Cookie{Name: cookie.Name, Value: cookie.Value}, nil
}

func (c *requestCookies) Delete(name string) error {
	http.SetCookie(c.w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	c.mu.Lock()
	c.pending[name] = nil
	c.mu.Unlock()
	return nil
}
