package winauth

import (
	"net/http"
	"time"
)

// TokenCarrier moves the session token between the core and the HTTP layer.
// The core only supplies name, value, and expiry; transport security
// attributes are the carrier's responsibility.
type TokenCarrier interface {
	// GetToken reads the named token from the inbound request. The second
	// return is false when the token is absent or empty.
	GetToken(r *http.Request, name string) (string, bool)

	// SetToken writes the named token to the response with the given expiry.
	SetToken(w http.ResponseWriter, name, value string, expiresAt time.Time)

	// ClearToken instructs the client to drop the named token.
	ClearToken(w http.ResponseWriter, name string)
}

// CookieCarrier is the default [TokenCarrier]: an HTTP-only, same-site-strict
// cookie. Secure and Path come from [CookieConfig].
type CookieCarrier struct {
	path   string
	secure bool
}

// NewCookieCarrier builds a cookie carrier from the given cookie settings.
func NewCookieCarrier(cfg CookieConfig) *CookieCarrier {
	path := cfg.Path
	if path == "" {
		path = "/"
	}
	return &CookieCarrier{path: path, secure: cfg.Secure}
}

func (c *CookieCarrier) GetToken(r *http.Request, name string) (string, bool) {
	cookie, err := r.Cookie(name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func (c *CookieCarrier) SetToken(w http.ResponseWriter, name, value string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     c.path,
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (c *CookieCarrier) ClearToken(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     c.path,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteStrictMode,
	})
}
