// Package cookie provides helpers for the session cookie. All durable
// client state (bearer token plus minimal profile) lives in this single
// cookie; it is cleared on logout or when the backend rejects the token.
package cookie

import "net/http"

// Config holds cookie settings shared by every writer.
type Config struct {
	// Name is the cookie name.
	Name string

	// Secure requires HTTPS. Should be true in production.
	Secure bool

	// MaxAge is the cookie lifetime in seconds. Zero means a
	// browser-session cookie.
	MaxAge int
}

// NewConfig creates a cookie configuration.
func NewConfig(name string, secure bool, maxAge int) *Config {
	return &Config{Name: name, Secure: secure, MaxAge: maxAge}
}

// Set writes the session cookie. HttpOnly and SameSite=Lax keep the
// token out of scripts while allowing top-level navigation, which the
// payment-provider return redirect depends on.
func (c *Config) Set(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   c.MaxAge,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear removes the session cookie.
func (c *Config) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Get retrieves a cookie value from the request.
// Returns empty string if the cookie is not present.
func Get(r *http.Request, name string) string {
	ck, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return ck.Value
}
