// Package session holds the authentication state: the backend-issued
// bearer token and the minimal user profile, serialized into a signed
// cookie so it survives page reloads.
package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"

	"github.com/nmoreyra/cartelera/internal/domain"
)

var (
	// ErrInvalidSession is returned for malformed or tampered cookies.
	// Callers treat it as "not signed in" and clear the cookie.
	ErrInvalidSession = errors.New("invalid session cookie")
)

// Session is the authenticated state of one browser.
type Session struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// Codec signs and verifies session cookies with HMAC-SHA256.
// The token inside is backend-issued; signing only guards against
// client-side tampering, not against the backend rejecting the token.
type Codec struct {
	secret []byte
}

// NewCodec creates a codec from the configured session secret.
func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Encode serializes a session into a signed cookie value of the form
// base64(payload) + "." + base64(signature).
func (c *Codec) Encode(s *Session) (string, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return "", err
	}

	encoded := base64.RawURLEncoding.EncodeToString(payload)
	return encoded + "." + c.sign(encoded), nil
}

// Decode verifies and deserializes a cookie value.
func (c *Codec) Decode(value string) (*Session, error) {
	encoded, signature, found := strings.Cut(value, ".")
	if !found {
		return nil, ErrInvalidSession
	}

	if !hmac.Equal([]byte(signature), []byte(c.sign(encoded))) {
		return nil, ErrInvalidSession
	}

	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidSession
	}

	var s Session
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, ErrInvalidSession
	}
	if s.Token == "" {
		return nil, ErrInvalidSession
	}

	return &s, nil
}

func (c *Codec) sign(encoded string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(encoded))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
