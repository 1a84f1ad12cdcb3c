package httpx

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"
	"time"
)

// stateCookieName binds the anti-forgery state to the client across the
// provider redirect.
const stateCookieName = "clientState"

// CookieSigner produces tamper-evident cookie values: the payload plus an
// HMAC-SHA256 tag, dot-separated. Expiry is enforced by the cookie's own
// MaxAge; the server holds no state table.
type CookieSigner struct {
	secret []byte
}

// NewCookieSigner creates a signer from the configured secret.
func NewCookieSigner(secret string) *CookieSigner {
	return &CookieSigner{secret: []byte(secret)}
}

// Sign returns value with its authentication tag appended.
func (s *CookieSigner) Sign(value string) string {
	return value + "." + s.tag(value)
}

// Verify splits a signed value and checks its tag in constant time.
// Returns the original value and whether it was authentic.
func (s *CookieSigner) Verify(signed string) (string, bool) {
	idx := strings.LastIndexByte(signed, '.')
	if idx < 0 {
		return "", false
	}
	value, tag := signed[:idx], signed[idx+1:]
	if subtle.ConstantTimeCompare([]byte(tag), []byte(s.tag(value))) != 1 {
		return "", false
	}
	return value, true
}

func (s *CookieSigner) tag(value string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(value))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// stateCookieParams groups values needed to set the state cookie (≤3 params rule).
type stateCookieParams struct {
	Signer *CookieSigner
	State  string
	TTL    time.Duration
	Domain string
}

// setStateCookie stores the signed anti-forgery state in a short-lived cookie.
func setStateCookie(w http.ResponseWriter, r *http.Request, p stateCookieParams) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    p.Signer.Sign(p.State),
		Path:     "/",
		Domain:   p.Domain,
		HttpOnly: true,
		Secure:   requestIsSecure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(p.TTL.Seconds()),
	})
}

// readStateCookie returns the verified client state, or "" when the cookie is
// absent, tampered with, or expired.
func readStateCookie(r *http.Request, signer *CookieSigner) string {
	cookie, err := r.Cookie(stateCookieName)
	if err != nil {
		return ""
	}
	value, ok := signer.Verify(cookie.Value)
	if !ok {
		return ""
	}
	return value
}

// clearStateCookie consumes the state cookie after a callback, successful or
// not. It mirrors key attributes used when setting the cookie to maximize
// compatibility across browsers during deletion.
func clearStateCookie(w http.ResponseWriter, r *http.Request, domain string) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/",
		Domain:   domain,
		HttpOnly: true,
		Secure:   requestIsSecure(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

func requestIsSecure(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
