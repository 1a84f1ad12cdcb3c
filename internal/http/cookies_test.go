package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookieSignerRoundTrip(t *testing.T) {
	signer := NewCookieSigner("test-secret")

	signed := signer.Sign("state-abc")
	assert.NotEqual(t, "state-abc", signed)

	value, ok := signer.Verify(signed)
	assert.True(t, ok)
	assert.Equal(t, "state-abc", value)
}

func TestCookieSignerRejectsTampering(t *testing.T) {
	signer := NewCookieSigner("test-secret")
	signed := signer.Sign("state-abc")

	tests := []struct {
		name  string
		value string
	}{
		{name: "modified payload", value: "state-xyz" + signed[len("state-abc"):]},
		{name: "truncated tag", value: signed[:len(signed)-2]},
		{name: "no separator", value: "state-abc"},
		{name: "empty", value: ""},
		{name: "bare separator", value: "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := signer.Verify(tt.value)
			assert.False(t, ok)
		})
	}
}

func TestCookieSignerRejectsForeignSecret(t *testing.T) {
	signed := NewCookieSigner("secret-one").Sign("state-abc")

	_, ok := NewCookieSigner("secret-two").Verify(signed)
	assert.False(t, ok)
}

func TestCookieSignerValueWithDots(t *testing.T) {
	signer := NewCookieSigner("test-secret")

	// The tag is appended after the last dot; dots in the value must survive.
	signed := signer.Sign("a.b.c")
	value, ok := signer.Verify(signed)
	assert.True(t, ok)
	assert.Equal(t, "a.b.c", value)
}

func TestStateCookieLifecycle(t *testing.T) {
	signer := NewCookieSigner("test-secret")

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/linked-role", nil)
	setStateCookie(w, r, stateCookieParams{
		Signer: signer,
		State:  "state-abc",
		TTL:    5 * time.Minute,
	})

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, "clientState", cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 300, cookie.MaxAge)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.False(t, cookie.Secure)

	// Echo the cookie back and read the verified state.
	r2 := httptest.NewRequest(http.MethodGet, "/discord-oauth-callback", nil)
	r2.AddCookie(cookie)
	assert.Equal(t, "state-abc", readStateCookie(r2, signer))
}

func TestReadStateCookie(t *testing.T) {
	signer := NewCookieSigner("test-secret")

	t.Run("absent cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.Empty(t, readStateCookie(r, signer))
	})

	t.Run("tampered cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "clientState", Value: "forged.dGFn"})
		assert.Empty(t, readStateCookie(r, signer))
	})
}

func TestClearStateCookie(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	clearStateCookie(w, r, "")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "clientState", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestSecureFlagBehindTLSProxy(t *testing.T) {
	signer := NewCookieSigner("test-secret")

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/linked-role", nil)
	r.Header.Set("X-Forwarded-Proto", "https")
	setStateCookie(w, r, stateCookieParams{Signer: signer, State: "s", TTL: time.Minute})

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].Secure)
}
