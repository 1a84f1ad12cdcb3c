package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/blitzforge/linked-roles/internal/service"
)

// AuthServiceInterface defines the interface for authorization flow operations.
type AuthServiceInterface interface {
	BeginAuthorization(ctx context.Context) (*service.BeginAuthorizationResult, error)
	CompleteAuthorization(ctx context.Context, code string) (*service.CompleteAuthorizationResult, error)
}

// SyncServiceInterface defines the interface for entitlement sync operations.
type SyncServiceInterface interface {
	Synchronize(ctx context.Context, userID string) service.SyncResult
	RemoveEntitlement(ctx context.Context, userID string) error
}

// LinkHandlers provides HTTP handlers for the account linking flow.
type LinkHandlers struct {
	Auth             AuthServiceInterface
	Sync             SyncServiceInterface
	Signer           *CookieSigner
	StateTTL         time.Duration
	CookieDomain     string
	ConfirmationPage []byte
	Logger           *slog.Logger
}

func (h *LinkHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// LinkedRole starts an authorization attempt.
// GET /linked-role.
func (h *LinkHandlers) LinkedRole(w http.ResponseWriter, r *http.Request) {
	result, err := h.Auth.BeginAuthorization(r.Context())
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "authorization_begin_failed",
			Err:     err,
		})
		return
	}

	// Bind the state to this client; the provider echoes it on callback.
	setStateCookie(w, r, stateCookieParams{
		Signer: h.Signer,
		State:  result.State,
		TTL:    h.StateTTL,
		Domain: h.CookieDomain,
	})

	http.Redirect(w, r, result.AuthURL, http.StatusFound)
}

// Callback completes an authorization attempt.
// GET /discord-oauth-callback?code=<code>&state=<state>.
func (h *LinkHandlers) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	providerState := r.URL.Query().Get("state")
	clientState := readStateCookie(r, h.Signer)

	// The state is consumed by this callback regardless of outcome.
	clearStateCookie(w, r, h.CookieDomain)

	// A mismatch is a forgery rejection, not an authentication failure; it
	// must not be conflated with downstream 500s.
	if !service.ValidateCallback(clientState, providerState) {
		WriteError(w, ErrorParams{
			Code:    http.StatusForbidden,
			ErrCode: "state_mismatch",
			Err:     errors.New("callback state does not match client state"),
		})
		return
	}

	result, err := h.Auth.CompleteAuthorization(r.Context(), code)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "authorization completion failed", "error", err)
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "authorization_failed",
			Err:     err,
		})
		return
	}

	// Best-effort initial push; the result is logged inside the service.
	h.Sync.Synchronize(r.Context(), result.Identity.ID)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, writeErr := w.Write(h.ConfirmationPage); writeErr != nil {
		// Nothing more to do if the client connection is gone.
		return
	}
}
