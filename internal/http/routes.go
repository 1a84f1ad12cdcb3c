package httpx

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/blitzforge/linked-roles/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth        *service.AuthService
	Sync        *service.SyncService
	Memberships *service.MembershipService
	Identities  IdentityLookup

	// Cookie configuration for the state cookie.
	CookieSecret string
	CookieDomain string
	StateTTL     time.Duration

	// ConfirmationPage is served after a successful callback.
	ConfirmationPage []byte

	Logger *slog.Logger // Logger for handler errors (optional)
}

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	signer := NewCookieSigner(services.CookieSecret)

	linkHandlers := &LinkHandlers{
		Auth:             services.Auth,
		Sync:             services.Sync,
		Signer:           signer,
		StateTTL:         services.StateTTL,
		CookieDomain:     services.CookieDomain,
		ConfirmationPage: services.ConfirmationPage,
		Logger:           services.Logger,
	}
	metadataHandlers := &MetadataHandlers{Sync: services.Sync, Logger: services.Logger}
	adminHandlers := &AdminHandlers{
		Memberships: services.Memberships,
		Sync:        services.Sync,
		Identities:  services.Identities,
		Logger:      services.Logger,
	}

	mux.Handle("GET /linked-role", http.HandlerFunc(linkHandlers.LinkedRole))
	mux.Handle("GET /discord-oauth-callback", http.HandlerFunc(linkHandlers.Callback))
	mux.Handle("POST /update-metadata", http.HandlerFunc(metadataHandlers.UpdateMetadata))
	mux.Handle("POST /remove-metadata", http.HandlerFunc(metadataHandlers.RemoveMetadata))
	mux.Handle("POST /admin/add-user", http.HandlerFunc(adminHandlers.AddUser))
	mux.Handle("POST /discord/commands/add-role", http.HandlerFunc(adminHandlers.AddRoleCommand))

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("GET /{$}", http.HandlerFunc(greetingHandler))

	return mux
}

func greetingHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := io.WriteString(w, "👋"); err != nil {
		return
	}
}
