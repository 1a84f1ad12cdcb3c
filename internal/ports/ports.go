package ports

// Package ports defines interfaces (hexagonal ports) for the linking and sync
// behavior. Implementations live in internal/adapters and internal/data;
// orchestration in internal/service.

import (
	"context"
	"errors"
	"time"

	"github.com/blitzforge/linked-roles/internal/domain/linkage"
)

// ErrTokenNotFound is returned by TokenStore.Get when the user never linked
// or already unlinked.
var ErrTokenNotFound = errors.New("token record not found")

// TokenGrant is the raw token response from the provider's token endpoint.
// ExpiresAt is absolute: issue time plus the provider's reported lifetime.
type TokenGrant struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// OAuthFlow performs the authorization-code and refresh-token grants against
// the platform's token endpoint.
type OAuthFlow interface {
	// AuthorizationURL builds the provider authorization URL carrying the
	// given anti-forgery state.
	AuthorizationURL(state string) string

	// Exchange trades a short-lived authorization code for tokens.
	Exchange(ctx context.Context, code string) (TokenGrant, error)

	// Refresh trades a refresh token for a fresh grant.
	Refresh(ctx context.Context, refreshToken string) (TokenGrant, error)
}

// IdentityCredential selects one of the two identity lookup modes: an
// end-user bearer token (self lookup) or a service bot token plus target ID
// (administrative lookup).
type IdentityCredential struct {
	BearerToken string
	BotToken    string
	UserID      string
}

// RoleConnectionClient performs the identity and role connection calls.
type RoleConnectionClient interface {
	// FetchIdentity resolves the identity behind the credential.
	FetchIdentity(ctx context.Context, cred IdentityCredential) (linkage.Identity, error)

	// PushRoleConnection replaces the remote role connection record wholesale.
	PushRoleConnection(ctx context.Context, accessToken string, conn linkage.RoleConnection) error

	// RoleConnection fetches the current remote role connection record.
	RoleConnection(ctx context.Context, accessToken string) (linkage.RoleConnection, error)
}

// TokenStore persists and retrieves per-user token records.
type TokenStore interface {
	Save(ctx context.Context, rec linkage.TokenRecord) error
	Get(ctx context.Context, userID string) (linkage.TokenRecord, error)
	Delete(ctx context.Context, userID string) error
}

// MembershipStore is the durable role → member-set mapping. Mutations are
// atomic at the store: concurrent add/remove calls never lose updates.
type MembershipStore interface {
	// Members returns the member set for role; unknown roles yield an empty
	// set, not an error.
	Members(ctx context.Context, role string) (linkage.MemberSet, error)

	// Replace swaps the membership of role for the given IDs atomically.
	Replace(ctx context.Context, role string, ids []string) error

	// Add joins id to role; adding an existing member is a no-op.
	Add(ctx context.Context, role, id string) error

	// Remove drops id from role; removing a non-member is a no-op.
	Remove(ctx context.Context, role, id string) error
}
