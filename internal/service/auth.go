package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/blitzforge/linked-roles/internal/domain/linkage"
	"github.com/blitzforge/linked-roles/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Flow       ports.OAuthFlow
	Identities ports.RoleConnectionClient
	Tokens     ports.TokenStore
}

// AuthService manages the authorization-code flow: it issues the anti-forgery
// state for the provider redirect, validates it on callback, and completes the
// exchange by persisting the user's token record.
//
// There is no server-side session table; the state lives only in the signed
// client cookie, whose TTL bounds the authorization attempt.
type AuthService struct {
	flow       ports.OAuthFlow
	identities ports.RoleConnectionClient
	tokens     ports.TokenStore
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	return &AuthService{
		flow:       opts.Flow,
		identities: opts.Identities,
		tokens:     opts.Tokens,
	}
}

// BeginAuthorizationResult contains the result of beginning an authorization
// attempt.
type BeginAuthorizationResult struct {
	State   string
	AuthURL string
}

// BeginAuthorization generates a fresh unguessable state and the provider
// authorization URL carrying it. The caller binds the state to the client via
// a signed, short-lived cookie.
func (s *AuthService) BeginAuthorization(_ context.Context) (*BeginAuthorizationResult, error) {
	state := uuid.NewString()
	return &BeginAuthorizationResult{
		State:   state,
		AuthURL: s.flow.AuthorizationURL(state),
	}, nil
}

// ValidateCallback reports whether the state echoed by the provider matches
// the client-held value. Both must be non-empty and exactly equal; any other
// combination is a forgery rejection, distinct from downstream failures.
func ValidateCallback(clientState, providerState string) bool {
	if clientState == "" || providerState == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(clientState), []byte(providerState)) == 1
}

// CompleteAuthorizationResult contains the result of completing an
// authorization attempt.
type CompleteAuthorizationResult struct {
	Identity linkage.Identity
	Record   linkage.TokenRecord
}

// CompleteAuthorization exchanges the authorization code for tokens,
// resolves the identity behind the new bearer token, and persists the token
// record keyed by the user's canonical ID.
func (s *AuthService) CompleteAuthorization(ctx context.Context, code string) (*CompleteAuthorizationResult, error) {
	if code == "" {
		return nil, errors.New("authorization code is required")
	}

	grant, err := s.flow.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	identity, err := s.identities.FetchIdentity(ctx, ports.IdentityCredential{BearerToken: grant.AccessToken})
	if err != nil {
		return nil, fmt.Errorf("fetch identity: %w", err)
	}

	record := linkage.TokenRecord{
		UserID:       identity.ID,
		AccessToken:  grant.AccessToken,
		RefreshToken: grant.RefreshToken,
		ExpiresAt:    grant.ExpiresAt,
	}
	if saveErr := s.tokens.Save(ctx, record); saveErr != nil {
		return nil, fmt.Errorf("save token record: %w", saveErr)
	}

	return &CompleteAuthorizationResult{
		Identity: identity,
		Record:   record,
	}, nil
}
