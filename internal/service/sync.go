package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/blitzforge/linked-roles/internal/domain/linkage"
	apperrors "github.com/blitzforge/linked-roles/internal/errors"
	"github.com/blitzforge/linked-roles/internal/ports"
)

// Outcome classifies a best-effort synchronization attempt.
type Outcome string

const (
	// OutcomeAttempted means a push was issued and accepted.
	OutcomeAttempted Outcome = "attempted"
	// OutcomeSkipped means no push was needed (user not linked, or an
	// identical payload was pushed within the debounce window).
	OutcomeSkipped Outcome = "skipped"
	// OutcomeFailed means a push was due but a step failed. The failure is
	// logged, never raised; the next triggering event retries naturally.
	OutcomeFailed Outcome = "failed"
)

// SyncResult reports what a synchronization invocation did. Callers that only
// care about "attempted" may ignore it; callers wanting observability get the
// reason without the pipeline ever raising.
type SyncResult struct {
	Outcome Outcome
	Reason  string
	Payload linkage.EntitlementPayload
}

// DedupeCache remembers the fingerprint and time of the most recent push per
// user so redundant pushes inside the debounce window are suppressed.
type DedupeCache interface {
	Recent(userID, fingerprint string) bool
	Record(userID, fingerprint string)
}

// SyncServiceOptions groups dependencies for SyncService.
type SyncServiceOptions struct {
	Tokens       ports.TokenStore
	Memberships  ports.MembershipStore
	Flow         ports.OAuthFlow
	Connections  ports.RoleConnectionClient
	Cache        DedupeCache
	PlatformName string
	Logger       *slog.Logger
	Now          func() time.Time // injectable clock for tests
}

// SyncService keeps the platform-visible entitlement metadata in step with
// the authoritative membership store.
type SyncService struct {
	tokens       ports.TokenStore
	memberships  ports.MembershipStore
	flow         ports.OAuthFlow
	connections  ports.RoleConnectionClient
	cache        DedupeCache
	platformName string
	logger       *slog.Logger
	now          func() time.Time
}

// NewSyncService constructs a new SyncService.
func NewSyncService(opts SyncServiceOptions) *SyncService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	nowFn := opts.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	return &SyncService{
		tokens:       opts.Tokens,
		memberships:  opts.Memberships,
		flow:         opts.Flow,
		connections:  opts.Connections,
		cache:        opts.Cache,
		platformName: opts.PlatformName,
		logger:       logger,
		now:          nowFn,
	}
}

// Synchronize recomputes the user's entitlement and pushes it to the platform
// when it differs from the last recent push. Best-effort: every failure is
// logged and folded into the result, never returned as an error.
//
// The dedup marker is recorded before the push is attempted, so a failing
// push still silences retries for the rest of the debounce window. That
// mirrors long-standing behavior; see DESIGN.md before "fixing" it.
func (s *SyncService) Synchronize(ctx context.Context, userID string) SyncResult {
	userID = linkage.CanonicalUserID(userID)
	if userID == "" {
		return SyncResult{Outcome: OutcomeSkipped, Reason: "empty user id"}
	}

	record, err := s.tokens.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ports.ErrTokenNotFound) {
			// Never linked, or already unlinked. Silent no-op.
			return SyncResult{Outcome: OutcomeSkipped, Reason: "user not linked"}
		}
		return s.failed(ctx, userID, "load token record", err, linkage.EntitlementPayload{})
	}

	payload, err := s.currentEntitlement(ctx, userID)
	if err != nil {
		return s.failed(ctx, userID, "compute entitlement", err, payload)
	}
	fingerprint := payload.Fingerprint()

	if s.cache.Recent(userID, fingerprint) {
		return SyncResult{Outcome: OutcomeSkipped, Reason: "debounced", Payload: payload}
	}
	s.cache.Record(userID, fingerprint)

	accessToken, err := s.usableAccessToken(ctx, record)
	if err != nil {
		return s.failed(ctx, userID, "resolve access token", err, payload)
	}

	if err := s.push(ctx, accessToken, payload); err != nil {
		return s.failed(ctx, userID, "push entitlement", err, payload)
	}

	s.logger.InfoContext(ctx, "entitlement pushed",
		"user_id", userID, "is_staff", payload.IsStaff)
	return SyncResult{Outcome: OutcomeAttempted, Payload: payload}
}

// RemoveEntitlement unconditionally pushes a false entitlement, removes the
// user from the staff role, and deletes the token record. Unlike Synchronize
// this is operator-facing, so failures propagate.
func (s *SyncService) RemoveEntitlement(ctx context.Context, userID string) error {
	userID = linkage.CanonicalUserID(userID)

	record, err := s.tokens.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ports.ErrTokenNotFound) {
			return apperrors.NotFound("no linked account for user")
		}
		return fmt.Errorf("load token record: %w", err)
	}

	accessToken, err := s.usableAccessToken(ctx, record)
	if err != nil {
		return fmt.Errorf("resolve access token: %w", err)
	}

	if err := s.push(ctx, accessToken, linkage.EntitlementPayload{IsStaff: false}); err != nil {
		return fmt.Errorf("push cleared entitlement: %w", err)
	}

	if err := s.memberships.Remove(ctx, linkage.StaffRole, userID); err != nil {
		return fmt.Errorf("remove role membership: %w", err)
	}
	if err := s.tokens.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete token record: %w", err)
	}
	return nil
}

// currentEntitlement derives the authoritative payload from the membership
// store.
func (s *SyncService) currentEntitlement(ctx context.Context, userID string) (linkage.EntitlementPayload, error) {
	members, err := s.memberships.Members(ctx, linkage.StaffRole)
	if err != nil {
		return linkage.EntitlementPayload{}, err
	}
	return linkage.EntitlementPayload{IsStaff: members.Has(userID)}, nil
}

// usableAccessToken returns an access token safe for authenticated calls,
// refreshing and persisting a replacement record when the stored one expired.
func (s *SyncService) usableAccessToken(ctx context.Context, record linkage.TokenRecord) (string, error) {
	if !record.Expired(s.now()) {
		return record.AccessToken, nil
	}

	grant, err := s.flow.Refresh(ctx, record.RefreshToken)
	if err != nil {
		return "", fmt.Errorf("refresh token: %w", err)
	}

	refreshed := linkage.TokenRecord{
		UserID:       record.UserID,
		AccessToken:  grant.AccessToken,
		RefreshToken: grant.RefreshToken,
		ExpiresAt:    grant.ExpiresAt,
	}
	if refreshed.RefreshToken == "" {
		// Providers may omit the refresh token when it is unchanged.
		refreshed.RefreshToken = record.RefreshToken
	}
	if saveErr := s.tokens.Save(ctx, refreshed); saveErr != nil {
		return "", fmt.Errorf("save refreshed token record: %w", saveErr)
	}
	return refreshed.AccessToken, nil
}

// push sends the complete role connection record. The platform username is
// resolved fresh so renamed accounts stay accurate.
func (s *SyncService) push(ctx context.Context, accessToken string, payload linkage.EntitlementPayload) error {
	identity, err := s.connections.FetchIdentity(ctx, ports.IdentityCredential{BearerToken: accessToken})
	if err != nil {
		return fmt.Errorf("fetch identity for push: %w", err)
	}

	conn := linkage.RoleConnection{
		PlatformName:     s.platformName,
		PlatformUsername: "@" + identity.Username,
		Metadata:         payload,
	}
	return s.connections.PushRoleConnection(ctx, accessToken, conn)
}

func (s *SyncService) failed(ctx context.Context, userID, step string, err error, payload linkage.EntitlementPayload) SyncResult {
	s.logger.WarnContext(ctx, "entitlement sync failed",
		"user_id", userID, "step", step, "error", err)
	return SyncResult{Outcome: OutcomeFailed, Reason: step, Payload: payload}
}
