package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/blitzforge/linked-roles/internal/domain/linkage"
	apperrors "github.com/blitzforge/linked-roles/internal/errors"
	"github.com/blitzforge/linked-roles/internal/mocks"
	"github.com/blitzforge/linked-roles/internal/ports"
	"github.com/blitzforge/linked-roles/internal/service/pushcache"
)

var syncTestTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type syncFixture struct {
	tokens      *mocks.MockTokenStore
	memberships *mocks.MockMembershipStore
	flow        *mocks.MockOAuthFlow
	connections *mocks.MockRoleConnectionClient
	cache       *pushcache.Cache
	svc         *SyncService
}

func newSyncFixture(t *testing.T) *syncFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &syncFixture{
		tokens:      mocks.NewMockTokenStore(ctrl),
		memberships: mocks.NewMockMembershipStore(ctrl),
		flow:        mocks.NewMockOAuthFlow(ctrl),
		connections: mocks.NewMockRoleConnectionClient(ctrl),
	}
	f.cache = pushcache.New(pushcache.Config{
		Capacity: 16,
		Window:   3 * time.Second,
		Now:      func() time.Time { return syncTestTime },
	})
	f.svc = NewSyncService(SyncServiceOptions{
		Tokens:       f.tokens,
		Memberships:  f.memberships,
		Flow:         f.flow,
		Connections:  f.connections,
		Cache:        f.cache,
		PlatformName: "BlitzForge Studios",
		Logger:       slog.Default(),
		Now:          func() time.Time { return syncTestTime },
	})
	return f
}

func validRecord() linkage.TokenRecord {
	return linkage.TokenRecord{
		UserID:       "42",
		AccessToken:  "at-live",
		RefreshToken: "rt-1",
		ExpiresAt:    syncTestTime.Add(time.Hour),
	}
}

func staffSet(ids ...string) linkage.MemberSet {
	return linkage.NewMemberSet(ids)
}

func TestSynchronize_PushesStaffEntitlement(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t)

	f.tokens.EXPECT().Get(ctx, "42").Return(validRecord(), nil)
	f.memberships.EXPECT().Members(ctx, linkage.StaffRole).Return(staffSet("42"), nil)
	f.connections.EXPECT().
		FetchIdentity(ctx, ports.IdentityCredential{BearerToken: "at-live"}).
		Return(linkage.Identity{ID: "42", Username: "blitz"}, nil)
	f.connections.EXPECT().
		PushRoleConnection(ctx, "at-live", linkage.RoleConnection{
			PlatformName:     "BlitzForge Studios",
			PlatformUsername: "@blitz",
			Metadata:         linkage.EntitlementPayload{IsStaff: true},
		}).
		Return(nil)

	result := f.svc.Synchronize(ctx, "42")
	assert.Equal(t, OutcomeAttempted, result.Outcome)
	assert.True(t, result.Payload.IsStaff)
}

func TestSynchronize_NonStaffPushesFalse(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t)

	f.tokens.EXPECT().Get(ctx, "42").Return(validRecord(), nil)
	f.memberships.EXPECT().Members(ctx, linkage.StaffRole).Return(staffSet("99"), nil)
	f.connections.EXPECT().
		FetchIdentity(ctx, gomock.Any()).
		Return(linkage.Identity{ID: "42", Username: "blitz"}, nil)
	f.connections.EXPECT().
		PushRoleConnection(ctx, "at-live", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, conn linkage.RoleConnection) error {
			assert.False(t, conn.Metadata.IsStaff)
			return nil
		})

	result := f.svc.Synchronize(ctx, "42")
	assert.Equal(t, OutcomeAttempted, result.Outcome)
	assert.False(t, result.Payload.IsStaff)
}

func TestSynchronize_UnlinkedUserIsSilentNoop(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t)

	f.tokens.EXPECT().Get(ctx, "42").Return(linkage.TokenRecord{}, ports.ErrTokenNotFound)

	result := f.svc.Synchronize(ctx, "42")
	assert.Equal(t, OutcomeSkipped, result.Outcome)
	assert.Equal(t, "user not linked", result.Reason)
}

func TestSynchronize_EmptyUserID(t *testing.T) {
	f := newSyncFixture(t)
	result := f.svc.Synchronize(context.Background(), "")
	assert.Equal(t, OutcomeSkipped, result.Outcome)
}

func TestSynchronize_DebouncesIdenticalPayload(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t)

	// Exactly one push despite two triggering events inside the window.
	f.tokens.EXPECT().Get(ctx, "42").Return(validRecord(), nil).Times(2)
	f.memberships.EXPECT().Members(ctx, linkage.StaffRole).Return(staffSet("42"), nil).Times(2)
	f.connections.EXPECT().
		FetchIdentity(ctx, gomock.Any()).
		Return(linkage.Identity{ID: "42", Username: "blitz"}, nil).
		Times(1)
	f.connections.EXPECT().PushRoleConnection(ctx, "at-live", gomock.Any()).Return(nil).Times(1)

	first := f.svc.Synchronize(ctx, "42")
	second := f.svc.Synchronize(ctx, "42")

	assert.Equal(t, OutcomeAttempted, first.Outcome)
	assert.Equal(t, OutcomeSkipped, second.Outcome)
	assert.Equal(t, "debounced", second.Reason)
}

func TestSynchronize_ChangedPayloadBypassesDebounce(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t)

	f.tokens.EXPECT().Get(ctx, "42").Return(validRecord(), nil).Times(2)
	gomock.InOrder(
		f.memberships.EXPECT().Members(ctx, linkage.StaffRole).Return(staffSet("42"), nil),
		f.memberships.EXPECT().Members(ctx, linkage.StaffRole).Return(staffSet(), nil),
	)
	f.connections.EXPECT().
		FetchIdentity(ctx, gomock.Any()).
		Return(linkage.Identity{ID: "42", Username: "blitz"}, nil).
		Times(2)
	f.connections.EXPECT().PushRoleConnection(ctx, "at-live", gomock.Any()).Return(nil).Times(2)

	first := f.svc.Synchronize(ctx, "42")
	second := f.svc.Synchronize(ctx, "42")

	assert.Equal(t, OutcomeAttempted, first.Outcome)
	assert.Equal(t, OutcomeAttempted, second.Outcome)
	assert.True(t, first.Payload.IsStaff)
	assert.False(t, second.Payload.IsStaff)
}

func TestSynchronize_RefreshesExpiredTokenBeforePush(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t)

	expired := validRecord()
	expired.ExpiresAt = syncTestTime.Add(-time.Minute)

	f.tokens.EXPECT().Get(ctx, "42").Return(expired, nil)
	f.memberships.EXPECT().Members(ctx, linkage.StaffRole).Return(staffSet("42"), nil)

	gomock.InOrder(
		f.flow.EXPECT().Refresh(ctx, "rt-1").Return(ports.TokenGrant{
			AccessToken:  "at-new",
			RefreshToken: "rt-2",
			ExpiresAt:    syncTestTime.Add(time.Hour),
		}, nil),
		f.tokens.EXPECT().Save(ctx, linkage.TokenRecord{
			UserID:       "42",
			AccessToken:  "at-new",
			RefreshToken: "rt-2",
			ExpiresAt:    syncTestTime.Add(time.Hour),
		}).Return(nil),
		f.connections.EXPECT().
			FetchIdentity(ctx, ports.IdentityCredential{BearerToken: "at-new"}).
			Return(linkage.Identity{ID: "42", Username: "blitz"}, nil),
		f.connections.EXPECT().PushRoleConnection(ctx, "at-new", gomock.Any()).Return(nil),
	)

	result := f.svc.Synchronize(ctx, "42")
	assert.Equal(t, OutcomeAttempted, result.Outcome)
}

func TestSynchronize_RefreshPreservesOmittedRefreshToken(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t)

	expired := validRecord()
	expired.ExpiresAt = syncTestTime.Add(-time.Minute)

	f.tokens.EXPECT().Get(ctx, "42").Return(expired, nil)
	f.memberships.EXPECT().Members(ctx, linkage.StaffRole).Return(staffSet("42"), nil)
	f.flow.EXPECT().Refresh(ctx, "rt-1").Return(ports.TokenGrant{
		AccessToken: "at-new",
		ExpiresAt:   syncTestTime.Add(time.Hour),
	}, nil)
	f.tokens.EXPECT().
		Save(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, rec linkage.TokenRecord) error {
			assert.Equal(t, "rt-1", rec.RefreshToken)
			return nil
		})
	f.connections.EXPECT().
		FetchIdentity(ctx, gomock.Any()).
		Return(linkage.Identity{ID: "42", Username: "blitz"}, nil)
	f.connections.EXPECT().PushRoleConnection(ctx, "at-new", gomock.Any()).Return(nil)

	result := f.svc.Synchronize(ctx, "42")
	assert.Equal(t, OutcomeAttempted, result.Outcome)
}

func TestSynchronize_RefreshFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t)

	expired := validRecord()
	expired.ExpiresAt = syncTestTime.Add(-time.Minute)

	f.tokens.EXPECT().Get(ctx, "42").Return(expired, nil)
	f.memberships.EXPECT().Members(ctx, linkage.StaffRole).Return(staffSet("42"), nil)
	f.flow.EXPECT().Refresh(ctx, "rt-1").Return(ports.TokenGrant{}, errors.New("invalid_grant"))

	result := f.svc.Synchronize(ctx, "42")
	assert.Equal(t, OutcomeFailed, result.Outcome)
	assert.Equal(t, "resolve access token", result.Reason)
}

func TestSynchronize_FailedPushStillRecordsDedupeMarker(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t)

	f.tokens.EXPECT().Get(ctx, "42").Return(validRecord(), nil).Times(2)
	f.memberships.EXPECT().Members(ctx, linkage.StaffRole).Return(staffSet("42"), nil).Times(2)
	f.connections.EXPECT().
		FetchIdentity(ctx, gomock.Any()).
		Return(linkage.Identity{ID: "42", Username: "blitz"}, nil).
		Times(1)
	f.connections.EXPECT().
		PushRoleConnection(ctx, "at-live", gomock.Any()).
		Return(errors.New("discord down")).
		Times(1)

	first := f.svc.Synchronize(ctx, "42")
	second := f.svc.Synchronize(ctx, "42")

	assert.Equal(t, OutcomeFailed, first.Outcome)
	// The marker was recorded before the push, so the window suppresses the retry.
	assert.Equal(t, OutcomeSkipped, second.Outcome)
	assert.Equal(t, "debounced", second.Reason)
}

func TestSynchronize_MembershipLookupFailure(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t)

	f.tokens.EXPECT().Get(ctx, "42").Return(validRecord(), nil)
	f.memberships.EXPECT().
		Members(ctx, linkage.StaffRole).
		Return(nil, errors.New("db down"))

	result := f.svc.Synchronize(ctx, "42")
	assert.Equal(t, OutcomeFailed, result.Outcome)
	assert.Equal(t, "compute entitlement", result.Reason)
}

func TestRemoveEntitlement(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t)

	f.tokens.EXPECT().Get(ctx, "42").Return(validRecord(), nil)
	gomock.InOrder(
		f.connections.EXPECT().
			FetchIdentity(ctx, ports.IdentityCredential{BearerToken: "at-live"}).
			Return(linkage.Identity{ID: "42", Username: "blitz"}, nil),
		f.connections.EXPECT().
			PushRoleConnection(ctx, "at-live", linkage.RoleConnection{
				PlatformName:     "BlitzForge Studios",
				PlatformUsername: "@blitz",
				Metadata:         linkage.EntitlementPayload{IsStaff: false},
			}).
			Return(nil),
		f.memberships.EXPECT().Remove(ctx, linkage.StaffRole, "42").Return(nil),
		f.tokens.EXPECT().Delete(ctx, "42").Return(nil),
	)

	require.NoError(t, f.svc.RemoveEntitlement(ctx, "42"))
}

func TestRemoveEntitlement_NotLinked(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t)

	f.tokens.EXPECT().Get(ctx, "42").Return(linkage.TokenRecord{}, ports.ErrTokenNotFound)

	err := f.svc.RemoveEntitlement(ctx, "42")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))
}

func TestRemoveEntitlement_PushFailurePropagates(t *testing.T) {
	ctx := context.Background()
	f := newSyncFixture(t)

	f.tokens.EXPECT().Get(ctx, "42").Return(validRecord(), nil)
	f.connections.EXPECT().
		FetchIdentity(ctx, gomock.Any()).
		Return(linkage.Identity{ID: "42", Username: "blitz"}, nil)
	f.connections.EXPECT().
		PushRoleConnection(ctx, "at-live", gomock.Any()).
		Return(errors.New("discord down"))

	err := f.svc.RemoveEntitlement(ctx, "42")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "push cleared entitlement")
}
