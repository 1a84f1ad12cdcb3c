package service

import (
	"context"
	"fmt"

	"github.com/blitzforge/linked-roles/internal/domain/linkage"
	"github.com/blitzforge/linked-roles/internal/ports"
)

// MembershipService wraps the membership store with identifier
// canonicalization: callers may send user IDs as strings or numbers, the
// store always sees canonical strings.
type MembershipService struct {
	store ports.MembershipStore
}

// NewMembershipService constructs a new MembershipService.
func NewMembershipService(store ports.MembershipStore) *MembershipService {
	return &MembershipService{store: store}
}

// Members returns the canonical member IDs of role in stable order.
func (s *MembershipService) Members(ctx context.Context, role string) ([]string, error) {
	set, err := s.store.Members(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("get role members: %w", err)
	}
	return set.Sorted(), nil
}

// IsStaff reports whether the user holds the staff entitlement.
func (s *MembershipService) IsStaff(ctx context.Context, userID any) (bool, error) {
	set, err := s.store.Members(ctx, linkage.StaffRole)
	if err != nil {
		return false, fmt.Errorf("get staff members: %w", err)
	}
	return set.Has(linkage.CanonicalUserID(userID)), nil
}

// Replace swaps the membership of role, canonicalizing and deduplicating ids.
func (s *MembershipService) Replace(ctx context.Context, role string, ids []any) error {
	canonical := make([]string, 0, len(ids))
	for _, id := range ids {
		if c := linkage.CanonicalUserID(id); c != "" {
			canonical = append(canonical, c)
		}
	}
	return s.store.Replace(ctx, role, canonical)
}

// AssignStaff grants the staff role. Idempotent.
func (s *MembershipService) AssignStaff(ctx context.Context, userID any) error {
	return s.store.Add(ctx, linkage.StaffRole, linkage.CanonicalUserID(userID))
}

// RevokeStaff removes the staff role. Idempotent.
func (s *MembershipService) RevokeStaff(ctx context.Context, userID any) error {
	return s.store.Remove(ctx, linkage.StaffRole, linkage.CanonicalUserID(userID))
}

// ApplyRoles reconciles a user against an externally supplied role list:
// any staff spelling grants membership, anything else (including an empty
// list) revokes it. Returns whether the user ended up staff.
func (s *MembershipService) ApplyRoles(ctx context.Context, userID any, roles []string) (bool, error) {
	staff := false
	for _, role := range roles {
		if linkage.IsStaffRoleName(role) {
			staff = true
			break
		}
	}

	if staff {
		if err := s.AssignStaff(ctx, userID); err != nil {
			return false, fmt.Errorf("assign staff role: %w", err)
		}
		return true, nil
	}
	if err := s.RevokeStaff(ctx, userID); err != nil {
		return false, fmt.Errorf("revoke staff role: %w", err)
	}
	return false, nil
}
