package linkage

// Package linkage contains domain-level types for account linking and
// entitlement sync. It is pure and free of framework/adapter concerns.

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// StaffRole is the single role whose membership backs the is_staff entitlement.
const StaffRole = "is_staff"

// IsStaffRoleName reports whether an externally supplied role name refers to
// the staff role. Admin callers historically use both spellings.
func IsStaffRoleName(name string) bool {
	return name == "staff" || name == StaffRole
}

// CanonicalUserID normalizes an externally supplied user identifier to its
// canonical string form. Callers send IDs as either JSON strings or numbers;
// membership comparisons always use the canonical form.
func CanonicalUserID(id any) string {
	switch v := id.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		// A float that round-trips through JSON loses nothing for snowflake-sized
		// IDs below 2^53; format without an exponent.
		return fmt.Sprintf("%.0f", v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// TokenRecord is the per-user OAuth token state persisted by the token ledger.
// It is created on a successful code exchange, replaced wholesale on refresh,
// and deleted when the user unlinks.
type TokenRecord struct {
	UserID       string    `json:"user_id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Expired reports whether the access token must be refreshed before use.
func (t TokenRecord) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}

// Identity is the authenticated principal returned by the platform.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// EntitlementPayload is the complete metadata record asserted to the platform.
// Pushes always carry the full payload, never a delta.
type EntitlementPayload struct {
	IsStaff bool `json:"is_staff"`
}

// Fingerprint returns a deterministic digest of the payload, used to detect
// "no change since last push". Canonical JSON is stable for this struct
// because encoding/json emits struct fields in declaration order.
func (p EntitlementPayload) Fingerprint() string {
	b, err := json.Marshal(p)
	if err != nil {
		// A struct of booleans cannot fail to marshal.
		return ""
	}
	return string(b)
}

// RoleConnection is the platform-visible role connection record for a user.
type RoleConnection struct {
	PlatformName     string             `json:"platform_name"`
	PlatformUsername string             `json:"platform_username"`
	Metadata         EntitlementPayload `json:"metadata"`
}

// MetadataField describes one field of the application's role connection
// metadata schema, registered once per application.
type MetadataField struct {
	Key                      string            `json:"key"`
	Name                     string            `json:"name"`
	NameLocalizations        map[string]string `json:"name_localizations,omitempty"`
	Description              string            `json:"description"`
	DescriptionLocalizations map[string]string `json:"description_localizations,omitempty"`
	Type                     int               `json:"type"`
}

// MetadataTypeBooleanEqual is the platform metadata type for "boolean equals".
const MetadataTypeBooleanEqual = 7

// MemberSet is a set of canonical user IDs belonging to a role.
type MemberSet map[string]struct{}

// NewMemberSet builds a set from ids, canonicalizing and deduplicating.
func NewMemberSet(ids []string) MemberSet {
	set := make(MemberSet, len(ids))
	for _, id := range ids {
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return set
}

// Has reports whether id is a member.
func (s MemberSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the members in stable order for responses and logs.
func (s MemberSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
