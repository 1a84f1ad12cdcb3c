package data

import (
	"encoding/json"
	"sort"

	"github.com/blitzforge/linked-roles/internal/domain/linkage"
)

// roleDocument is the persisted role-membership shape:
// { "roles": { "<role>": ["<userID>", ...] } }.
// Member lists are stored deduplicated and sorted so identical memberships
// serialize identically.
type roleDocument struct {
	Roles map[string][]string `json:"roles"`
}

// emptyRoleDocument is the shape the store self-heals to when the persisted
// document is missing or does not decode.
func emptyRoleDocument() roleDocument {
	return roleDocument{Roles: map[string][]string{}}
}

// decodeRoleDocument parses raw, reporting ok=false when the document is
// corrupt and must be reinitialized.
func decodeRoleDocument(raw []byte) (roleDocument, bool) {
	var doc roleDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return emptyRoleDocument(), false
	}
	if doc.Roles == nil {
		doc.Roles = map[string][]string{}
	}
	return doc, true
}

func (d *roleDocument) members(role string) linkage.MemberSet {
	return linkage.NewMemberSet(d.Roles[role])
}

// replace swaps the membership of role, deduplicating ids. Returns true when
// the stored document changed. An empty replacement still materializes the
// role key; roles are never hard-deleted.
func (d *roleDocument) replace(role string, ids []string) bool {
	next := linkage.NewMemberSet(ids).Sorted()
	if next == nil {
		next = []string{}
	}
	prev, existed := d.Roles[role]
	if existed && equalMembers(prev, next) {
		return false
	}
	d.Roles[role] = next
	return true
}

// add joins id to role. Adding an existing member is a no-op.
func (d *roleDocument) add(role, id string) bool {
	if id == "" {
		return false
	}
	current := d.Roles[role]
	for _, member := range current {
		if member == id {
			return false
		}
	}
	current = append(current, id)
	sort.Strings(current)
	d.Roles[role] = current
	return true
}

// remove drops id from role. Removing a non-member is a no-op, but a missing
// role key is still materialized as empty.
func (d *roleDocument) remove(role, id string) bool {
	current, existed := d.Roles[role]
	if !existed {
		d.Roles[role] = []string{}
		return true
	}
	for i, member := range current {
		if member == id {
			d.Roles[role] = append(current[:i:i], current[i+1:]...)
			return true
		}
	}
	return false
}

func (d *roleDocument) encode() ([]byte, error) {
	return json.Marshal(d)
}

func equalMembers(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	sorted := append([]string(nil), a...)
	sort.Strings(sorted)
	for i, member := range sorted {
		if member != b[i] {
			return false
		}
	}
	return true
}
