package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/blitzforge/linked-roles/internal/data/pgxutil"
	"github.com/blitzforge/linked-roles/internal/domain/linkage"
	apperrors "github.com/blitzforge/linked-roles/internal/errors"
)

// membershipDocName is the single versioned document holding all role
// memberships. A compare-and-swap on the version column makes add/remove/
// replace atomic, so concurrent mutations never lose updates.
const membershipDocName = "roles"

// casMaxAttempts bounds the optimistic-concurrency retry loop.
const casMaxAttempts = 5

// MembershipRepo provides database operations for role membership. It
// implements ports.MembershipStore on a versioned JSON document row.
type MembershipRepo struct {
	DB *sql.DB
}

// NewMembershipRepo creates a new MembershipRepo.
func NewMembershipRepo(db *sql.DB) *MembershipRepo {
	return &MembershipRepo{DB: db}
}

// Members returns the member set for role; unknown roles yield an empty set.
func (r *MembershipRepo) Members(ctx context.Context, role string) (linkage.MemberSet, error) {
	var set linkage.MemberSet
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		doc, _, healErr := r.loadDocument(ctx, conn)
		if healErr != nil {
			return healErr
		}
		set = doc.members(role)
		return nil
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return set, nil
}

// Replace swaps the membership of role for the given IDs atomically.
func (r *MembershipRepo) Replace(ctx context.Context, role string, ids []string) error {
	return r.mutate(ctx, func(doc *roleDocument) bool {
		return doc.replace(role, ids)
	})
}

// Add joins id to role; adding an existing member is a no-op.
func (r *MembershipRepo) Add(ctx context.Context, role, id string) error {
	return r.mutate(ctx, func(doc *roleDocument) bool {
		return doc.add(role, id)
	})
}

// Remove drops id from role; removing a non-member is a no-op.
func (r *MembershipRepo) Remove(ctx context.Context, role, id string) error {
	return r.mutate(ctx, func(doc *roleDocument) bool {
		return doc.remove(role, id)
	})
}

// mutate runs fn against the current document and writes it back under a
// version check, retrying on contention. When fn reports no change, nothing
// is written.
func (r *MembershipRepo) mutate(ctx context.Context, fn func(*roleDocument) bool) error {
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		for attempt := 0; attempt < casMaxAttempts; attempt++ {
			doc, version, loadErr := r.loadDocument(ctx, conn)
			if loadErr != nil {
				return loadErr
			}

			if !fn(&doc) {
				return nil
			}

			swapped, swapErr := r.storeDocument(ctx, conn, versionedDoc{Doc: doc, Version: version})
			if swapErr != nil {
				return swapErr
			}
			if swapped {
				return nil
			}
			// Lost the race; reread and retry.
		}
		return errors.New("membership document contention: retries exhausted")
	})
	return apperrors.MapDBError(err)
}

// loadDocument reads the document row, self-healing to the empty shape when
// the row is missing or its payload does not decode.
func (r *MembershipRepo) loadDocument(ctx context.Context, conn *pgx.Conn) (roleDocument, int64, error) {
	var (
		raw     []byte
		version int64
	)
	err := conn.QueryRow(ctx,
		`SELECT doc, version FROM role_documents WHERE name = $1`,
		membershipDocName,
	).Scan(&raw, &version)
	if errors.Is(err, pgx.ErrNoRows) {
		if seedErr := r.seedDocument(ctx, conn); seedErr != nil {
			return roleDocument{}, 0, seedErr
		}
		// Seeded (or raced another seeder); reread.
		err = conn.QueryRow(ctx,
			`SELECT doc, version FROM role_documents WHERE name = $1`,
			membershipDocName,
		).Scan(&raw, &version)
	}
	if err != nil {
		return roleDocument{}, 0, fmt.Errorf("load membership document: %w", err)
	}

	doc, ok := decodeRoleDocument(raw)
	if !ok {
		// Corrupt payload: reinitialize in place. A concurrent healer winning
		// the version race is fine; both write the same empty shape.
		if _, healErr := r.storeDocument(ctx, conn, versionedDoc{Doc: doc, Version: version}); healErr != nil {
			return roleDocument{}, 0, healErr
		}
		version++
	}
	return doc, version, nil
}

func (r *MembershipRepo) seedDocument(ctx context.Context, conn *pgx.Conn) error {
	emptyDoc := emptyRoleDocument()
	empty, err := emptyDoc.encode()
	if err != nil {
		return fmt.Errorf("encode empty membership document: %w", err)
	}
	_, err = conn.Exec(ctx,
		`INSERT INTO role_documents (name, doc, version) VALUES ($1, $2, 1)
		 ON CONFLICT (name) DO NOTHING`,
		membershipDocName, empty,
	)
	if err != nil {
		return fmt.Errorf("seed membership document: %w", err)
	}
	return nil
}

// versionedDoc groups storeDocument parameters.
type versionedDoc struct {
	Doc     roleDocument
	Version int64
}

// storeDocument writes doc under a version check. Returns false when the
// version moved underneath us.
func (r *MembershipRepo) storeDocument(ctx context.Context, conn *pgx.Conn, v versionedDoc) (bool, error) {
	encoded, err := v.Doc.encode()
	if err != nil {
		return false, fmt.Errorf("encode membership document: %w", err)
	}
	tag, err := conn.Exec(ctx,
		`UPDATE role_documents
		 SET doc = $2, version = version + 1, updated_at = now()
		 WHERE name = $1 AND version = $3`,
		membershipDocName, encoded, v.Version,
	)
	if err != nil {
		return false, fmt.Errorf("store membership document: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
