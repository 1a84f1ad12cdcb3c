package httpx

import (
	"log/slog"
	"net/http"

	"github.com/blitzforge/linked-roles/internal/domain/linkage"
	apperrors "github.com/blitzforge/linked-roles/internal/errors"
)

// MetadataHandlers provides HTTP handlers for entitlement metadata pushes.
type MetadataHandlers struct {
	Sync   SyncServiceInterface
	Logger *slog.Logger
}

// userIDRequest is the shared request body shape. IDs arrive as either JSON
// strings or numbers; they are canonicalized before use.
type userIDRequest struct {
	UserID any `json:"userId"`
}

// UpdateMetadata re-synchronizes one user's entitlement.
// POST /update-metadata {"userId": ...}.
//
// Synchronization is best-effort: a swallowed sync failure still answers 204.
// Only a malformed request produces an error status.
func (h *MetadataHandlers) UpdateMetadata(w http.ResponseWriter, r *http.Request) {
	var req userIDRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	h.Sync.Synchronize(r.Context(), linkage.CanonicalUserID(req.UserID))
	w.WriteHeader(http.StatusNoContent)
}

// RemoveMetadata unlinks a user: clears the remote entitlement, drops the
// staff role, and deletes the stored tokens.
// POST /remove-metadata {"userId": ...}.
func (h *MetadataHandlers) RemoveMetadata(w http.ResponseWriter, r *http.Request) {
	var req userIDRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	err := h.Sync.RemoveEntitlement(r.Context(), linkage.CanonicalUserID(req.UserID))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrCodeNotFound) {
			WriteError(w, ErrorParams{
				Code:    http.StatusNotFound,
				ErrCode: "not_linked",
				Err:     err,
			})
			return
		}
		if h.Logger != nil {
			h.Logger.ErrorContext(r.Context(), "remove metadata failed", "error", err)
		}
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "remove_failed",
			Err:     err,
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
