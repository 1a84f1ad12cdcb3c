package httpx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/blitzforge/linked-roles/internal/domain/linkage"
	apperrors "github.com/blitzforge/linked-roles/internal/errors"
	"github.com/blitzforge/linked-roles/internal/ports"
)

// MembershipServiceInterface defines the interface for role membership operations.
type MembershipServiceInterface interface {
	ApplyRoles(ctx context.Context, userID any, roles []string) (bool, error)
	AssignStaff(ctx context.Context, userID any) error
}

// IdentityLookup resolves a platform identity; used to validate targets of
// administrative commands.
type IdentityLookup interface {
	FetchIdentity(ctx context.Context, cred ports.IdentityCredential) (linkage.Identity, error)
}

// AdminHandlers provides the operator-facing endpoints. Unlike the sync
// pipeline these surface remote and validation errors as structured JSON,
// since a human is the caller.
type AdminHandlers struct {
	Memberships MembershipServiceInterface
	Sync        SyncServiceInterface
	Identities  IdentityLookup
	Logger      *slog.Logger
}

func (h *AdminHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// addUserRequest is the body of POST /admin/add-user. Username is accepted
// for operator convenience but membership is keyed by ID alone.
type addUserRequest struct {
	UserID   any      `json:"userId"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// AddUser reconciles a user's staff membership against a role list: a staff
// spelling grants it, anything else (including an empty or absent list)
// revokes it. Always answers 200.
// POST /admin/add-user {"userId": ..., "roles": [...]}.
func (h *AdminHandlers) AddUser(w http.ResponseWriter, r *http.Request) {
	var req addUserRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	userID := linkage.CanonicalUserID(req.UserID)
	isStaff, err := h.Memberships.ApplyRoles(r.Context(), userID, req.Roles)
	if err != nil {
		// Membership reconciliation is the point of this endpoint; a store
		// failure is worth logging even though the contract answers 200.
		h.logger().ErrorContext(r.Context(), "apply roles failed", "user_id", userID, "error", err)
	}

	// Keep the platform record in step with the new membership.
	h.Sync.Synchronize(r.Context(), userID)

	WriteJSON(w, http.StatusOK, map[string]any{"status": "ok", "is_staff": isStaff})
}

// addRoleRequest is the body of POST /discord/commands/add-role.
type addRoleRequest struct {
	UserID any    `json:"userId"`
	Role   string `json:"role"`
}

// commandError writes the structured error shape used by command endpoints.
func commandError(w http.ResponseWriter, code int, message string) {
	WriteJSON(w, code, map[string]any{"success": false, "error": message})
}

// AddRoleCommand grants the staff role to a platform user after validating
// the caller's bot token and the target's existence.
// POST /discord/commands/add-role {"userId": ..., "role": "staff"}.
//
// Distinct status codes per failure class: 400 bad parameters, 401 missing
// authorization, 404 unknown user, 502 invalid provider response, 500 rest.
func (h *AdminHandlers) AddRoleCommand(w http.ResponseWriter, r *http.Request) {
	var req addRoleRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	userID := linkage.CanonicalUserID(req.UserID)
	if userID == "" || req.Role == "" {
		commandError(w, http.StatusBadRequest, "userId and role parameters are required")
		return
	}
	if !linkage.IsStaffRoleName(req.Role) {
		commandError(w, http.StatusBadRequest,
			fmt.Sprintf("invalid role %q; valid roles: staff, %s", req.Role, linkage.StaffRole))
		return
	}

	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bot ") {
		commandError(w, http.StatusUnauthorized, "bot authorization required")
		return
	}
	botToken := strings.TrimPrefix(auth, "Bot ")

	identity, err := h.Identities.FetchIdentity(r.Context(), ports.IdentityCredential{
		BotToken: botToken,
		UserID:   userID,
	})
	if err != nil {
		h.writeLookupError(w, r, err)
		return
	}

	if err := h.Memberships.AssignStaff(r.Context(), userID); err != nil {
		h.logger().ErrorContext(r.Context(), "assign staff failed", "user_id", userID, "error", err)
		commandError(w, http.StatusInternalServerError, "failed to grant role")
		return
	}

	h.Sync.Synchronize(r.Context(), userID)

	WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("granted %s to %s", req.Role, identity.Username),
	})
}

func (h *AdminHandlers) writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrCodeInvalidResponse):
		commandError(w, http.StatusBadGateway, "invalid response from platform")
	case apperrors.Is(err, apperrors.ErrCodeMalformedIdentity),
		apperrors.RemoteStatus(err) == http.StatusNotFound:
		commandError(w, http.StatusNotFound, "platform user not found or incomplete")
	default:
		h.logger().ErrorContext(r.Context(), "identity lookup failed", "error", err)
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == apperrors.ErrCodeRemoteAuth {
			commandError(w, http.StatusBadGateway, "platform rejected the lookup")
			return
		}
		commandError(w, http.StatusInternalServerError, "identity lookup failed")
	}
}
