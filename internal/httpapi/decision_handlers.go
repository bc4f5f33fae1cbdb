package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"openconext.org/invite/internal/access"
	"openconext.org/invite/internal/audit"
	"openconext.org/invite/internal/authority"
	"openconext.org/invite/internal/manage"
)

type highestAuthorityRequest struct {
	User              *access.User `json:"user"`
	ForceApplications bool         `json:"forceApplications"`
}

type userAllowedRequest struct {
	MinimalAuthority authority.Authority `json:"minimalAuthority"`
	User             *access.User        `json:"user"`
}

type invitationAuthoritiesRequest struct {
	User  *access.User     `json:"user"`
	Roles []access.RoleRef `json:"roles"`
}

type userRoleDecisionRequest struct {
	User            *access.User     `json:"user"`
	UserRole        *access.UserRole `json:"userRole"`
	DeleteAction    bool             `json:"deleteAction"`
	TargetGuestRole bool             `json:"targetGuestRole"`
}

type invitationDeleteRequest struct {
	User       *access.User       `json:"user"`
	Invitation *access.Invitation `json:"invitation"`
}

type roleEditRequest struct {
	User *access.User `json:"user"`
	Role *access.Role `json:"role"`
}

type roleOptionsRequest struct {
	User          *access.User   `json:"user"`
	Roles         []*access.Role `json:"roles"`
	Locale        string         `json:"locale"`
	MultipleLabel string         `json:"multipleLabel"`
	Conjunction   string         `json:"conjunction"`
	SortKey       string         `json:"sortKey"`
	Reversed      bool           `json:"reversed"`
}

func (a *API) handleHighestAuthority(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req highestAuthorityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.User == nil {
		writeError(w, r, http.StatusBadRequest, "user is required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"authority": access.HighestAuthority(req.User, req.ForceApplications),
	})
}

func (a *API) handleUserAllowed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req userAllowedRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.User == nil {
		writeError(w, r, http.StatusBadRequest, "user is required")
		return
	}
	allowed, err := access.IsUserAllowed(req.MinimalAuthority, req.User)
	if err != nil {
		handleDecisionError(w, r, err)
		return
	}
	audit.Decision(r.Context(), "user-allowed", allowed, map[string]any{
		"subject": req.User.ID,
		"minimal": req.MinimalAuthority,
	})
	writeJSON(w, http.StatusOK, map[string]any{"allowed": allowed})
}

func (a *API) handleInvitationAuthorities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req invitationAuthoritiesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.User == nil {
		writeError(w, r, http.StatusBadRequest, "user is required")
		return
	}
	authorities := access.AllowedAuthoritiesForInvitation(req.User, req.Roles)
	writeJSON(w, http.StatusOK, map[string]any{"authorities": authorities})
}

func (a *API) handleUserRoleDecision(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req userRoleDecisionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.User == nil || req.UserRole == nil {
		writeError(w, r, http.StatusBadRequest, "user and userRole are required")
		return
	}
	allowed := access.AllowedToRenewUserRole(req.User, req.UserRole, req.DeleteAction, req.TargetGuestRole)
	audit.Decision(r.Context(), "user-role", allowed, map[string]any{
		"subject":         req.User.ID,
		"targetAuthority": req.UserRole.Authority,
		"deleteAction":    req.DeleteAction,
		"targetGuestRole": req.TargetGuestRole,
	})
	writeJSON(w, http.StatusOK, map[string]any{"allowed": allowed})
}

func (a *API) handleInvitationDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req invitationDeleteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.User == nil || req.Invitation == nil {
		writeError(w, r, http.StatusBadRequest, "user and invitation are required")
		return
	}
	allowed := access.AllowedToDeleteInvitation(req.User, req.Invitation)
	audit.Decision(r.Context(), "invitation-delete", allowed, map[string]any{
		"subject":           req.User.ID,
		"intendedAuthority": req.Invitation.IntendedAuthority,
	})
	writeJSON(w, http.StatusOK, map[string]any{"allowed": allowed})
}

func (a *API) handleRoleEdit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req roleEditRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.User == nil || req.Role == nil {
		writeError(w, r, http.StatusBadRequest, "user and role are required")
		return
	}
	allowed := access.AllowedToEditRole(req.User, req.Role)
	audit.Decision(r.Context(), "role-edit", allowed, map[string]any{
		"subject": req.User.ID,
		"role":    req.Role.ID,
	})
	writeJSON(w, http.StatusOK, map[string]any{"allowed": allowed})
}

func (a *API) handleRoleOptions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req roleOptionsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.User == nil {
		writeError(w, r, http.StatusBadRequest, "user is required")
		return
	}
	locale := strings.TrimSpace(req.Locale)
	if locale == "" {
		locale = a.locale
	}
	multipleLabel := req.MultipleLabel
	if multipleLabel == "" {
		multipleLabel = "Multiple applications"
	}
	conjunction := req.Conjunction
	if conjunction == "" {
		conjunction = "and"
	}
	sortKey := req.SortKey
	if sortKey == "" {
		sortKey = "name"
	}
	options := access.MarkAndFilterRoles(req.User, req.Roles, locale, multipleLabel, conjunction, sortKey, req.Reversed)
	writeJSON(w, http.StatusOK, map[string]any{"options": options})
}

func (a *API) handleCatalogApplication(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	if a.catalog == nil {
		writeError(w, r, http.StatusServiceUnavailable, "catalog unavailable")
		return
	}
	manageID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/catalog/applications/"), "/")
	if manageID == "" || strings.Contains(manageID, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	entity, err := a.catalog.Application(r.Context(), manageID)
	if err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "catalog unavailable")
		return
	}
	writeJSON(w, http.StatusOK, entity)
}

func handleDecisionError(w http.ResponseWriter, r *http.Request, err error) {
	var invalid *authority.InvalidAuthorityError
	switch {
	case errors.As(err, &invalid):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":     "invalid_authority",
			"authority": invalid.Value,
		})
	case errors.Is(err, manage.ErrCatalogUnavailable):
		writeError(w, r, http.StatusServiceUnavailable, "catalog unavailable")
	default:
		writeError(w, r, http.StatusInternalServerError, "decision failed")
	}
}
