package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/krishi-mitra/internal/service"
)

// AdminHandler serves the admin panel endpoints. Every route is mounted
// behind both RequireAuth and RequireAdmin.
type AdminHandler struct {
	admin  *service.AdminService
	logger *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(admin *service.AdminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, logger: logger}
}

// HandleListUsers returns every registered account.
//
// HTTP: GET /admin/users
// Password hashes never serialize (json:"-" on the model).
func (h *AdminHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.ListUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// HandleDeleteUser removes an account by username.
//
// HTTP: DELETE /admin/users/{username}
// The reserved admin account cannot be deleted.
func (h *AdminHandler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	if err := h.admin.DeleteUser(r.Context(), username); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// HandleStats returns aggregate platform counts.
//
// HTTP: GET /admin/stats
func (h *AdminHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admin.GetStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
