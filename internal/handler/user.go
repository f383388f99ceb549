package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/krishi-mitra/internal/auth"
	"github.com/sakif/krishi-mitra/internal/model"
	"github.com/sakif/krishi-mitra/internal/service"
)

// UserHandler serves the authenticated user's own profile.
//
//	GET /users/me → current profile
//	PUT /users/me → partial profile update (may rename the account)
type UserHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(auth *service.AuthService, logger *slog.Logger) *UserHandler {
	return &UserHandler{auth: auth, logger: logger}
}

// HandleMe returns the authenticated user's profile.
//
// HTTP: GET /users/me
// The auth middleware already resolved the token to a full user record;
// this is a straight echo of that record.
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		// Unreachable behind RequireAuth, but don't panic if routing changes.
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "valid authentication required"})
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// HandleUpdateMe applies a partial profile update.
//
// HTTP: PUT /users/me
// Fields absent from the body keep their values. Renaming to a username
// held by a different account → 409.
//
// Renaming does NOT reissue the token: the old token's subject no
// longer resolves, so the client must log in again under the new name.
// The clients know this and prompt accordingly.
func (h *UserHandler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "valid authentication required"})
		return
	}

	var update model.ProfileUpdate
	if err := decodeJSON(r, &update); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.auth.UpdateProfile(r.Context(), user.Username, update)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}
