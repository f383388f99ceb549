package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/krishi-mitra/internal/auth"
	"github.com/sakif/krishi-mitra/internal/model"
	"github.com/sakif/krishi-mitra/internal/service"
)

// ChatHandler serves the authenticated user's chat history.
//
//	GET    /chats      → all sessions, most recent first
//	POST   /chats      → upsert one session
//	DELETE /chats/{id} → delete one session
//	DELETE /chats      → delete all sessions
type ChatHandler struct {
	chats  *service.ChatService
	logger *slog.Logger
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(chats *service.ChatService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{chats: chats, logger: logger}
}

// HandleList returns every session owned by the authenticated user.
//
// HTTP: GET /chats
func (h *ChatHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	sessions, err := h.chats.List(r.Context(), user.Username)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sessions)
}

// HandleSave upserts a session for the authenticated user.
//
// HTTP: POST /chats
// The body is a whole session (id, title, timestamp, messages). The
// owner is stamped server-side — any username in the payload is ignored.
func (h *ChatHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	var session model.ChatSession
	if err := decodeJSON(r, &session); err != nil {
		writeError(w, err)
		return
	}

	if err := h.chats.Save(r.Context(), &session, user.Username); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// HandleDelete removes one session by id.
//
// HTTP: DELETE /chats/{id}
// Succeeds whether or not anything matched — deleting an already-gone
// session is not worth a 404 to a client that just wants it gone.
func (h *ChatHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	id := r.PathValue("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: "session id is required"})
		return
	}

	if err := h.chats.DeleteOne(r.Context(), id, user.Username); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// HandleDeleteAll removes the user's entire history.
//
// HTTP: DELETE /chats
func (h *ChatHandler) HandleDeleteAll(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	if err := h.chats.DeleteAll(r.Context(), user.Username); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
