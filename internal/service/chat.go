package service

import (
	"context"
	"log/slog"

	"github.com/sakif/krishi-mitra/internal/apperror"
	"github.com/sakif/krishi-mitra/internal/model"
	"github.com/sakif/krishi-mitra/internal/repository"
)

// ChatService handles per-user chat history.
//
// Ownership is the whole game here: every operation is scoped to the
// authenticated username, and Save stamps that username onto the record
// regardless of anything the client sent — a session can never be
// written into, read from, or deleted out of another user's history.
type ChatService struct {
	chats  repository.ChatRepository
	logger *slog.Logger
}

// NewChatService creates a ChatService.
func NewChatService(chats repository.ChatRepository, logger *slog.Logger) *ChatService {
	return &ChatService{chats: chats, logger: logger}
}

// List returns all sessions owned by username, most recent first.
func (s *ChatService) List(ctx context.Context, username string) ([]model.ChatSession, error) {
	return s.chats.ListByUser(ctx, username)
}

// Save upserts a session for the authenticated user. An existing
// (session.ID, username) pair is replaced wholesale; otherwise the
// session is inserted.
func (s *ChatService) Save(ctx context.Context, session *model.ChatSession, username string) error {
	if session.ID == "" {
		return apperror.ValidationFailed("id", "session id is required")
	}

	// Anti-spoofing: the owner is always the authenticated identity.
	session.Username = username

	if err := s.chats.Upsert(ctx, session); err != nil {
		return err
	}

	s.logger.Debug("chat session saved",
		slog.String("username", username),
		slog.String("sessionID", session.ID),
		slog.Int("messages", len(session.Messages)),
	)
	return nil
}

// DeleteOne removes the session with the given id if it belongs to
// username. Removing a session that doesn't exist (or isn't theirs)
// succeeds silently.
func (s *ChatService) DeleteOne(ctx context.Context, id, username string) error {
	return s.chats.Delete(ctx, id, username)
}

// DeleteAll removes every session owned by username.
func (s *ChatService) DeleteAll(ctx context.Context, username string) error {
	if err := s.chats.DeleteAll(ctx, username); err != nil {
		return err
	}
	s.logger.Info("chat history cleared", slog.String("username", username))
	return nil
}
