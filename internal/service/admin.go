package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sakif/krishi-mitra/internal/apperror"
	"github.com/sakif/krishi-mitra/internal/model"
	"github.com/sakif/krishi-mitra/internal/repository"
)

// AdminService implements the privileged operations behind the admin
// routes. Authorization itself (is the caller an admin?) happens in the
// middleware; this layer enforces the remaining rules, chiefly that the
// reserved admin account is undeletable.
type AdminService struct {
	users  repository.UserRepository
	chats  repository.ChatRepository
	logger *slog.Logger
}

// NewAdminService creates an AdminService.
func NewAdminService(users repository.UserRepository, chats repository.ChatRepository, logger *slog.Logger) *AdminService {
	return &AdminService{users: users, chats: chats, logger: logger}
}

// ListUsers returns every account. Unpaginated and O(n) over all users
// by contract — see repository.UserRepository.ListAll.
func (s *AdminService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.ListAll(ctx)
}

// DeleteUser removes an account by username.
//
// The reserved "admin" account always fails with Forbidden — even when
// admin asks to delete itself. Everything else: NotFound when absent,
// success otherwise.
func (s *AdminService) DeleteUser(ctx context.Context, username string) error {
	if strings.EqualFold(username, model.AdminUsername) {
		return apperror.Forbidden("Cannot delete the admin user.")
	}

	if err := s.users.Delete(ctx, username); err != nil {
		return err
	}

	s.logger.Info("user deleted by admin", slog.String("username", username))
	return nil
}

// Stats are the aggregate counters shown on the admin dashboard.
type Stats struct {
	TotalUsers        int `json:"totalUsers"`
	TotalChatSessions int `json:"totalChatSessions"`
}

// GetStats returns user and chat-session totals.
func (s *AdminService) GetStats(ctx context.Context) (*Stats, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	chats, err := s.chats.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{TotalUsers: users, TotalChatSessions: chats}, nil
}
