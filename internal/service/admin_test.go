package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/krishi-mitra/internal/apperror"
	"github.com/sakif/krishi-mitra/internal/model"
)

func newTestAdminService(t *testing.T) (*AdminService, *fakeUserRepo, *fakeChatRepo) {
	t.Helper()
	users := newFakeUserRepo()
	chats := newFakeChatRepo()
	svc := NewAdminService(users, chats, slog.New(slog.DiscardHandler))
	return svc, users, chats
}

func TestAdminDeleteUser(t *testing.T) {
	svc, users, _ := newTestAdminService(t)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &model.User{Username: "farmer", PasswordHash: "x"}))

	require.NoError(t, svc.DeleteUser(ctx, "Farmer"))
	_, err := users.GetByUsername(ctx, "farmer")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestAdminDeleteUser_ReservedAdminAlwaysForbidden(t *testing.T) {
	svc, users, _ := newTestAdminService(t)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &model.User{
		Username: model.AdminUsername, Role: model.RoleAdmin, PasswordHash: "x",
	}))

	// Forbidden in any casing, even when admin targets itself.
	for _, name := range []string{"admin", "Admin", "ADMIN"} {
		err := svc.DeleteUser(ctx, name)
		assert.ErrorIs(t, err, apperror.ErrForbidden, "DeleteUser(%q)", name)
	}

	// The account is still there.
	_, err := users.GetByUsername(ctx, "admin")
	assert.NoError(t, err)
}

func TestAdminDeleteUser_NotFound(t *testing.T) {
	svc, _, _ := newTestAdminService(t)

	err := svc.DeleteUser(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestAdminStats(t *testing.T) {
	svc, users, chats := newTestAdminService(t)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &model.User{Username: "farmer", PasswordHash: "x"}))
	require.NoError(t, users.Create(ctx, &model.User{Username: "gardener", PasswordHash: "x"}))
	require.NoError(t, chats.Upsert(ctx, &model.ChatSession{ID: "s1", Username: "farmer"}))

	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalUsers)
	assert.Equal(t, 1, stats.TotalChatSessions)
}

func TestAdminListUsers(t *testing.T) {
	svc, users, _ := newTestAdminService(t)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &model.User{Username: "farmer", PasswordHash: "x"}))
	require.NoError(t, users.Create(ctx, &model.User{Username: "gardener", PasswordHash: "x"}))

	list, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
