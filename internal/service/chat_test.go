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

// fakeChatRepo is an in-memory repository.ChatRepository keyed by
// (id, username), mirroring the storage contract.
type fakeChatRepo struct {
	sessions map[[2]string]*model.ChatSession
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{sessions: make(map[[2]string]*model.ChatSession)}
}

func (f *fakeChatRepo) ListByUser(ctx context.Context, username string) ([]model.ChatSession, error) {
	out := []model.ChatSession{}
	for key, s := range f.sessions {
		if key[1] == username {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeChatRepo) Upsert(ctx context.Context, session *model.ChatSession) error {
	copied := *session
	f.sessions[[2]string{session.ID, session.Username}] = &copied
	return nil
}

func (f *fakeChatRepo) Delete(ctx context.Context, id, username string) error {
	delete(f.sessions, [2]string{id, username})
	return nil
}

func (f *fakeChatRepo) DeleteAll(ctx context.Context, username string) error {
	for key := range f.sessions {
		if key[1] == username {
			delete(f.sessions, key)
		}
	}
	return nil
}

func (f *fakeChatRepo) Count(ctx context.Context) (int, error) {
	return len(f.sessions), nil
}

func newTestChatService() (*ChatService, *fakeChatRepo) {
	repo := newFakeChatRepo()
	return NewChatService(repo, slog.New(slog.DiscardHandler)), repo
}

func TestChatSave_StampsOwner(t *testing.T) {
	svc, repo := newTestChatService()
	ctx := context.Background()

	// The client claims the session belongs to someone else; the
	// authenticated identity wins.
	session := &model.ChatSession{ID: "s1", Username: "victim", Title: "spoofed"}
	require.NoError(t, svc.Save(ctx, session, "farmer"))

	assert.Contains(t, repo.sessions, [2]string{"s1", "farmer"})
	assert.NotContains(t, repo.sessions, [2]string{"s1", "victim"})
}

func TestChatSave_RequiresID(t *testing.T) {
	svc, _ := newTestChatService()

	err := svc.Save(context.Background(), &model.ChatSession{}, "farmer")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestChatSave_UpsertsByIDAndOwner(t *testing.T) {
	svc, repo := newTestChatService()
	ctx := context.Background()

	require.NoError(t, svc.Save(ctx, &model.ChatSession{ID: "s1", Title: "first"}, "farmer"))
	require.NoError(t, svc.Save(ctx, &model.ChatSession{ID: "s1", Title: "second"}, "farmer"))

	assert.Len(t, repo.sessions, 1)
	assert.Equal(t, "second", repo.sessions[[2]string{"s1", "farmer"}].Title)

	// Same id under a different owner is a distinct session.
	require.NoError(t, svc.Save(ctx, &model.ChatSession{ID: "s1", Title: "other"}, "gardener"))
	assert.Len(t, repo.sessions, 2)
}

func TestChatDeleteOneAndAll(t *testing.T) {
	svc, repo := newTestChatService()
	ctx := context.Background()

	require.NoError(t, svc.Save(ctx, &model.ChatSession{ID: "s1"}, "farmer"))
	require.NoError(t, svc.Save(ctx, &model.ChatSession{ID: "s2"}, "farmer"))

	// Deleting with the wrong owner is a silent no-op.
	require.NoError(t, svc.DeleteOne(ctx, "s1", "gardener"))
	assert.Len(t, repo.sessions, 2)

	require.NoError(t, svc.DeleteOne(ctx, "s1", "farmer"))
	assert.Len(t, repo.sessions, 1)

	require.NoError(t, svc.DeleteAll(ctx, "farmer"))
	assert.Empty(t, repo.sessions)
}
