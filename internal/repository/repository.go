// Package repository defines the storage interfaces the rest of the
// application programs against. One narrow interface per entity — the
// services see only the operations they need, never the storage engine.
package repository

import (
	"context"

	"github.com/sakif/krishi-mitra/internal/model"
)

// UserRepository is the credential store.
//
// All username matching is case-insensitive: "Farmer" and "farmer" name
// the same account, and uniqueness is enforced on that basis.
type UserRepository interface {
	// Create inserts a new user. Returns apperror.ErrConflict if a
	// case-insensitive username match already exists.
	Create(ctx context.Context, user *model.User) error

	// GetByUsername returns the user whose username matches name
	// case-insensitively, or apperror.ErrNotFound.
	GetByUsername(ctx context.Context, name string) (*model.User, error)

	// Update replaces the stored profile of the user currently named
	// name with the given record (which may carry a new username).
	// Returns apperror.ErrConflict if the new username is taken by a
	// different user, apperror.ErrNotFound if name doesn't resolve.
	Update(ctx context.Context, name string, user *model.User) error

	// UpdatePassword stores a new password hash for the named user.
	UpdatePassword(ctx context.Context, name, passwordHash string) error

	// Delete removes the named user. Returns apperror.ErrNotFound if
	// no case-insensitive match exists.
	Delete(ctx context.Context, name string) error

	// ListAll returns every user record. O(n) over all users with no
	// pagination — acceptable at this scale, and isolated here so
	// pagination can be added without touching callers.
	ListAll(ctx context.Context) ([]model.User, error)

	// Count returns the total number of users.
	Count(ctx context.Context) (int, error)
}

// OTPRepository stores short-lived password-reset codes, at most one per
// account (keyed by lowercase username).
type OTPRepository interface {
	// Upsert stores the code, replacing any prior record for the same
	// username.
	Upsert(ctx context.Context, code *model.OTPCode) error

	// Get returns the active record for the lowercase username, or
	// apperror.ErrNotFound.
	Get(ctx context.Context, username string) (*model.OTPCode, error)

	// Delete removes the record for the lowercase username. Deleting a
	// missing record is not an error.
	Delete(ctx context.Context, username string) error
}

// ChatRepository stores per-user chat sessions.
type ChatRepository interface {
	// ListByUser returns all sessions owned by username, most recent
	// first (ordered by timestamp descending).
	ListByUser(ctx context.Context, username string) ([]model.ChatSession, error)

	// Upsert inserts or replaces the session keyed by (session.ID,
	// session.Username).
	Upsert(ctx context.Context, session *model.ChatSession) error

	// Delete removes the session matching both id and username. A
	// non-matching delete is a no-op, not an error.
	Delete(ctx context.Context, id, username string) error

	// DeleteAll removes every session owned by username.
	DeleteAll(ctx context.Context, username string) error

	// Count returns the total number of sessions across all users.
	Count(ctx context.Context) (int, error)
}
