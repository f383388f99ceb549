package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sakif/krishi-mitra/internal/model"
	"github.com/sakif/krishi-mitra/internal/repository"
)

// ChatStore is the chat-session view of the database. It is a distinct
// type so its Upsert/Delete/Count methods don't collide with the user
// and OTP methods that share the same underlying connection.
type ChatStore DB

// Chats returns the chat-session view of the database.
func (db *DB) Chats() *ChatStore { return (*ChatStore)(db) }

// compile-time check that *ChatStore implements repository.ChatRepository
var _ repository.ChatRepository = (*ChatStore)(nil)

// ListByUser returns all sessions owned by username, most recent first.
//
// The ordering is applied on every read (ORDER BY, not a maintained
// index structure) — saves can arrive with arbitrary client timestamps,
// so the sort has to happen at query time anyway.
func (db *ChatStore) ListByUser(ctx context.Context, username string) ([]model.ChatSession, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, username, title, timestamp, messages
		 FROM chats WHERE username = ?
		 ORDER BY timestamp DESC`,
		username,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing chats for %q: %w", username, err)
	}
	defer rows.Close()

	sessions := []model.ChatSession{}
	for rows.Next() {
		var s model.ChatSession
		var messages string
		if err := rows.Scan(&s.ID, &s.Username, &s.Title, &s.Timestamp, &messages); err != nil {
			return nil, fmt.Errorf("sqlite: scanning chat row: %w", err)
		}
		if err := json.Unmarshal([]byte(messages), &s.Messages); err != nil {
			return nil, fmt.Errorf("sqlite: decoding messages for chat %q: %w", s.ID, err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating chats: %w", err)
	}

	return sessions, nil
}

// Upsert inserts or replaces the session keyed by (ID, Username).
//
// The whole session — messages included — is replaced in one write.
// Messages are serialized to a JSON column: they are only ever read or
// written as part of the owning session, so a separate messages table
// would buy nothing but joins.
func (db *ChatStore) Upsert(ctx context.Context, session *model.ChatSession) error {
	messages, err := json.Marshal(session.Messages)
	if err != nil {
		return fmt.Errorf("sqlite: encoding messages for chat %q: %w", session.ID, err)
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO chats (id, username, title, timestamp, messages)
		 VALUES (?, ?, ?, ?, ?)`,
		session.ID, session.Username, session.Title, session.Timestamp, string(messages),
	)
	if err != nil {
		return fmt.Errorf("sqlite: upserting chat %q: %w", session.ID, err)
	}

	return nil
}

// Delete removes the session matching both id and owner. Nothing
// matching is fine — the operation is idempotent by contract.
func (db *ChatStore) Delete(ctx context.Context, id, username string) error {
	_, err := db.conn.ExecContext(ctx,
		`DELETE FROM chats WHERE id = ? AND username = ?`, id, username,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting chat %q: %w", id, err)
	}
	return nil
}

// DeleteAll removes every session owned by username.
func (db *ChatStore) DeleteAll(ctx context.Context, username string) error {
	_, err := db.conn.ExecContext(ctx,
		`DELETE FROM chats WHERE username = ?`, username,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting chats for %q: %w", username, err)
	}
	return nil
}

// Count returns the total number of sessions across all users.
// Used by the admin stats endpoint.
func (db *ChatStore) Count(ctx context.Context) (int, error) {
	var n int
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM chats`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting chats: %w", err)
	}
	return n, nil
}
