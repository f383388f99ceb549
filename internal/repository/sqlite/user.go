package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/krishi-mitra/internal/apperror"
	"github.com/sakif/krishi-mitra/internal/model"
	"github.com/sakif/krishi-mitra/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

const userColumns = `id, username, full_name, password_hash, role,
	phone, gender, dob, address, district, state, country, pincode,
	created_at, updated_at`

// Create inserts a new user record.
//
// Uniqueness is case-insensitive: the username column is COLLATE NOCASE,
// so the UNIQUE constraint itself rejects "Farmer" when "farmer" exists.
// We pre-check with a SELECT anyway to return a clean Conflict error
// rather than parsing driver error strings.
func (db *DB) Create(ctx context.Context, user *model.User) error {
	var existing string
	err := db.conn.QueryRowContext(ctx,
		`SELECT username FROM users WHERE username = ?`, user.Username,
	).Scan(&existing)
	if err == nil {
		return apperror.Conflict("Username already exists. Please choose another.")
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("sqlite: checking username %q: %w", user.Username, err)
	}

	now := time.Now()
	user.ID = xid.New().String()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = model.RoleUser
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.FullName, user.PasswordHash, user.Role,
		user.Phone, user.Gender, user.DOB, user.Address, user.District,
		user.State, user.Country, user.Pincode,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting user %q: %w", user.Username, err)
	}

	return nil
}

// GetByUsername retrieves a user by case-insensitive exact username.
// Returns apperror.ErrNotFound if no account matches.
func (db *DB) GetByUsername(ctx context.Context, name string) (*model.User, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, name,
	)

	user, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", name)
		}
		return nil, fmt.Errorf("sqlite: getting user %q: %w", name, err)
	}

	return user, nil
}

// Update replaces the profile fields of the user currently named name.
//
// A rename is allowed only when the target username is free (or differs
// just in case from the user's own name). The password hash and role are
// not touched here — those have dedicated paths.
func (db *DB) Update(ctx context.Context, name string, user *model.User) error {
	current, err := db.GetByUsername(ctx, name)
	if err != nil {
		return err
	}

	// Rename conflict check: the new name must not belong to a
	// different account. Comparing IDs (not names) lets a user change
	// only the casing of their own username.
	if !strings.EqualFold(current.Username, user.Username) {
		other, err := db.GetByUsername(ctx, user.Username)
		if err == nil && other.ID != current.ID {
			return apperror.Conflict("This username is already taken. Please choose another.")
		}
	}

	user.ID = current.ID
	user.CreatedAt = current.CreatedAt
	user.UpdatedAt = time.Now()

	_, err = db.conn.ExecContext(ctx,
		`UPDATE users SET username = ?, full_name = ?, phone = ?, gender = ?,
			dob = ?, address = ?, district = ?, state = ?, country = ?,
			pincode = ?, updated_at = ?
		 WHERE id = ?`,
		user.Username, user.FullName, user.Phone, user.Gender,
		user.DOB, user.Address, user.District, user.State, user.Country,
		user.Pincode, user.UpdatedAt, user.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating user %q: %w", name, err)
	}

	return nil
}

// UpdatePassword stores a new password hash for the named user.
// Returns apperror.ErrNotFound if no account matches.
func (db *DB) UpdatePassword(ctx context.Context, name, passwordHash string) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE username = ?`,
		passwordHash, time.Now(), name,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating password for %q: %w", name, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: rows affected for %q: %w", name, err)
	}
	if n == 0 {
		return apperror.NotFound("user", name)
	}

	return nil
}

// Delete removes the named user. Returns apperror.ErrNotFound if no
// case-insensitive match exists. The reserved-admin rule lives in the
// service layer, not here.
func (db *DB) Delete(ctx context.Context, name string) error {
	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM users WHERE username = ?`, name,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting user %q: %w", name, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: rows affected for %q: %w", name, err)
	}
	if n == 0 {
		return apperror.NotFound("user", name)
	}

	return nil
}

// ListAll returns every user record, ordered by creation time.
// O(n) over all users — see repository.UserRepository.
func (db *DB) ListAll(ctx context.Context) ([]model.User, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning user row: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating users: %w", err)
	}

	return users, nil
}

// Count returns the total number of user accounts.
func (db *DB) Count(ctx context.Context) (int, error) {
	var n int
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting users: %w", err)
	}
	return n, nil
}

// scanner covers both *sql.Row and *sql.Rows so scanUser works for
// single and multi-row queries.
type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*model.User, error) {
	var u model.User
	err := s.Scan(
		&u.ID, &u.Username, &u.FullName, &u.PasswordHash, &u.Role,
		&u.Phone, &u.Gender, &u.DOB, &u.Address, &u.District,
		&u.State, &u.Country, &u.Pincode,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
