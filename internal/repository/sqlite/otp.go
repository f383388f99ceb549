package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sakif/krishi-mitra/internal/apperror"
	"github.com/sakif/krishi-mitra/internal/model"
	"github.com/sakif/krishi-mitra/internal/repository"
)

// OTPStore is the OTP-code view of the database. It is a distinct type
// so its Upsert/Delete methods don't collide with the user and chat
// methods that share the same underlying connection.
type OTPStore DB

// OTPs returns the OTP-code view of the database.
func (db *DB) OTPs() *OTPStore { return (*OTPStore)(db) }

// compile-time check that *OTPStore implements repository.OTPRepository
var _ repository.OTPRepository = (*OTPStore)(nil)

// Upsert stores an OTP record, replacing any prior one for the account.
//
// INSERT OR REPLACE works here because username is the primary key: a
// second request for the same account discards the earlier, unconsumed
// code rather than leaving two valid codes in flight.
func (db *OTPStore) Upsert(ctx context.Context, code *model.OTPCode) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT OR REPLACE INTO otp_codes (username, code, issued_at)
		 VALUES (?, ?, ?)`,
		strings.ToLower(code.Username), code.Code, code.IssuedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: upserting otp for %q: %w", code.Username, err)
	}
	return nil
}

// Get returns the active OTP record for the account, or ErrNotFound.
func (db *OTPStore) Get(ctx context.Context, username string) (*model.OTPCode, error) {
	var c model.OTPCode
	err := db.conn.QueryRowContext(ctx,
		`SELECT username, code, issued_at FROM otp_codes WHERE username = ?`,
		strings.ToLower(username),
	).Scan(&c.Username, &c.Code, &c.IssuedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("otp", username)
		}
		return nil, fmt.Errorf("sqlite: getting otp for %q: %w", username, err)
	}
	return &c, nil
}

// Delete removes the OTP record for the account. Deleting a missing
// record is not an error — verification and supersession both call this
// unconditionally.
func (db *OTPStore) Delete(ctx context.Context, username string) error {
	_, err := db.conn.ExecContext(ctx,
		`DELETE FROM otp_codes WHERE username = ?`, strings.ToLower(username),
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting otp for %q: %w", username, err)
	}
	return nil
}
