// Package model defines the data structures used throughout the application.
package model

import "time"

// Roles assigned to user accounts.
//
// The original authorization rule was a hard-coded `username == "admin"`
// comparison. We keep that behaviour (the seeded "admin" account gets
// RoleAdmin, everyone created through signup gets RoleUser) but carry it
// as a first-class field so it can grow into real role management without
// touching every call site.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// AdminUsername is the reserved account name. It is seeded at startup,
// carries RoleAdmin, and can never be deleted — not even by itself.
const AdminUsername = "admin"

// User represents a registered account.
//
// Username is the external identity: it appears in JWT subjects, chat
// ownership and OTP records, and is unique case-insensitively ("Farmer"
// and "farmer" are the same account). We still generate an internal xid
// so primary keys survive a username rename.
//
// PasswordHash holds the bcrypt hash and is never serialized — the
// `json:"-"` tag keeps it out of every API response.
//
// The profile fields (phone through pincode) are all optional free-text
// strings; an empty string means "not provided". Phone matters to the
// password-reset flow: an account without one cannot request an OTP.
type User struct {
	ID           string    `json:"-"        db:"id"`
	Username     string    `json:"username" db:"username"`
	FullName     string    `json:"fullName" db:"full_name"`
	PasswordHash string    `json:"-"        db:"password_hash"`
	Role         string    `json:"role"     db:"role"`
	Phone        string    `json:"phone,omitempty"    db:"phone"`
	Gender       string    `json:"gender,omitempty"   db:"gender"`
	DOB          string    `json:"dob,omitempty"      db:"dob"`
	Address      string    `json:"address,omitempty"  db:"address"`
	District     string    `json:"district,omitempty" db:"district"`
	State        string    `json:"state,omitempty"    db:"state"`
	Country      string    `json:"country,omitempty"  db:"country"`
	Pincode      string    `json:"pincode,omitempty"  db:"pincode"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// IsAdmin reports whether the account holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ProfileUpdate carries the mutable profile fields for PUT /users/me.
//
// Pointer fields distinguish "not sent" (nil → keep current value) from
// "sent as empty" (clear the field). This mirrors the partial-update
// semantics of the API: clients send only what changed.
type ProfileUpdate struct {
	Username *string `json:"username"`
	FullName *string `json:"fullName"`
	Phone    *string `json:"phone"`
	Gender   *string `json:"gender"`
	DOB      *string `json:"dob"`
	Address  *string `json:"address"`
	District *string `json:"district"`
	State    *string `json:"state"`
	Country  *string `json:"country"`
	Pincode  *string `json:"pincode"`
}
