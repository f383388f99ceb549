package model

import "time"

// OTPCode is a short-lived one-time code issued for a password reset.
//
// At most one record exists per account: requesting a new code upserts
// over the previous one, and a successful verification deletes it.
// Username is stored lowercased so the record survives whatever casing
// the client used when asking for the reset.
//
// Validity is a fixed window from IssuedAt (see service.OTPValidity);
// expiry is checked at verification time, not enforced by the store.
type OTPCode struct {
	Username string    `json:"username"`
	Code     string    `json:"code"`
	IssuedAt time.Time `json:"issuedAt"`
}
