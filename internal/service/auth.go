// Package service contains the business logic layer of the application.
//
// The layering follows the usual chain: handlers parse HTTP and write
// responses, services enforce the rules, repositories talk to storage.
// Services accept primitives and domain structs — never *http.Request —
// and return apperror values that the handler layer maps to status
// codes.
package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/sakif/krishi-mitra/internal/apperror"
	"github.com/sakif/krishi-mitra/internal/auth"
	"github.com/sakif/krishi-mitra/internal/model"
	"github.com/sakif/krishi-mitra/internal/repository"
)

// OTPValidity is the window within which an issued reset code is
// accepted. Issued at T, a code passes verification strictly before
// T+300s and fails at or after it.
const OTPValidity = 300 * time.Second

// otpDigits is the length of the numeric reset code. Four digits is
// weak by SMS-OTP standards, but it is the contract the clients already
// implement.
const otpDigits = 4

// AuthService handles accounts: signup, login, profile, and the
// OTP-based password-reset flow.
//
// now is an injected clock so the OTP expiry window is testable without
// sleeping; production wiring passes nil and gets time.Now.
type AuthService struct {
	users     repository.UserRepository
	otps      repository.OTPRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
	now       func() time.Time
}

// NewAuthService creates an AuthService with all required dependencies.
// Pass nil for now to use the real clock.
func NewAuthService(
	users repository.UserRepository,
	otps repository.OTPRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
	now func() time.Time,
) *AuthService {
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		users:     users,
		otps:      otps,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
		now:       now,
	}
}

// SignupRequest carries the fields a new account is created from.
type SignupRequest struct {
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Gender   string `json:"gender"`
	DOB      string `json:"dob"`
	Address  string `json:"address"`
	District string `json:"district"`
	State    string `json:"state"`
	Country  string `json:"country"`
	Pincode  string `json:"pincode"`
}

// Signup creates a new account. Fails with Conflict when the username
// is already taken (case-insensitively), Validation on empty
// username/password.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*model.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, apperror.ValidationFailed("username", "username is required")
	}
	if req.Password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}

	hash, err := s.passwords.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("service/auth: hashing signup password: %w", err)
	}

	user := &model.User{
		Username:     username,
		FullName:     req.FullName,
		PasswordHash: hash,
		Role:         model.RoleUser,
		Phone:        req.Phone,
		Gender:       req.Gender,
		DOB:          req.DOB,
		Address:      req.Address,
		District:     req.District,
		State:        req.State,
		Country:      req.Country,
		Pincode:      req.Pincode,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user signed up", slog.String("username", user.Username))
	return user, nil
}

// Login verifies credentials and issues an access token.
//
// Both "no such user" and "wrong password" collapse into the same
// Unauthorized error — the response must not reveal which usernames
// exist.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", apperror.Unauthorized("Invalid username or password.")
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return "", apperror.Unauthorized("Invalid username or password.")
	}

	token, err := s.tokens.Generate(user.Username)
	if err != nil {
		return "", fmt.Errorf("service/auth: generating token for %q: %w", user.Username, err)
	}

	s.logger.Info("user logged in", slog.String("username", user.Username))
	return token, nil
}

// OTPIssued is the result of a password-reset request.
//
// Code is returned to the caller directly: there is no SMS channel, so
// the client displays it itself. This is a deliberate simulation
// stand-in, not a bug — but it means anyone who can call this endpoint
// can reset the password of any account with a phone on file. A real
// delivery channel must replace this before the field is removed.
type OTPIssued struct {
	MaskedPhone string
	Code        string
}

// RequestOTP issues a reset code for the account.
//
// Fails NotFound when the user is absent or has no phone on file. A new
// request overwrites any prior unconsumed code for the same account, so
// at most one code is valid at a time.
func (s *AuthService) RequestOTP(ctx context.Context, username string) (*OTPIssued, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil || user.Phone == "" {
		return nil, apperror.NotFound("user", "no account with a registered phone number")
	}

	code, err := generateOTP()
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating otp: %w", err)
	}

	record := &model.OTPCode{
		Username: strings.ToLower(user.Username),
		Code:     code,
		IssuedAt: s.now(),
	}
	if err := s.otps.Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("service/auth: storing otp for %q: %w", user.Username, err)
	}

	s.logger.Info("password reset OTP issued",
		slog.String("username", user.Username),
		slog.String("maskedPhone", maskPhone(user.Phone)),
	)

	return &OTPIssued{
		MaskedPhone: maskPhone(user.Phone),
		Code:        code,
	}, nil
}

// VerifyOTP consumes the reset code for the account.
//
// Success requires a stored record with a matching code AND elapsed time
// since issuance strictly under OTPValidity. Wrong code and expired code
// return the same Validation error — the response deliberately does not
// distinguish them.
func (s *AuthService) VerifyOTP(ctx context.Context, username, code string) error {
	invalid := apperror.ValidationFailed("otp", "Invalid or expired OTP.")

	record, err := s.otps.Get(ctx, strings.ToLower(username))
	if err != nil {
		return invalid
	}
	if record.Code != code {
		return invalid
	}
	if s.now().Sub(record.IssuedAt) >= OTPValidity {
		return invalid
	}

	// Consumed on success — a code verifies exactly once.
	if err := s.otps.Delete(ctx, record.Username); err != nil {
		return fmt.Errorf("service/auth: consuming otp for %q: %w", username, err)
	}

	return nil
}

// ResetPassword rehashes and stores a new password for any existing
// account.
//
// Note: nothing here requires a prior successful VerifyOTP — the
// verify→reset sequencing is enforced only client-side, exactly as in
// the original contract. Closing that gap server-side is a known open
// question, deliberately not fixed silently.
func (s *AuthService) ResetPassword(ctx context.Context, username, newPassword string) error {
	if newPassword == "" {
		return apperror.ValidationFailed("newPassword", "new password is required")
	}

	hash, err := s.passwords.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("service/auth: hashing reset password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, username, hash); err != nil {
		return err
	}

	s.logger.Info("password reset", slog.String("username", username))
	return nil
}

// UpdateProfile applies a partial profile update to the named user and
// returns the updated record. A username change fails with Conflict if
// the new name belongs to a different account.
func (s *AuthService) UpdateProfile(ctx context.Context, username string, update model.ProfileUpdate) (*model.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&user.Username, update.Username)
	apply(&user.FullName, update.FullName)
	apply(&user.Phone, update.Phone)
	apply(&user.Gender, update.Gender)
	apply(&user.DOB, update.DOB)
	apply(&user.Address, update.Address)
	apply(&user.District, update.District)
	apply(&user.State, update.State)
	apply(&user.Country, update.Country)
	apply(&user.Pincode, update.Pincode)

	if user.Username == "" {
		return nil, apperror.ValidationFailed("username", "username must not be empty")
	}

	if err := s.users.Update(ctx, username, user); err != nil {
		return nil, err
	}

	return user, nil
}

// SeedDefaults creates the reserved admin account and a demo farmer
// account when they don't exist yet. Passwords come from the caller
// (env-configured); idempotent across restarts.
func (s *AuthService) SeedDefaults(ctx context.Context, adminPassword, farmerPassword string) error {
	seed := func(user *model.User, password string) error {
		if password == "" {
			return nil // seeding disabled for this account
		}
		if _, err := s.users.GetByUsername(ctx, user.Username); err == nil {
			return nil // already present
		}
		hash, err := s.passwords.Hash(password)
		if err != nil {
			return fmt.Errorf("service/auth: hashing seed password for %q: %w", user.Username, err)
		}
		user.PasswordHash = hash
		if err := s.users.Create(ctx, user); err != nil {
			return fmt.Errorf("service/auth: seeding %q: %w", user.Username, err)
		}
		s.logger.Warn("seeded default account — change its password",
			slog.String("username", user.Username),
		)
		return nil
	}

	admin := &model.User{
		Username: model.AdminUsername,
		FullName: "Admin User",
		Role:     model.RoleAdmin,
		Phone:    "0000000000",
	}
	if err := seed(admin, adminPassword); err != nil {
		return err
	}

	farmer := &model.User{
		Username: "farmer",
		FullName: "Test Farmer",
		Role:     model.RoleUser,
		Phone:    "9876543210",
	}
	return seed(farmer, farmerPassword)
}

// generateOTP returns a uniformly random 4-digit numeric code,
// zero-padded ("0042" is a valid code).
func generateOTP() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < otpDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpDigits, n), nil
}

// maskPhone hides all but the last four digits of a phone number.
func maskPhone(phone string) string {
	if len(phone) <= 4 {
		return phone
	}
	return strings.Repeat("*", 6) + phone[len(phone)-4:]
}
