// Package auth provides token issuance, password hashing, and the HTTP
// middleware that turns a bearer token back into a user record.
//
// AUTHENTICATION FLOW OVERVIEW:
// 1. User signs up with username + password → bcrypt hash stored
// 2. User logs in → server verifies the hash and issues a JWT access token
// 3. Client sends "Authorization: Bearer <token>" on every protected call
// 4. Middleware validates the signature/expiry and resolves the subject
//    (the username) to a live user record from the credential store
//
// The token is stateless and self-contained: there is no server-side
// session table and no revocation list. Validity means exactly three
// things — well-formed, signature valid, not expired. Logout is the
// client discarding its copy; an issued token stays technically valid
// until its expiry passes.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the access-token lifetime: one week.
//
// A week is long for an access token with no revocation mechanism, but
// it is the contract this API has always had with its clients (rural
// connectivity makes frequent re-login painful). Shortening it requires
// adding a refresh flow first.
const DefaultTokenTTL = 7 * 24 * time.Hour

// TokenConfig is the immutable configuration for the token issuer.
// Loaded once in main and passed to NewTokenService — the secret and TTL
// are deliberately not package-level state.
type TokenConfig struct {
	// Secret is the HMAC signing key. At least 16 bytes; generate with
	// something like `openssl rand -hex 32`.
	Secret string
	// TTL is how long issued tokens remain valid. Zero means DefaultTokenTTL.
	TTL time.Duration
}

// TokenService creates and validates signed bearer tokens.
//
// Tokens are HS256 JWTs whose Subject claim carries the username. The
// same secret signs and verifies — keep it out of the repository and
// rotate it by restarting with a new JWT_SECRET (which invalidates all
// outstanding tokens, the only "revocation" this design has).
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService from the given config.
func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if len(cfg.Secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(cfg.Secret), ttl: ttl}, nil
}

// claims is the JWT payload. jwt.RegisteredClaims provides the standard
// fields (Subject, ExpiresAt, IssuedAt, Issuer); we store the username
// in Subject, the conventional "who does this token belong to" claim.
type claims struct {
	jwt.RegisteredClaims
}

const issuer = "krishi-mitra"

// Generate creates and signs a new access token for the given username.
// Expiry is issuance time plus the configured TTL.
func (s *TokenService) Generate(username string) (string, error) {
	return s.GenerateWithDuration(username, s.ttl)
}

// GenerateWithDuration creates a token with a custom expiry duration.
// Used by tests to mint already-expired tokens.
func (s *TokenService) GenerateWithDuration(username string, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a token string and returns the username
// it was issued for.
//
// Checks performed (by the jwt library, configured below):
//   - signature is valid and the algorithm is HS256 — pinning the
//     algorithm blocks "alg confusion" attacks where an attacker swaps
//     in "none" or an asymmetric scheme
//   - expiry is present and in the future
//   - issuer matches ours, so tokens minted by other apps sharing a
//     secret by accident don't validate here
//
// Note that a valid token does NOT guarantee the user still exists —
// the middleware does that lookup separately.
func (s *TokenService) Validate(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("auth: token expired")
		}
		return "", fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("auth: invalid token claims")
	}

	if c.Subject == "" {
		return "", fmt.Errorf("auth: token has no subject")
	}

	return c.Subject, nil
}
