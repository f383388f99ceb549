package auth

import (
	"strings"
	"testing"
	"time"
)

// newTestTokenService creates a TokenService with a fixed secret so
// tests are deterministic.
func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	ts, err := NewTokenService(TokenConfig{Secret: "test-secret-at-least-16-chars!!"})
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return ts
}

// =========================================================================
// CONSTRUCTION TESTS
// =========================================================================

func TestNewTokenService_ShortSecret(t *testing.T) {
	_, err := NewTokenService(TokenConfig{Secret: "short"})
	if err == nil {
		t.Fatal("NewTokenService() should reject secrets shorter than 16 chars")
	}
}

func TestNewTokenService_DefaultTTL(t *testing.T) {
	ts, err := NewTokenService(TokenConfig{Secret: "this-is-16-chars"})
	if err != nil {
		t.Fatalf("NewTokenService() unexpected error: %v", err)
	}
	if ts.ttl != DefaultTokenTTL {
		t.Errorf("ttl = %v, want the one-week default %v", ts.ttl, DefaultTokenTTL)
	}
}

// =========================================================================
// GENERATE TESTS
// =========================================================================

func TestGenerate_ReturnsWellFormedToken(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.Generate("farmer")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// header.payload.signature
	if parts := strings.Split(token, "."); len(parts) != 3 {
		t.Errorf("Generate() token has %d segments, want 3", len(parts))
	}
}

func TestGenerate_DifferentUsersGetDifferentTokens(t *testing.T) {
	ts := newTestTokenService(t)

	token1, _ := ts.Generate("farmer")
	token2, _ := ts.Generate("gardener")

	if token1 == token2 {
		t.Error("Generate() returned identical tokens for different users")
	}
}

// =========================================================================
// VALIDATE TESTS
// =========================================================================

func TestValidate_RoundTrip(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.Generate("farmer")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	got, err := ts.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got != "farmer" {
		t.Errorf("Validate() username = %q, want %q", got, "farmer")
	}
}

func TestValidate_ExpiredToken(t *testing.T) {
	ts := newTestTokenService(t)

	// Expired one second ago.
	token, err := ts.GenerateWithDuration("farmer", -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateWithDuration() error = %v", err)
	}

	if _, err := ts.Validate(token); err == nil {
		t.Fatal("Validate() should reject an expired token")
	}
}

func TestValidate_TamperedSignature(t *testing.T) {
	ts := newTestTokenService(t)

	// Long-lived token with a flipped signature: expiry is fine, the
	// signature check alone must reject it.
	token, _ := ts.GenerateWithDuration("farmer", 24*time.Hour)
	tampered := token[:len(token)-3] + "xxx"

	if _, err := ts.Validate(tampered); err == nil {
		t.Fatal("Validate() should reject a tampered token regardless of expiry")
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	ts1, _ := NewTokenService(TokenConfig{Secret: "correct-secret-32-chars-long!!!!"})
	ts2, _ := NewTokenService(TokenConfig{Secret: "wrong-secret-32-chars-long!!!!!!"})

	token, _ := ts1.Generate("farmer")

	if _, err := ts2.Validate(token); err == nil {
		t.Fatal("Validate() should fail when using a different secret")
	}
}

func TestValidate_Garbage(t *testing.T) {
	ts := newTestTokenService(t)

	for _, tok := range []string{"", "not.a.jwt.token", "garbage"} {
		if _, err := ts.Validate(tok); err == nil {
			t.Errorf("Validate(%q) should return an error", tok)
		}
	}
}

func TestGenerateWithDuration_FutureToken(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.GenerateWithDuration("farmer", 1*time.Hour)
	if err != nil {
		t.Fatalf("GenerateWithDuration() error = %v", err)
	}

	username, err := ts.Validate(token)
	if err != nil {
		t.Fatalf("Validate() on 1h token error = %v", err)
	}
	if username != "farmer" {
		t.Errorf("username = %q, want %q", username, "farmer")
	}
}
