package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

// All tests use the minimum bcrypt cost — the logic under test doesn't
// change with cost, only the runtime does.
func newTestPasswordService() *PasswordService {
	return NewPasswordServiceForTest(bcrypt.MinCost)
}

func TestHashAndVerify(t *testing.T) {
	ps := newTestPasswordService()

	hash, err := ps.Hash("password123")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "password123" {
		t.Fatal("Hash() returned the plaintext")
	}

	if err := ps.Verify(hash, "password123"); err != nil {
		t.Errorf("Verify() with correct password error = %v", err)
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	ps := newTestPasswordService()

	hash, _ := ps.Hash("password123")
	if err := ps.Verify(hash, "wrong-password"); err == nil {
		t.Error("Verify() should fail for a wrong password")
	}
}

func TestHash_SamePasswordDifferentHashes(t *testing.T) {
	ps := newTestPasswordService()

	// The embedded random salt means two hashes of the same password
	// never match.
	hash1, _ := ps.Hash("password123")
	hash2, _ := ps.Hash("password123")

	if hash1 == hash2 {
		t.Error("Hash() produced identical hashes — salt not applied?")
	}
}

func TestHash_RejectsOver72Bytes(t *testing.T) {
	ps := newTestPasswordService()

	_, err := ps.Hash(strings.Repeat("a", 73))
	if err == nil {
		t.Error("Hash() should reject passwords longer than 72 bytes")
	}

	// 72 bytes exactly is fine.
	if _, err := ps.Hash(strings.Repeat("a", 72)); err != nil {
		t.Errorf("Hash() unexpected error for 72-byte password: %v", err)
	}
}

func TestVerify_GarbageHash(t *testing.T) {
	ps := newTestPasswordService()

	if err := ps.Verify("not-a-bcrypt-hash", "password123"); err == nil {
		t.Error("Verify() should fail for a malformed hash")
	}
}
