package password

import (
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	hash, err := Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !Verify("correct horse battery staple", hash) {
		t.Fatal("expected verification to succeed for the right password")
	}
	if Verify("wrong password", hash) {
		t.Fatal("expected verification to fail for the wrong password")
	}
}

func TestHash_DistinctSalts(t *testing.T) {
	t.Parallel()

	h1, err := Hash("secret-password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h2, err := Hash("secret-password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h1 == h2 {
		t.Fatal("expected different salts to produce different hashes")
	}
}

func TestHashToken_Deterministic(t *testing.T) {
	t.Parallel()

	a := HashToken("refresh-token-value")
	b := HashToken("refresh-token-value")
	if a != b {
		t.Fatal("expected identical input to hash identically")
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(a))
	}
	if a == HashToken("other-token") {
		t.Fatal("expected different inputs to hash differently")
	}
}
