package crypto

import (
	"strings"
	"testing"
)

func TestArgon2_Hash(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{name: "simple", password: "secret1"},
		{name: "empty password", password: ""},
		{name: "long password", password: strings.Repeat("a", 128)},
		{name: "special chars", password: "p@ssw0rd!#$%"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			a := NewArgon2()

			hash, err := a.Hash(test.password)
			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}

			if !strings.HasPrefix(hash, "$argon2id$") {
				t.Errorf("Hash() = %q, want $argon2id$ prefix", hash)
			}
			if len(strings.Split(hash, "$")) != 6 {
				t.Errorf("Hash() should encode 6 $-separated parts, got %q", hash)
			}
		})
	}
}

func TestArgon2_Hash_SaltsAreUnique(t *testing.T) {
	a := NewArgon2()

	hash1, err := a.Hash("samePassword")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	hash2, err := a.Hash("samePassword")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if hash1 == hash2 {
		t.Error("two hashes of the same password should differ by salt")
	}
}

func TestArgon2_Verify(t *testing.T) {
	tests := []struct {
		name     string
		password string
		attempt  string
		wantOk   bool
	}{
		{name: "correct password", password: "secret1", attempt: "secret1", wantOk: true},
		{name: "wrong password", password: "secret1", attempt: "secret2", wantOk: false},
		{name: "case sensitive", password: "Secret1", attempt: "secret1", wantOk: false},
		{name: "extra character", password: "secret1", attempt: "secret1x", wantOk: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			a := NewArgon2()
			hash, err := a.Hash(test.password)
			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}

			ok, err := a.Verify(test.attempt, hash)
			if err != nil {
				t.Fatalf("Verify() error = %v", err)
			}
			if ok != test.wantOk {
				t.Errorf("Verify() = %v, want %v", ok, test.wantOk)
			}
		})
	}
}

func TestArgon2_Verify_InvalidHashes(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{name: "empty", hash: ""},
		{name: "not a phc string", hash: "deadbeef"},
		{name: "too few parts", hash: "$argon2id$v=19$m=65536,t=3,p=2$salt"},
		{name: "unsupported algorithm", hash: "$argon2i$v=19$m=65536,t=3,p=2$salt$hash"},
		{name: "bad salt encoding", hash: "$argon2id$v=19$m=65536,t=3,p=2$!!!$aGFzaA"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			a := NewArgon2()

			if _, err := a.Verify("password", test.hash); err == nil {
				t.Errorf("Verify() should reject %s", test.name)
			}
		})
	}
}
