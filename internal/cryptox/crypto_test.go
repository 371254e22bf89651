package cryptox

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"testing"
)

func TestDerivePasswordHash_Deterministic(t *testing.T) {
	password := []byte("Password1")
	salt := make([]byte, SaltSize)
	for i := range salt {
		salt[i] = byte(i)
	}

	key1 := DerivePasswordHash(password, salt)
	key2 := DerivePasswordHash(password, salt)

	if !bytes.Equal(key1, key2) {
		t.Errorf("expected same result for same inputs, got different")
	}
	if len(key1) != HashSize {
		t.Fatalf("expected %d bytes, got %d", HashSize, len(key1))
	}

	// PBKDF2-HMAC-SHA512, 10000 iterations, 20 bytes
	expectedHex := "83320ebd8257fab3f0c3f63e9015081bdea1ff2d"
	if hex.EncodeToString(key1) != expectedHex {
		t.Errorf("expected %s, got %s", expectedHex, hex.EncodeToString(key1))
	}
}

func TestDerivePasswordHash_DifferentSalts(t *testing.T) {
	password := []byte("secret-password")

	salt1, err := NewSalt()
	if err != nil {
		t.Fatalf("NewSalt error: %v", err)
	}
	salt2, err := NewSalt()
	if err != nil {
		t.Fatalf("NewSalt error: %v", err)
	}

	if bytes.Equal(DerivePasswordHash(password, salt1), DerivePasswordHash(password, salt2)) {
		t.Errorf("expected different results for different salts, got same")
	}
}

func TestDerivePasswordHash_DifferentPasswords(t *testing.T) {
	salt := []byte("0123456789abcdef")

	if bytes.Equal(DerivePasswordHash([]byte("Password1"), salt), DerivePasswordHash([]byte("Password2"), salt)) {
		t.Errorf("expected different results for different passwords, got same")
	}
}

func TestNewSalt_Length(t *testing.T) {
	salt, err := NewSalt()
	if err != nil {
		t.Fatalf("NewSalt error: %v", err)
	}
	if len(salt) != SaltSize {
		t.Fatalf("expected %d bytes, got %d", SaltSize, len(salt))
	}
}

func TestNewToken_OpaqueAndDistinct(t *testing.T) {
	a, err := NewToken()
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}
	b, err := NewToken()
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}
	if a == b {
		t.Fatalf("two tokens are identical: %q", a)
	}

	raw, err := base64.StdEncoding.DecodeString(a)
	if err != nil {
		t.Fatalf("token is not base64: %v", err)
	}
	if len(raw) != TokenSize {
		t.Fatalf("expected %d token bytes, got %d", TokenSize, len(raw))
	}
}

func TestCompareHash(t *testing.T) {
	tests := []struct {
		name string
		a, b []byte
		want bool
	}{
		{"equal", []byte{1, 2, 3}, []byte{1, 2, 3}, true},
		{"differs in last byte", []byte{1, 2, 3}, []byte{1, 2, 4}, false},
		{"prefix", []byte{1, 2, 3}, []byte{1, 2}, false},
		{"empty vs non-empty", nil, []byte{1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompareHash(tt.a, tt.b); got != tt.want {
				t.Fatalf("CompareHash(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
