// Package cryptox holds the password key-derivation and random-token
// primitives used by the authentication service.
package cryptox

import (
	"crypto/sha512"
	"crypto/subtle"

	"github.com/dmitrijs2005/auxillary/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

// Key-derivation parameters. Changing any of them invalidates every stored
// password hash, since they are not persisted per user.
const (
	PBKDF2Iterations = 10000
	HashSize         = 20
	SaltSize         = 16
	TokenSize        = 16
)

// DerivePasswordHash runs PBKDF2-HMAC-SHA512 over password and salt and returns
// a HashSize-byte key. Identical inputs always yield identical output.
func DerivePasswordHash(password []byte, salt []byte) []byte {
	return pbkdf2.Key(password, salt, PBKDF2Iterations, HashSize, sha512.New)
}

// NewSalt draws a fresh SaltSize-byte salt from crypto/rand.
func NewSalt() ([]byte, error) {
	return common.GenerateRandByteArray(SaltSize)
}

// NewToken returns an opaque bearer token: TokenSize random bytes, base64-encoded.
func NewToken() (string, error) {
	return common.MakeRandBase64String(TokenSize)
}

// CompareHash reports whether a and b are equal in length and content.
// The running time depends only on the lengths, never on where they differ.
func CompareHash(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
