// Package cryptox hashes user secrets before they touch the local store.
package cryptox

import (
	"github.com/dmitrijs2005/affiliatepro/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	SaltSize = 16
	KeySize  = 32
)

// DeriveKey stretches secret with argon2id using the given salt.
func DeriveKey(secret []byte, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, KeySize)
}

// HashSecret returns a fresh random salt and the argon2id key derived from
// secret with it. The caller stores both; the plaintext is never persisted.
func HashSecret(secret []byte) (salt, hash []byte) {
	salt = common.GenerateRandByteArray(SaltSize)
	return salt, DeriveKey(secret, salt)
}
