// Package passhash implements the two-stage credential hasher: the raw
// password is reduced with SHA-256 to a bounded hex string, which is then fed
// to Argon2id. The stored digest is the standard PHC string embedding salt
// and parameters, so verification never depends on current defaults.
package passhash

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	memory      uint32 = 64 * 1024
	iterations  uint32 = 3
	parallelism uint8  = 2
	saltLength  uint32 = 16
	keyLength   uint32 = 32
)

var ErrInvalidDigest = errors.New("invalid password digest format")

// prehash bounds arbitrarily long input before the memory-hard stage.
// Not a security boundary on its own.
func prehash(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.New("generating salt error: " + err.Error())
	}
	key := argon2.IDKey([]byte(prehash(password)), salt, iterations, memory, parallelism, keyLength)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, memory, iterations, parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify re-applies both stages using the parameters embedded in digest and
// compares in constant time.
func Verify(password, digest string) (bool, error) {
	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, ErrInvalidDigest
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false, ErrInvalidDigest
	}
	var m, t uint32
	var p uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &m, &t, &p); err != nil {
		return false, ErrInvalidDigest
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, ErrInvalidDigest
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, ErrInvalidDigest
	}
	candidate := argon2.IDKey([]byte(prehash(password)), salt, t, m, p, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, candidate) == 1, nil
}
