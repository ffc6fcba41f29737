package passhash_test

import (
	"strings"
	"testing"

	"github.com/safi/checktick/pkg/passhash"
	"github.com/stretchr/testify/assert"
)

func TestHashAndVerify(t *testing.T) {
	password := "test_password_123"
	digest, err := passhash.Hash(password)
	if err != nil {
		t.Fatal(err)
	}
	t.Run("digest is PHC formatted", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(digest, "$argon2id$"))
		assert.NotContains(t, digest, password)
	})
	t.Run("round-trip verifies", func(t *testing.T) {
		ok, err := passhash.Verify(password, digest)
		assert.NoError(t, err)
		assert.True(t, ok)
	})
	t.Run("wrong password fails", func(t *testing.T) {
		ok, err := passhash.Verify("test_password_124", digest)
		assert.NoError(t, err)
		assert.False(t, ok)
	})
	t.Run("salted: same password hashes differently", func(t *testing.T) {
		second, err := passhash.Hash(password)
		assert.NoError(t, err)
		assert.NotEqual(t, digest, second)
	})
}

func TestHashLongPassword(t *testing.T) {
	// Far beyond the 72-byte limit bcrypt-family hashers choke on
	password := strings.Repeat("a-very-long-password!", 20)
	digest, err := passhash.Hash(password)
	if err != nil {
		t.Fatal(err)
	}
	ok, err := passhash.Verify(password, digest)
	assert.NoError(t, err)
	assert.True(t, ok)
	ok, err = passhash.Verify(password+"x", digest)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyInvalidDigest(t *testing.T) {
	_, err := passhash.Verify("whatever", "not-a-digest")
	assert.ErrorIs(t, err, passhash.ErrInvalidDigest)
	_, err = passhash.Verify("whatever", "$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA")
	assert.ErrorIs(t, err, passhash.ErrInvalidDigest)
}
