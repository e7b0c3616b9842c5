package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHashAndVerify(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	digest, err := h.Hash("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", digest)

	assert.True(t, h.Verify("password123", digest))
	assert.False(t, h.Verify("password124", digest))
	assert.False(t, h.NeedsRehash(digest))

	other, err := h.Hash("password123")
	require.NoError(t, err)
	assert.NotEqual(t, digest, other, "digests are salted")
}

func TestLegacyDigestVerifiesAndNeedsRehash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	legacy := LegacyDigest("customer123")

	assert.Len(t, legacy, 64)
	assert.True(t, h.Verify("customer123", legacy))
	assert.False(t, h.Verify("customer12", legacy))
	assert.True(t, h.NeedsRehash(legacy))
}

func TestVerifyRejectsEmptyDigest(t *testing.T) {
	h := NewBcryptHasher(0)
	assert.False(t, h.Verify("", ""))
}

func TestNeedsRehashOnCostIncrease(t *testing.T) {
	weak, err := NewBcryptHasher(bcrypt.MinCost).Hash("tech123")
	require.NoError(t, err)

	assert.True(t, NewBcryptHasher(bcrypt.MinCost+1).NeedsRehash(weak))
}
