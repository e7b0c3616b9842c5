// Package auth hashes and verifies account passwords.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

type PasswordHasher interface {
	Hash(plainTextPassword string) (string, error)
	Verify(plainTextPassword, digest string) bool
	NeedsRehash(digest string) bool
}

// BcryptHasher produces bcrypt digests. It still verifies unsalted SHA-256
// hex digests written by older data files so those accounts can log in once
// and be upgraded.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plainTextPassword string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), h.cost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}
	return string(digest), nil
}

func (h *BcryptHasher) Verify(plainTextPassword, digest string) bool {
	if digest == "" {
		return false
	}
	if isLegacyDigest(digest) {
		return subtle.ConstantTimeCompare([]byte(LegacyDigest(plainTextPassword)), []byte(digest)) == 1
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plainTextPassword)) == nil
}

func (h *BcryptHasher) NeedsRehash(digest string) bool {
	if isLegacyDigest(digest) {
		return true
	}
	cost, err := bcrypt.Cost([]byte(digest))
	return err == nil && cost < h.cost
}

// LegacyDigest returns the unsalted SHA-256 digest older data files stored.
// It exists for importing and testing those files only.
func LegacyDigest(plainTextPassword string) string {
	sum := sha256.Sum256([]byte(plainTextPassword))
	return hex.EncodeToString(sum[:])
}

func isLegacyDigest(digest string) bool {
	if len(digest) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(digest)
	return err == nil
}
