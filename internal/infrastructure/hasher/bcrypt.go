package hasher

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Bcrypt digests secrets with bcrypt. The secret is first reduced to a
// base64 SHA-256 (44 bytes) so bcrypt's 72-byte input limit never applies
// and every byte of a long secret counts.
type Bcrypt struct {
	cost int
}

// NewBcrypt returns a Bcrypt hasher. Costs outside bcrypt's range fall back
// to bcrypt.DefaultCost.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

func (b *Bcrypt) Digest(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(prehash(secret), b.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

func (b *Bcrypt) Verify(secret, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), prehash(secret)) == nil
}

func prehash(secret string) []byte {
	sum := sha256.Sum256([]byte(secret))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}
