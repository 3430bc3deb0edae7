// Package hasher provides the password digest implementations selectable
// through configuration. Both store their salt inside the encoded digest.
package hasher

import (
	"fmt"

	"github.com/99minutos/invoice-system/internal/core/ports"
)

const (
	NameBcrypt   = "bcrypt"
	NameArgon2id = "argon2id"
)

// New returns the hasher registered under name. bcryptCost is ignored by
// argon2id.
func New(name string, bcryptCost int) (ports.CredentialHasher, error) {
	switch name {
	case "", NameBcrypt:
		return NewBcrypt(bcryptCost), nil
	case NameArgon2id:
		return NewArgon2id(), nil
	default:
		return nil, fmt.Errorf("hasher: unknown algorithm %q", name)
	}
}
