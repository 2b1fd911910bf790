package helpers

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Alias tokens are 21 symbols drawn from a 64-symbol URL-safe alphabet using crypto/rand,
// roughly 126 bits of entropy per token.
const (
	AliasAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"
	AliasLength   = 21
)

// AliasGenerator produces candidate alias tokens.
type AliasGenerator interface {
	NewAlias() (string, error)
}

// NanoIDGenerator is the production AliasGenerator.
type NanoIDGenerator struct{}

func (NanoIDGenerator) NewAlias() (string, error) {
	return gonanoid.Generate(AliasAlphabet, AliasLength)
}

// IsAlias reports whether s has the shape of a generated alias.
func IsAlias(s string) bool {
	if len(s) != AliasLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '_', c == '-':
		default:
			return false
		}
	}
	return true
}
