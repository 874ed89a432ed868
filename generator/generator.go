package generator

import (
	"crypto/rand"
	"encoding/hex"
	"io"
)

// tokenBytes is the amount of random bytes backing a confirmation token,
// hex encoding doubles this for the final string length
const tokenBytes = 32

type RandomTokenType string

func tokenTypeFromString(token string) RandomTokenType {
	if token == "" {
		panic("zero length token issued, this is probably the only reason to ever panic")
	}
	return RandomTokenType(token)
}

type RandomTokenGenerator struct{}

// CreateSecureToken returns a hex encoded token from 32 random bytes
func (*RandomTokenGenerator) CreateSecureToken() RandomTokenType {
	return createToken(tokenBytes)
}

// CreateSecureTokenWithSize returns a hex encoded token from size random bytes
func (*RandomTokenGenerator) CreateSecureTokenWithSize(size int) RandomTokenType {
	return createToken(size)
}

func createToken(size int) RandomTokenType {
	b := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		panic(err.Error()) // rand should never fail
	}
	return tokenTypeFromString(hex.EncodeToString(b))
}

func New() *RandomTokenGenerator {
	return &RandomTokenGenerator{}
}
