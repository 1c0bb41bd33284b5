package code

import (
	"crypto/rand"
	"math/big"
)

const (
	letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Length  = 4
)

var alphabetSize = big.NewInt(int64(len(letters)))

// GenerateRandom returns a room code of Length uppercase letters.
// It does not check for collisions, callers resample against their registry.
func GenerateRandom() (string, error) {
	code := make([]byte, Length)
	for i := range code {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", err
		}
		code[i] = letters[n.Int64()]
	}
	return string(code), nil
}

// IsValid reports whether s has the shape of a room code.
func IsValid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
