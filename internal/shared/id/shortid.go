// Package id generates Stripe-style prefixed identifiers such as "trn_4fK9mP2vL3nQ".
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	DefaultLength = 14
)

const (
	PrefixSuperAdmin   = "sa"
	PrefixAdmin        = "adm"
	PrefixTrainer      = "trn"
	PrefixCustomer     = "cus"
	PrefixPlan         = "plan"
	PrefixSubscription = "sub"
	PrefixPayment      = "pay"
)

// Generate creates a random Base62 string of the given length.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}

// New returns "prefix_<random>" with the default length.
func New(prefix string) (string, error) {
	s, err := Generate(DefaultLength)
	if err != nil {
		return "", err
	}
	return prefix + "_" + s, nil
}

// MustNew is New that panics; crypto/rand failing is not recoverable.
func MustNew(prefix string) string {
	s, err := New(prefix)
	if err != nil {
		panic(err)
	}
	return s
}

// HasPrefix reports whether prefixedID is "<prefix>_<non-empty>".
func HasPrefix(prefixedID, prefix string) bool {
	p, rest, ok := strings.Cut(prefixedID, "_")
	return ok && p == prefix && rest != ""
}
