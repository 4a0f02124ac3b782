package random

import (
	"crypto/rand"
	"math/big"
)

// Random abstracts randomness so scenario selection and session ID
// generation can be scripted in tests.
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int

	// String returns a random string of length chars drawn from alphabet
	String(length int, alphabet string) string
}

// CryptoRandom implements Random using crypto/rand
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Intn returns a cryptographically random int in [0, n)
func (r *CryptoRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	result, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand does not fail in practice
		return 0
	}
	return int(result.Int64())
}

// String returns a random string of length chars drawn from alphabet.
// Session IDs are minted this way; they appear in URLs, so callers pass
// a URL-safe alphabet.
func (r *CryptoRandom) String(length int, alphabet string) string {
	if length <= 0 || len(alphabet) == 0 {
		return ""
	}
	result := make([]byte, length)
	for i := range result {
		result[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(result)
}
