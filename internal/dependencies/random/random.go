package random

import (
	"crypto/rand"
	"math/big"
)

// Random is the source of randomness for deck shuffling and tile draws.
// Tests substitute a deterministic implementation.
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int
}

// CryptoRandom draws from crypto/rand
type CryptoRandom struct{}

func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Intn returns a random int in [0, n)
func (r *CryptoRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}
