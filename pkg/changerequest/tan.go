package changerequest

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
)

const tanDigits = 6

var tanSpace = big.NewInt(1_000_000)

// TANGenerator mints one-time tokens.
type TANGenerator func() (string, error)

// NewTAN returns a uniformly random 6-digit TAN.
func NewTAN() (string, error) {
	n, err := rand.Int(rand.Reader, tanSpace)
	if err != nil {
		return "", fmt.Errorf("failed to generate TAN: %w", err)
	}
	return fmt.Sprintf("%0*d", tanDigits, n.Int64()), nil
}

// tanMatches compares in constant time. An empty stored token never matches.
func tanMatches(stored, supplied string) bool {
	if stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}
