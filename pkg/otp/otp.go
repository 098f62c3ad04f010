package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// Length of generated codes.
const Length = 6

// TTL is how long a code stays valid from issuance.
const TTL = 10 * time.Minute

var codeSpace = big.NewInt(1000000)

// Generate returns a 6-digit numeric one-time passcode.
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
