package tiktok

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// stateLength is the minimum nonce length. 26 base-36 characters give
// well over 128 bits of entropy.
const stateLength = 26

// GenerateState returns a random base-36 state nonce for callback
// correlation.
func GenerateState() string {
	b := make([]byte, 17)
	if _, err := rand.Read(b); err != nil {
		// Fallback to less secure but still usable random
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	s := new(big.Int).SetBytes(b).Text(36)
	for len(s) < stateLength {
		s = "0" + s
	}
	return s[:stateLength]
}
