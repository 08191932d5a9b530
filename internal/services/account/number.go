package account

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateAccountNumber builds a ten-digit account number: the current
// calendar year followed by six random digits in [100000, 999999] from a
// cryptographically strong source. Randomness alone is a weak uniqueness
// guarantee; the storage layer enforces a unique index and the service
// retries generation on conflict.
func GenerateAccountNumber() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand only fails when the platform source is broken.
		panic(fmt.Sprintf("account number generation: %v", err))
	}
	return fmt.Sprintf("%d%d", time.Now().Year(), n.Int64()+100000)
}
