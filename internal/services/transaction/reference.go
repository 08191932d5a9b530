package transaction

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const referencePrefix = "TXN"

// NewReference builds a transaction reference: a literal tag, the
// current time to second precision, and a four-digit zero-padded random
// suffix from a cryptographically strong source. The ledger's unique
// index backs this up; callers retry on conflict.
func NewReference() string {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		panic(fmt.Sprintf("transaction reference generation: %v", err))
	}
	return fmt.Sprintf("%s%s%04d", referencePrefix, time.Now().Format("20060102150405"), n.Int64())
}
