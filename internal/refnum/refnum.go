// Package refnum generates externally visible complaint reference numbers.
package refnum

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"
)

// Prefix identifies complaint references, e.g. CR20260824A3F09B.
const Prefix = "CR"

// suffixBytes yields 6 uppercase hex chars (24 bits of entropy). The DB unique
// constraint on reference_number plus insert-retry covers residual collisions.
const suffixBytes = 3

// New returns a date-stamped reference number with a random suffix.
func New(now time.Time) (string, error) {
	b := make([]byte, suffixBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString(Prefix)
	sb.WriteString(now.Format("20060102"))
	sb.WriteString(strings.ToUpper(hex.EncodeToString(b)))
	return sb.String(), nil
}
