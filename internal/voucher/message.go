// Package voucher implements issuance and verification of offline payment
// vouchers. The voucher is a bearer instrument: its ephemeral private key
// is the value being transferred, and the sender's signature over the
// canonical tuple binds amount, parties and creation time together.
package voucher

import (
	"fmt"
	"strings"
	"time"
)

// FreshnessWindow is how long a voucher stays redeemable after creation.
// A voucher aged exactly FreshnessWindow is still valid.
const FreshnessWindow = 7 * 24 * time.Hour

// signingMessage builds the canonical message covered by the sender's
// signature. Verification must reconstruct this byte-for-byte, so the
// format is fixed: addresses lowercased, amount exactly as embedded in
// the voucher, timestamp in milliseconds.
func signingMessage(from, to, amount string, timestamp int64, ephemeralAddress string) []byte {
	return []byte(fmt.Sprintf("offline-voucher|v1|%s|%s|%s|%d|%s",
		strings.ToLower(from),
		strings.ToLower(to),
		amount,
		timestamp,
		strings.ToLower(ephemeralAddress),
	))
}
