package voucher

import (
	"time"

	"github.com/offgridpay/voucher-wallet/internal/crypto"
	"github.com/offgridpay/voucher-wallet/internal/model"
)

// Result is the outcome of verifying a well-formed voucher. A failed
// verification is a value, not an error: the device simply returns to the
// scan-ready state with Reason surfaced to the user.
type Result struct {
	Valid  bool
	Reason model.ErrorCode
}

// Verifier checks a received voucher against the expected recipient.
type Verifier struct {
	// Now is the clock used for the freshness check. Overridable in tests.
	Now func() time.Time
}

// NewVerifier returns a Verifier using the system clock.
func NewVerifier() *Verifier {
	return &Verifier{Now: time.Now}
}

// Verify checks, in order: recipient binding, signature over the canonical
// tuple, and freshness. It short-circuits on the first failure.
func (vf *Verifier) Verify(v *model.Voucher, expectedRecipient string) Result {
	if !crypto.SameAddress(v.To, expectedRecipient) {
		return Result{Reason: model.ErrInvalidRecipient}
	}

	ephemeralAddress, err := crypto.DeriveAddress(v.EphemeralPrivateKey)
	if err != nil {
		// An undecodable bearer key can never have been covered by a
		// genuine signature.
		return Result{Reason: model.ErrInvalidSignature}
	}

	message := signingMessage(v.From, v.To, v.Amount, v.Timestamp, ephemeralAddress)
	signer, err := crypto.RecoverAddress(message, v.Signature)
	if err != nil || !crypto.SameAddress(signer, v.From) {
		return Result{Reason: model.ErrInvalidSignature}
	}

	elapsed := vf.Now().UnixMilli() - v.Timestamp
	if elapsed > FreshnessWindow.Milliseconds() {
		return Result{Reason: model.ErrExpired}
	}

	return Result{Valid: true}
}
