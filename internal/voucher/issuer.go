package voucher

import (
	"sync"
	"time"

	"github.com/offgridpay/voucher-wallet/internal/common"
	"github.com/offgridpay/voucher-wallet/internal/crypto"
	"github.com/offgridpay/voucher-wallet/internal/model"
)

// Issuer creates signed vouchers. It performs no ledger bookkeeping;
// recording the issuance atomically is the caller's responsibility.
type Issuer struct {
	mu     sync.Mutex
	lastTS int64

	// Now is the clock used for voucher timestamps. Overridable in tests.
	Now func() time.Time
}

// NewIssuer returns an Issuer using the system clock.
func NewIssuer() *Issuer {
	return &Issuer{Now: time.Now}
}

// Create issues a new voucher for amount to toAddress, signed by the
// sender's key. The amount is normalized to the asset's fixed precision
// before signing, so the signature always covers the canonical form.
func (i *Issuer) Create(senderKeyHex, toAddress, amount string) (*model.Voucher, error) {
	micro, err := common.ParsePositiveAmount(amount)
	if err != nil {
		return nil, model.NewError(model.ErrValidation, "invalid amount: %v", err)
	}
	canonicalAmount := common.FormatAmount(micro)

	if !crypto.IsValidAddress(toAddress) {
		return nil, model.NewError(model.ErrValidation, "invalid recipient address %q", toAddress)
	}

	senderAddress, err := crypto.DeriveAddress(senderKeyHex)
	if err != nil {
		return nil, model.NewError(model.ErrValidation, "invalid sender key: %v", err)
	}

	ephemeralKey, ephemeralAddress, err := crypto.GenerateKeypair()
	if err != nil {
		return nil, err
	}

	timestamp := i.nextTimestamp()

	message := signingMessage(senderAddress, toAddress, canonicalAmount, timestamp, ephemeralAddress)
	signature, err := crypto.Sign(senderKeyHex, message)
	if err != nil {
		return nil, err
	}

	return &model.Voucher{
		Version:             model.VoucherVersion,
		EphemeralPrivateKey: ephemeralKey,
		Amount:              canonicalAmount,
		From:                senderAddress,
		To:                  toAddress,
		Timestamp:           timestamp,
		Signature:           signature,
	}, nil
}

// nextTimestamp returns the current time in milliseconds, clamped so
// timestamps never decrease even if the device clock steps backwards.
func (i *Issuer) nextTimestamp() int64 {
	i.mu.Lock()
	defer i.mu.Unlock()

	ts := i.Now().UnixMilli()
	if ts < i.lastTS {
		ts = i.lastTS
	}
	i.lastTS = ts
	return ts
}
