package model

import (
	"fmt"
	"time"
)

// TransactionType transaction direction from this device's point of view
type TransactionType string

const (
	TransactionTypeSent     TransactionType = "sent"
	TransactionTypeReceived TransactionType = "received"
)

// TransactionStatus lifecycle of a pending record. The core only ever
// creates "pending"; settlement moves records to "settled" or "failed".
type TransactionStatus string

const (
	TransactionStatusPending TransactionStatus = "pending"
	TransactionStatusSettled TransactionStatus = "settled"
	TransactionStatusFailed  TransactionStatus = "failed"
)

// PendingTransaction is the local ledger record of one voucher movement.
// Records are append-only; only Status changes after creation.
type PendingTransaction struct {
	ID          string            `json:"id"`
	Type        TransactionType   `json:"type"`
	From        string            `json:"from"`
	To          string            `json:"to"`
	Amount      string            `json:"amount"`
	VoucherData Voucher           `json:"voucherData"`
	Timestamp   int64             `json:"timestamp"` // ms since epoch
	Status      TransactionStatus `json:"status"`
	DeviceID    string            `json:"deviceId"`
}

// TransactionFilter narrows a transaction history query.
type TransactionFilter struct {
	Type   *TransactionType   `form:"type"`
	Status *TransactionStatus `form:"status"`
	From   *time.Time         `form:"from"`
	To     *time.Time         `form:"to"`
}

// Validate validates filter parameters.
func (f *TransactionFilter) Validate() error {
	if f.Type != nil && *f.Type != TransactionTypeSent && *f.Type != TransactionTypeReceived {
		return fmt.Errorf("type must be sent or received")
	}
	if f.Status != nil && *f.Status != TransactionStatusPending &&
		*f.Status != TransactionStatusSettled && *f.Status != TransactionStatusFailed {
		return fmt.Errorf("status must be pending, settled or failed")
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return fmt.Errorf("to date must be after or equal to from date")
	}
	return nil
}

// Matches reports whether tx passes the filter.
func (f *TransactionFilter) Matches(tx *PendingTransaction) bool {
	if f.Type != nil && tx.Type != *f.Type {
		return false
	}
	if f.Status != nil && tx.Status != *f.Status {
		return false
	}
	ts := time.UnixMilli(tx.Timestamp)
	if f.From != nil && ts.Before(*f.From) {
		return false
	}
	if f.To != nil && ts.After(*f.To) {
		return false
	}
	return true
}
