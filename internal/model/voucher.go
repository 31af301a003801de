package model

// VoucherVersion is the only voucher format version currently produced or
// accepted.
const VoucherVersion = 1

// Voucher is a signed bearer claim on offline value. Possession of
// EphemeralPrivateKey is the claim itself; the struct is immutable once
// issued. Field order here is the canonical transport order.
type Voucher struct {
	Version             int    `json:"version"`
	EphemeralPrivateKey string `json:"ephemeralPrivateKey"`
	Amount              string `json:"amount"`
	From                string `json:"from"`
	To                  string `json:"to"`
	Timestamp           int64  `json:"timestamp"` // ms since epoch, creation time
	Signature           string `json:"signature"`
}

// AddressPayload is the tagged QR wrapper for a receiving address.
// Transport-only, never persisted.
type AddressPayload struct {
	Type    string `json:"type"` // always "address"
	Address string `json:"address"`
}

// AddressPayloadType is the tag value of AddressPayload.
const AddressPayloadType = "address"
