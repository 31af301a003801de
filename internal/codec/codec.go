// Package codec serializes vouchers and address payloads to and from the
// opaque strings carried by the QR transport.
package codec

import (
	"encoding/base64"
	"encoding/json"

	"github.com/offgridpay/voucher-wallet/internal/crypto"
	"github.com/offgridpay/voucher-wallet/internal/model"
)

// EncodeVoucher serializes a voucher to its transport string: canonical
// JSON (fixed field order) wrapped in unpadded base64url.
func EncodeVoucher(v *model.Voucher) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", model.NewError(model.ErrMalformedVoucher, "failed to encode voucher: %v", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// DecodeVoucher parses a transport string back into a voucher. Fails with
// MALFORMED_VOUCHER if the payload does not parse or any required field is
// absent. Signature validity is not this function's concern.
func DecodeVoucher(s string) (*model.Voucher, error) {
	data, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, model.NewError(model.ErrMalformedVoucher, "voucher is not valid base64url")
	}

	var v model.Voucher
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, model.NewError(model.ErrMalformedVoucher, "voucher payload is not valid JSON")
	}

	switch {
	case v.Version == 0:
		return nil, model.NewError(model.ErrMalformedVoucher, "missing field version")
	case v.Version != model.VoucherVersion:
		return nil, model.NewError(model.ErrMalformedVoucher, "unsupported voucher version %d", v.Version)
	case v.EphemeralPrivateKey == "":
		return nil, model.NewError(model.ErrMalformedVoucher, "missing field ephemeralPrivateKey")
	case v.Amount == "":
		return nil, model.NewError(model.ErrMalformedVoucher, "missing field amount")
	case v.From == "":
		return nil, model.NewError(model.ErrMalformedVoucher, "missing field from")
	case v.To == "":
		return nil, model.NewError(model.ErrMalformedVoucher, "missing field to")
	case v.Timestamp == 0:
		return nil, model.NewError(model.ErrMalformedVoucher, "missing field timestamp")
	case v.Signature == "":
		return nil, model.NewError(model.ErrMalformedVoucher, "missing field signature")
	}

	return &v, nil
}

// EncodeAddress wraps a receiving address in the tagged transport payload.
func EncodeAddress(address string) (string, error) {
	if !crypto.IsValidAddress(address) {
		return "", model.NewError(model.ErrMalformedAddress, "invalid address %q", address)
	}
	data, err := json.Marshal(model.AddressPayload{Type: model.AddressPayloadType, Address: address})
	if err != nil {
		return "", model.NewError(model.ErrMalformedAddress, "failed to encode address: %v", err)
	}
	return string(data), nil
}

// DecodeAddress unwraps a tagged address payload. A bare, syntactically
// valid address string is accepted as a fallback.
func DecodeAddress(s string) (string, error) {
	var payload model.AddressPayload
	if err := json.Unmarshal([]byte(s), &payload); err == nil &&
		payload.Type == model.AddressPayloadType && crypto.IsValidAddress(payload.Address) {
		return payload.Address, nil
	}

	if crypto.IsValidAddress(s) {
		return s, nil
	}

	return "", model.NewError(model.ErrMalformedAddress, "payload is not an address")
}
