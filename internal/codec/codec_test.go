package codec

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/offgridpay/voucher-wallet/internal/model"
)

func sampleVoucher() *model.Voucher {
	return &model.Voucher{
		Version:             model.VoucherVersion,
		EphemeralPrivateKey: "8da4ef21b864d2cc526dbdb2a120bd2874c36c9d0a1fb7f8c63d7f7a8b41de8f",
		Amount:              "40.000000",
		From:                "0x52908400098527886E0F7030069857D2E4169EE7",
		To:                  "0x8617E340B3D01FA5F11F306F4090FD50E238070D",
		Timestamp:           1700000000000,
		Signature:           "0xdeadbeef",
	}
}

func TestVoucherRoundTrip(t *testing.T) {
	v := sampleVoucher()

	s, err := EncodeVoucher(v)
	if err != nil {
		t.Fatalf("EncodeVoucher: %v", err)
	}

	got, err := DecodeVoucher(s)
	if err != nil {
		t.Fatalf("DecodeVoucher: %v", err)
	}
	if *got != *v {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, v)
	}
}

func TestDecodeVoucherMalformed(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"not base64url", "!!!not-base64!!!"},
		{"not json", base64.RawURLEncoding.EncodeToString([]byte("hello"))},
		{"json array", base64.RawURLEncoding.EncodeToString([]byte("[1,2]"))},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := DecodeVoucher(c.in)
			if err == nil {
				t.Fatal("expected error")
			}
			if model.CodeOf(err) != model.ErrMalformedVoucher {
				t.Errorf("code = %q, want MALFORMED_VOUCHER", model.CodeOf(err))
			}
		})
	}
}

func TestDecodeVoucherMissingFields(t *testing.T) {
	fields := []string{"version", "ephemeralPrivateKey", "amount", "from", "to", "timestamp", "signature"}
	for _, field := range fields {
		t.Run(field, func(t *testing.T) {
			raw, err := json.Marshal(sampleVoucher())
			if err != nil {
				t.Fatal(err)
			}
			var m map[string]any
			if err := json.Unmarshal(raw, &m); err != nil {
				t.Fatal(err)
			}
			delete(m, field)
			stripped, err := json.Marshal(m)
			if err != nil {
				t.Fatal(err)
			}

			_, err = DecodeVoucher(base64.RawURLEncoding.EncodeToString(stripped))
			if err == nil {
				t.Fatalf("voucher without %s decoded successfully", field)
			}
			if model.CodeOf(err) != model.ErrMalformedVoucher {
				t.Errorf("code = %q, want MALFORMED_VOUCHER", model.CodeOf(err))
			}
		})
	}
}

func TestDecodeVoucherUnsupportedVersion(t *testing.T) {
	v := sampleVoucher()
	v.Version = 2
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := DecodeVoucher(base64.RawURLEncoding.EncodeToString(raw)); err == nil {
		t.Error("version 2 voucher should be rejected")
	}
}

func TestAddressRoundTrip(t *testing.T) {
	addr := "0x52908400098527886E0F7030069857D2E4169EE7"

	payload, err := EncodeAddress(addr)
	if err != nil {
		t.Fatalf("EncodeAddress: %v", err)
	}

	got, err := DecodeAddress(payload)
	if err != nil {
		t.Fatalf("DecodeAddress: %v", err)
	}
	if got != addr {
		t.Errorf("round trip = %q, want %q", got, addr)
	}
}

func TestDecodeAddressBareFallback(t *testing.T) {
	addr := "0x52908400098527886E0F7030069857D2E4169EE7"
	got, err := DecodeAddress(addr)
	if err != nil {
		t.Fatalf("DecodeAddress bare: %v", err)
	}
	if got != addr {
		t.Errorf("DecodeAddress bare = %q, want %q", got, addr)
	}
}

func TestDecodeAddressMalformed(t *testing.T) {
	for _, in := range []string{"", "hello", `{"type":"address","address":"nope"}`, `{"type":"other","address":"0x52908400098527886E0F7030069857D2E4169EE7"}`} {
		_, err := DecodeAddress(in)
		if err == nil {
			t.Errorf("DecodeAddress(%q) should fail", in)
			continue
		}
		if model.CodeOf(err) != model.ErrMalformedAddress {
			t.Errorf("DecodeAddress(%q) code = %q, want MALFORMED_ADDRESS", in, model.CodeOf(err))
		}
	}
}

func TestEncodeAddressInvalid(t *testing.T) {
	if _, err := EncodeAddress("not-an-address"); err == nil {
		t.Error("EncodeAddress with bad input should fail")
	}
}
