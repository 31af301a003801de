package voucher

import (
	"testing"
	"time"

	"github.com/offgridpay/voucher-wallet/internal/codec"
	"github.com/offgridpay/voucher-wallet/internal/crypto"
	"github.com/offgridpay/voucher-wallet/internal/model"
)

var testTime = time.UnixMilli(1700000000000)

func newTestIssuer() *Issuer {
	i := NewIssuer()
	i.Now = func() time.Time { return testTime }
	return i
}

func newTestVerifier(now time.Time) *Verifier {
	v := NewVerifier()
	v.Now = func() time.Time { return now }
	return v
}

func mustKeypair(t *testing.T) (string, string) {
	t.Helper()
	priv, addr, err := crypto.GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	return priv, addr
}

func TestCreate(t *testing.T) {
	senderKey, senderAddr := mustKeypair(t)
	_, recipient := mustKeypair(t)

	v, err := newTestIssuer().Create(senderKey, recipient, "40")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if v.Version != model.VoucherVersion {
		t.Errorf("version = %d", v.Version)
	}
	if v.Amount != "40.000000" {
		t.Errorf("amount = %q, want canonical 40.000000", v.Amount)
	}
	if !crypto.SameAddress(v.From, senderAddr) {
		t.Errorf("from = %q, want %q", v.From, senderAddr)
	}
	if !crypto.SameAddress(v.To, recipient) {
		t.Errorf("to = %q, want %q", v.To, recipient)
	}
	if v.Timestamp != testTime.UnixMilli() {
		t.Errorf("timestamp = %d, want %d", v.Timestamp, testTime.UnixMilli())
	}
	if _, err := crypto.DeriveAddress(v.EphemeralPrivateKey); err != nil {
		t.Errorf("ephemeral key is not usable: %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	senderKey, _ := mustKeypair(t)
	_, recipient := mustKeypair(t)

	cases := []struct {
		name      string
		key       string
		to        string
		amount    string
	}{
		{"zero amount", senderKey, recipient, "0"},
		{"negative amount", senderKey, recipient, "-5"},
		{"overprecise amount", senderKey, recipient, "1.0000001"},
		{"garbage amount", senderKey, recipient, "abc"},
		{"bad recipient", senderKey, "nope", "40"},
		{"bad sender key", "zz", recipient, "40"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := newTestIssuer().Create(c.key, c.to, c.amount)
			if err == nil {
				t.Fatal("expected error")
			}
			if model.CodeOf(err) != model.ErrValidation {
				t.Errorf("code = %q, want VALIDATION_ERROR", model.CodeOf(err))
			}
		})
	}
}

func TestTimestampNonDecreasing(t *testing.T) {
	senderKey, _ := mustKeypair(t)
	_, recipient := mustKeypair(t)

	i := NewIssuer()
	now := testTime
	i.Now = func() time.Time { return now }

	v1, err := i.Create(senderKey, recipient, "1")
	if err != nil {
		t.Fatal(err)
	}

	// Clock steps backwards
	now = testTime.Add(-time.Hour)
	v2, err := i.Create(senderKey, recipient, "1")
	if err != nil {
		t.Fatal(err)
	}
	if v2.Timestamp < v1.Timestamp {
		t.Errorf("timestamp decreased: %d then %d", v1.Timestamp, v2.Timestamp)
	}
}

func TestVerifyValid(t *testing.T) {
	senderKey, _ := mustKeypair(t)
	_, recipient := mustKeypair(t)

	v, err := newTestIssuer().Create(senderKey, recipient, "40")
	if err != nil {
		t.Fatal(err)
	}

	res := newTestVerifier(testTime.Add(time.Hour)).Verify(v, recipient)
	if !res.Valid {
		t.Errorf("valid voucher rejected with %q", res.Reason)
	}
}

func TestVerifyRecipientBinding(t *testing.T) {
	senderKey, _ := mustKeypair(t)
	_, recipient := mustKeypair(t)
	_, other := mustKeypair(t)

	v, err := newTestIssuer().Create(senderKey, recipient, "40")
	if err != nil {
		t.Fatal(err)
	}

	vf := newTestVerifier(testTime)

	if res := vf.Verify(v, other); res.Valid || res.Reason != model.ErrInvalidRecipient {
		t.Errorf("wrong recipient: got %+v", res)
	}

	// Case differences must not break the binding.
	if res := vf.Verify(v, recipient); !res.Valid {
		t.Errorf("exact recipient rejected: %+v", res)
	}
	upper := "0x" + upperHex(recipient[2:])
	if res := vf.Verify(v, upper); !res.Valid {
		t.Errorf("case-folded recipient rejected: %+v", res)
	}
}

func upperHex(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'f' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

func TestVerifyTamperSensitivity(t *testing.T) {
	senderKey, _ := mustKeypair(t)
	_, recipient := mustKeypair(t)
	otherKey, otherAddr := mustKeypair(t)

	issue := func() *model.Voucher {
		v, err := newTestIssuer().Create(senderKey, recipient, "40")
		if err != nil {
			t.Fatal(err)
		}
		return v
	}

	cases := []struct {
		name     string
		mutate   func(*model.Voucher)
		expected model.ErrorCode
	}{
		{"amount", func(v *model.Voucher) { v.Amount = "400.000000" }, model.ErrInvalidSignature},
		{"timestamp", func(v *model.Voucher) { v.Timestamp++ }, model.ErrInvalidSignature},
		{"from", func(v *model.Voucher) { v.From = otherAddr }, model.ErrInvalidSignature},
		{"ephemeral key", func(v *model.Voucher) { v.EphemeralPrivateKey = otherKey }, model.ErrInvalidSignature},
		{"ephemeral key garbage", func(v *model.Voucher) { v.EphemeralPrivateKey = "zz" }, model.ErrInvalidSignature},
		{"signature", func(v *model.Voucher) { v.Signature = "0x00" }, model.ErrInvalidSignature},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := issue()
			c.mutate(v)

			// The tampered voucher still round-trips the codec; only the
			// signature check catches it.
			s, err := codec.EncodeVoucher(v)
			if err != nil {
				t.Fatal(err)
			}
			decoded, err := codec.DecodeVoucher(s)
			if err != nil {
				t.Fatal(err)
			}

			res := newTestVerifier(testTime).Verify(decoded, recipient)
			if res.Valid {
				t.Fatal("tampered voucher verified")
			}
			if res.Reason != c.expected {
				t.Errorf("reason = %q, want %q", res.Reason, c.expected)
			}
		})
	}
}

func TestVerifyExpiryBoundary(t *testing.T) {
	senderKey, _ := mustKeypair(t)
	_, recipient := mustKeypair(t)

	v, err := newTestIssuer().Create(senderKey, recipient, "40")
	if err != nil {
		t.Fatal(err)
	}

	window := FreshnessWindow

	// Exactly 7 days old: still valid.
	at := testTime.Add(window)
	if res := newTestVerifier(at).Verify(v, recipient); !res.Valid {
		t.Errorf("voucher at exact window boundary rejected: %+v", res)
	}

	// One millisecond past the window: expired.
	at = testTime.Add(window + time.Millisecond)
	res := newTestVerifier(at).Verify(v, recipient)
	if res.Valid {
		t.Fatal("stale voucher verified")
	}
	if res.Reason != model.ErrExpired {
		t.Errorf("reason = %q, want EXPIRED", res.Reason)
	}
}

func TestVerifyOrderShortCircuits(t *testing.T) {
	senderKey, _ := mustKeypair(t)
	_, recipient := mustKeypair(t)
	_, other := mustKeypair(t)

	v, err := newTestIssuer().Create(senderKey, recipient, "40")
	if err != nil {
		t.Fatal(err)
	}
	v.Signature = "0x00" // also broken

	// Recipient binding is checked before the signature.
	res := newTestVerifier(testTime).Verify(v, other)
	if res.Reason != model.ErrInvalidRecipient {
		t.Errorf("reason = %q, want INVALID_RECIPIENT first", res.Reason)
	}
}
