package crypto

import (
	"strings"
	"testing"
)

func TestGenerateKeypair(t *testing.T) {
	priv, addr, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}
	if len(priv) != 64 {
		t.Errorf("private key hex length = %d, want 64", len(priv))
	}
	if !IsValidAddress(addr) {
		t.Errorf("generated address %q is not valid", addr)
	}

	derived, err := DeriveAddress(priv)
	if err != nil {
		t.Fatalf("DeriveAddress: %v", err)
	}
	if !SameAddress(derived, addr) {
		t.Errorf("DeriveAddress = %q, want %q", derived, addr)
	}
}

func TestSignAndRecover(t *testing.T) {
	priv, addr, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}

	msg := []byte("offline-voucher|v1|test message")
	sig, err := Sign(priv, msg)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if !strings.HasPrefix(sig, "0x") || len(sig) != 2+65*2 {
		t.Errorf("unexpected signature encoding %q", sig)
	}

	recovered, err := RecoverAddress(msg, sig)
	if err != nil {
		t.Fatalf("RecoverAddress: %v", err)
	}
	if !SameAddress(recovered, addr) {
		t.Errorf("recovered %q, want %q", recovered, addr)
	}
}

func TestRecoverAddressTamperedMessage(t *testing.T) {
	priv, addr, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair: %v", err)
	}

	sig, err := Sign(priv, []byte("original"))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	recovered, err := RecoverAddress([]byte("tampered"), sig)
	if err == nil && SameAddress(recovered, addr) {
		t.Error("tampered message recovered the original signer")
	}
}

func TestRecoverAddressBadSignature(t *testing.T) {
	for _, sig := range []string{"", "0x00", "not-hex", "0x" + strings.Repeat("ff", 65)} {
		if _, err := RecoverAddress([]byte("m"), sig); err == nil {
			t.Errorf("RecoverAddress with signature %q should fail", sig)
		}
	}
}

func TestIsValidAddress(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"0x52908400098527886E0F7030069857D2E4169EE7", true},
		{"0x52908400098527886e0f7030069857d2e4169ee7", true},
		{"52908400098527886E0F7030069857D2E4169EE7", false},
		{"0x1234", false},
		{"", false},
		{"0xZZ908400098527886E0F7030069857D2E4169EE7", false},
	}
	for _, c := range cases {
		if got := IsValidAddress(c.in); got != c.want {
			t.Errorf("IsValidAddress(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestSameAddress(t *testing.T) {
	if !SameAddress("0xABCDEF", "0xabcdef") {
		t.Error("SameAddress should be case-insensitive")
	}
	if SameAddress("0xABCDEF", "0xabcde0") {
		t.Error("SameAddress matched different addresses")
	}
}
