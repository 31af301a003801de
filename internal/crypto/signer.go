// Package crypto wraps the secp256k1 signing capability the voucher
// protocol relies on: keypair generation, address derivation, canonical
// message signing and signer recovery.
package crypto

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// GenerateKeypair generates a fresh keypair. Returns the private key as hex
// (no 0x prefix) and the derived address.
func GenerateKeypair() (privateKeyHex, address string, err error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate private key: %w", err)
	}

	privateKeyBytes := crypto.FromECDSA(privateKey)
	privateKeyHex = hexutil.Encode(privateKeyBytes)[2:] // Remove 0x prefix

	publicKey := privateKey.Public()
	publicKeyECDSA, ok := publicKey.(*ecdsa.PublicKey)
	if !ok {
		return "", "", fmt.Errorf("failed to cast public key")
	}

	address = crypto.PubkeyToAddress(*publicKeyECDSA).Hex()
	return privateKeyHex, address, nil
}

// DeriveAddress converts a private key to its address.
func DeriveAddress(privateKeyHex string) (string, error) {
	privateKey, err := parseKey(privateKeyHex)
	if err != nil {
		return "", err
	}

	publicKey := privateKey.Public()
	publicKeyECDSA, ok := publicKey.(*ecdsa.PublicKey)
	if !ok {
		return "", fmt.Errorf("failed to cast public key")
	}

	return crypto.PubkeyToAddress(*publicKeyECDSA).Hex(), nil
}

// Sign signs the Keccak-256 hash of message with the private key.
// The signature is 65-byte r||s||v hex with 0x prefix.
func Sign(privateKeyHex string, message []byte) (string, error) {
	privateKey, err := parseKey(privateKeyHex)
	if err != nil {
		return "", err
	}

	hash := crypto.Keccak256Hash(message)
	sig, err := crypto.Sign(hash.Bytes(), privateKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign message: %w", err)
	}

	return hexutil.Encode(sig), nil
}

// RecoverAddress recovers the signer address from (message, signature).
func RecoverAddress(message []byte, signatureHex string) (string, error) {
	sig, err := hexutil.Decode(signatureHex)
	if err != nil {
		return "", fmt.Errorf("invalid signature encoding: %w", err)
	}
	if len(sig) != crypto.SignatureLength {
		return "", fmt.Errorf("invalid signature length %d", len(sig))
	}

	// Accept the legacy 27/28 recovery id alongside 0/1.
	if sig[64] >= 27 {
		sig = append(append([]byte{}, sig[:64]...), sig[64]-27)
	}

	hash := crypto.Keccak256Hash(message)
	pub, err := crypto.SigToPub(hash.Bytes(), sig)
	if err != nil {
		return "", fmt.Errorf("failed to recover signer: %w", err)
	}

	return crypto.PubkeyToAddress(*pub).Hex(), nil
}

// SameAddress compares two addresses case-insensitively.
func SameAddress(a, b string) bool {
	return strings.EqualFold(a, b)
}

// IsValidAddress reports whether s is a syntactically valid address
// (0x-prefixed, 20 bytes of hex).
func IsValidAddress(s string) bool {
	if len(s) != 42 || !strings.HasPrefix(s, "0x") {
		return false
	}
	_, err := hexutil.Decode(s)
	return err == nil
}

func parseKey(privateKeyHex string) (*ecdsa.PrivateKey, error) {
	// Remove 0x prefix if present
	if len(privateKeyHex) > 2 && privateKeyHex[:2] == "0x" {
		privateKeyHex = privateKeyHex[2:]
	}

	privateKey, err := crypto.HexToECDSA(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return privateKey, nil
}
