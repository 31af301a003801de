// voucherctl issues and verifies vouchers without a running wallet service.
// Usage:
//
//	voucherctl issue -key <senderKeyHex> -to <address> -amount <amount>
//	voucherctl verify -voucher <payload> -recipient <address>
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/offgridpay/voucher-wallet/internal/codec"
	"github.com/offgridpay/voucher-wallet/internal/voucher"
)

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	switch os.Args[1] {
	case "issue":
		issue(os.Args[2:])
	case "verify":
		verify(os.Args[2:])
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: voucherctl issue|verify [flags]")
	os.Exit(2)
}

func issue(args []string) {
	fs := flag.NewFlagSet("issue", flag.ExitOnError)
	key := fs.String("key", "", "sender private key (hex)")
	to := fs.String("to", "", "recipient address")
	amount := fs.String("amount", "", "amount (decimal string)")
	fs.Parse(args)

	if *key == "" || *to == "" || *amount == "" {
		fmt.Fprintln(os.Stderr, "issue requires -key, -to and -amount")
		os.Exit(2)
	}

	v, err := voucher.NewIssuer().Create(*key, *to, *amount)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	payload, err := codec.EncodeVoucher(v)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println(payload)
}

func verify(args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	payload := fs.String("voucher", "", "voucher transport payload")
	recipient := fs.String("recipient", "", "expected recipient address")
	fs.Parse(args)

	if *payload == "" || *recipient == "" {
		fmt.Fprintln(os.Stderr, "verify requires -voucher and -recipient")
		os.Exit(2)
	}

	v, err := codec.DecodeVoucher(*payload)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	res := voucher.NewVerifier().Verify(v, *recipient)
	out, _ := json.Marshal(map[string]any{
		"valid":  res.Valid,
		"reason": res.Reason,
		"from":   v.From,
		"to":     v.To,
		"amount": v.Amount,
	})
	fmt.Println(string(out))

	if !res.Valid {
		os.Exit(1)
	}
}
