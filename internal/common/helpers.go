package common

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenDecimals is the fixed precision of the asset (micro units).
const TokenDecimals = 6

// FormatAmount converts micro units to a decimal string without float
// precision loss. Always emits exactly TokenDecimals fractional digits.
// Example: FormatAmount(40000000) = "40.000000"
func FormatAmount(micro uint64) string {
	s := fmt.Sprintf("%d", micro)

	// Pad with leading zeros if needed
	for len(s) <= TokenDecimals {
		s = "0" + s
	}

	// Insert decimal point
	pos := len(s) - TokenDecimals
	return s[:pos] + "." + s[pos:]
}

// ParseAmount converts a decimal string to micro units without float
// precision loss. Parsing is strict: no sign, no exponent, and at most
// TokenDecimals fractional digits. Excess fractional digits are an error,
// never a silent truncation - the string may be covered by a signature.
func ParseAmount(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	parts := strings.Split(s, ".")

	if len(parts) == 1 {
		n, err := strconv.ParseUint(parts[0], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
		for i := 0; i < TokenDecimals; i++ {
			if n > (1<<64-1)/10 {
				return 0, fmt.Errorf("amount %q overflows", s)
			}
			n *= 10
		}
		return n, nil
	}

	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid decimal format %q", s)
	}

	whole := parts[0]
	frac := parts[1]
	if whole == "" || frac == "" {
		return 0, fmt.Errorf("invalid decimal format %q", s)
	}
	if len(frac) > TokenDecimals {
		return 0, fmt.Errorf("amount %q has more than %d fractional digits", s, TokenDecimals)
	}

	// Pad fractional part to exact decimals
	frac += strings.Repeat("0", TokenDecimals-len(frac))

	combined := whole + frac
	n, err := strconv.ParseUint(combined, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return n, nil
}

// ParsePositiveAmount is ParseAmount restricted to amounts strictly
// greater than zero.
func ParsePositiveAmount(s string) (uint64, error) {
	n, err := ParseAmount(s)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, fmt.Errorf("amount must be greater than zero")
	}
	return n, nil
}

// CompareAmounts compares two decimal string amounts without float
// precision loss. Returns -1 if a < b, 0 if a == b, 1 if a > b.
func CompareAmounts(a, b string) (int, error) {
	aVal, err := ParseAmount(a)
	if err != nil {
		return 0, fmt.Errorf("failed to parse amount '%s': %w", a, err)
	}

	bVal, err := ParseAmount(b)
	if err != nil {
		return 0, fmt.Errorf("failed to parse amount '%s': %w", b, err)
	}

	if aVal < bVal {
		return -1, nil
	}
	if aVal > bVal {
		return 1, nil
	}
	return 0, nil
}
