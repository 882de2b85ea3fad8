package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Hex represents a hexadecimal-encoded number as a string (e.g. "0x1a").
// Block-explorer APIs mix decimal and hex encodings for numeric fields, so
// this type provides validation, JSON marshaling/unmarshaling, and integer
// conversion for the hex case.
type Hex string

// HexFromString validates the input string and returns a Hex value if valid.
func HexFromString(s string) (Hex, error) {
	if err := validateHex(s); err != nil {
		return "", err
	}
	return Hex(s), nil
}

// IsHexString reports whether s looks like a 0x-prefixed hexadecimal number.
func IsHexString(s string) bool {
	return validateHex(s) == nil
}

// validateHex checks whether a string is a valid hexadecimal number starting
// with "0x" or "0X".
func validateHex(s string) error {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return fmt.Errorf("hex string must start with 0x")
	}

	if _, err := strconv.ParseUint(s[2:], 16, 64); err != nil {
		return fmt.Errorf("invalid hexadecimal value: %w", err)
	}

	return nil
}

// MarshalJSON encodes the Hex as a JSON string.
func (h Hex) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(h))
}

// UnmarshalJSON parses and validates a JSON-encoded hexadecimal string.
func (h *Hex) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid hex string: %w", err)
	}

	if err := validateHex(s); err != nil {
		return err
	}

	*h = Hex(s)
	return nil
}

// Int returns the decoded int64 value from the hexadecimal string.
// If parsing fails, it returns zero.
func (h Hex) Int() int64 {
	v, _ := strconv.ParseInt(string(h)[2:], 16, 64)
	return v
}

// Uint64 returns the decoded uint64 value from the hexadecimal string.
// If parsing fails, it returns zero.
func (h Hex) Uint64() uint64 {
	v, _ := strconv.ParseUint(string(h)[2:], 16, 64)
	return v
}
