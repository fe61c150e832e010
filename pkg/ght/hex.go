package ght

import (
	"encoding/hex"
)

// HexFromBytes returns the lowercase hex encoding of b.
func HexFromBytes(b []byte) string {
	return hex.EncodeToString(b)
}

// BytesFromHex decodes a lowercase (or uppercase) hex string, returning
// *InvalidHexError for odd length or non-hex input.
func BytesFromHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, &InvalidHexError{Input: s}
	}
	return b, nil
}
