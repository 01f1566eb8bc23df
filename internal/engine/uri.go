package engine

import "github.com/mesh-intelligence/editions/pkg/types"

// tokenURI concatenates the base URI with the decimal digits of the token
// ID, most significant first. Zero encodes as the single digit "0".
func tokenURI(base []byte, id types.TokenID) []byte {
	uri := append([]byte(nil), base...)
	return append(uri, natDigits(uint64(id))...)
}

// natDigits encodes a natural number as ASCII decimal digits by repeated
// division.
func natDigits(n uint64) []byte {
	if n == 0 {
		return []byte{'0'}
	}
	var digits []byte
	for n > 0 {
		digits = append(digits, byte('0'+n%10))
		n /= 10
	}
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return digits
}
