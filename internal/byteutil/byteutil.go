// Package byteutil provides small bit and formatting helpers shared by the
// byte matchers. These functions operate on single byte values and never
// allocate on the hot path.
package byteutil

import (
	"fmt"
	"math/bits"
)

// CountSetBits returns the number of 1-bits in b.
func CountSetBits(b byte) int {
	return bits.OnesCount8(b)
}

// CountUnsetBits returns the number of 0-bits in b.
func CountUnsetBits(b byte) int {
	return 8 - bits.OnesCount8(b)
}

// IsPrintable reports whether b is a printable single-byte character,
// excluding the quote characters used by the pretty-printed regex forms.
func IsPrintable(b byte) bool {
	return b >= ' ' && b <= '~' && b != '\'' && b != '"'
}

// ByteToString formats a byte value for the canonical regex forms.
// When prettyPrint is true, printable characters render quoted ('A');
// everything else renders as a two-digit lowercase hex byte.
func ByteToString(prettyPrint bool, b byte) string {
	if prettyPrint && IsPrintable(b) {
		return fmt.Sprintf("'%c'", b)
	}
	return fmt.Sprintf("%02x", b)
}

// BytesToString formats a sequence of byte values using ByteToString,
// separating them with spaces when prettyPrint is set.
func BytesToString(prettyPrint bool, values []byte) string {
	out := make([]byte, 0, len(values)*3)
	for i, b := range values {
		if prettyPrint && i > 0 {
			out = append(out, ' ')
		}
		out = append(out, ByteToString(prettyPrint, b)...)
	}
	return string(out)
}
