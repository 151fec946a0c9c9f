// Package price implements the decimal-string <-> (integer, mantissa)
// conversion at the heart of tbbocodec's wire format. The pair is not a
// canonical numeric encoding: Parse and Format define one specific,
// order-dependent procedure, and the codec preserves whatever pair results
// from it rather than normalizing to a unique representation.
package price

import (
	"strconv"
	"strings"
)

// Price is a decimal value represented as an integer digit sequence plus the
// byte offset, within that sequence, at which a decimal point is rendered.
// Mantissa is a position, not a power of ten.
type Price struct {
	Integer  int32
	Mantissa int8
}

// Parse converts a decimal string into a Price. S may have a leading '-',
// digits, and at most one '.'. Parse never fails: every input string,
// including malformed ones, produces some Price, mirroring the original
// encoder's unchecked atoi-based parser.
func Parse(s string) Price {
	dot := strings.IndexByte(s, '.')
	mantissa := len(s)
	if dot >= 0 {
		mantissa = dot
	}

	// Remove the decimal point, if any, without reallocating the whole string.
	digits := s
	if dot >= 0 {
		digits = s[:dot] + s[dot+1:]
	}

	integer := atoi32(digits)
	offset := 0
	if integer < 0 {
		mantissa--
		offset = 1
	}

	// Leading-zero shrink: a run of '0' digits right after the sign (if any)
	// shifts the decimal point one position left per zero, exactly
	// replicating the reference parser's loop.
	if len(digits) > offset && digits[offset] == '0' {
		for i := offset; i < len(digits) && digits[i] == '0'; i++ {
			mantissa--
		}
	}

	return Price{Integer: integer, Mantissa: int8(mantissa)}
}

// atoi32 parses the leading optional-sign digit run of s the way C's atoi
// does: it stops at the first non-digit rather than erroring, and returns 0
// for a string with no leading digits at all.
func atoi32(s string) int32 {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	n, _ := strconv.ParseInt(s[:end], 10, 32)
	return int32(n)
}

// String renders p using the normalization rules described in §4.1: insert
// the decimal point at Mantissa (shifting left-of-point zeros in when
// Mantissa is negative), then apply the six textual clean-up rules in
// order.
func (p Price) String() string {
	buf := []byte(strconv.FormatInt(int64(p.Integer), 10))

	offset := 0
	if p.Integer < 0 {
		offset = 1
	}

	mantissa := int(p.Mantissa)
	if mantissa < 0 {
		shiftAmount := -mantissa + 1
		buf = shiftRight(buf, 0, shiftAmount)
		for i := offset; i < -mantissa+offset+1; i++ {
			buf[i] = '0'
		}
		if offset == 1 {
			buf[0] = '-'
		}
		mantissa = -mantissa
	}

	buf = shiftRight(buf, mantissa+offset, 1)
	buf[mantissa+offset] = '.'

	switch {
	case buf[0] == '.':
		buf = shiftRight(buf, 0, 1)
		buf[0] = '0'
	case len(buf) >= 2 && buf[0] == '-' && buf[1] == '.':
		buf = shiftRightFrom(buf, 1, 1)
		buf[0] = '-'
		buf[1] = '0'
	case buf[len(buf)-1] == '.':
		buf = buf[:len(buf)-1]
	}

	switch {
	case len(buf) >= 3 && buf[0] == '0' && buf[1] == '0' && buf[2] == '.':
		buf[0], buf[1], buf[2] = '0', '.', '0'
	case len(buf) >= 4 && buf[0] == '-' && buf[1] == '0' && buf[2] == '0' && buf[3] == '.':
		buf[0], buf[1], buf[2], buf[3] = '-', '0', '.', '0'
	}

	if string(buf) == "0.0" {
		return "0"
	}

	return string(buf)
}

// shiftRight grows buf by n bytes and moves everything from pos onward right
// by n, leaving n uninitialized bytes at [pos, pos+n) for the caller to fill.
func shiftRight(buf []byte, pos, n int) []byte {
	grown := make([]byte, len(buf)+n)
	copy(grown, buf[:pos])
	copy(grown[pos+n:], buf[pos:])

	return grown
}

// shiftRightFrom behaves exactly like shiftRight (used by the "-."
// normalization, which opens one slot after the '-' and moves the '.' and
// everything after it one position right).
func shiftRightFrom(buf []byte, pos, n int) []byte {
	return shiftRight(buf, pos, n)
}
