package bignum

import (
	"errors"
	"fmt"
)

// ErrParse is wrapped by every error returned from Parse.
var ErrParse = errors.New("invalid numeric format")

// ParseError describes a decimal text that could not be converted to a BigInt.
type ParseError struct {
	Input  string // the full input text
	Offset int    // byte offset of the offending character, len(Input) if digits are missing
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v %q: %s", ErrParse, e.Input, e.Reason)
}

// Unwrap returns ErrParse.
func (e *ParseError) Unwrap() error { return ErrParse }

// Parse converts decimal text to a BigInt. The text is an optional '+' or '-'
// followed by one or more ASCII digits; leading zeros are allowed and
// insignificant. No surrounding whitespace is accepted.
func Parse(s string) (BigInt, error) {
	if s == "" {
		return BigInt{}, &ParseError{Input: s, Reason: "empty input"}
	}
	digits := s
	neg := false
	switch digits[0] {
	case '+':
		digits = digits[1:]
	case '-':
		neg = true
		digits = digits[1:]
	}
	if digits == "" {
		return BigInt{}, &ParseError{Input: s, Offset: len(s), Reason: "sign without digits"}
	}
	start := len(s) - len(digits)
	for i := range len(digits) {
		if ch := digits[i]; ch < '0' || ch > '9' {
			return BigInt{}, &ParseError{
				Input:  s,
				Offset: start + i,
				Reason: fmt.Sprintf("invalid digit %q at offset %d", ch, start+i),
			}
		}
	}

	// Group digits into limbs from the least significant end.
	limbs := make([]uint32, (len(digits)+LimbDigits-1)/LimbDigits)
	for i, end := 0, len(digits); end > 0; i, end = i+1, end-LimbDigits {
		lo := max(end-LimbDigits, 0)
		var w uint32
		for _, ch := range []byte(digits[lo:end]) {
			w = w*10 + uint32(ch-'0')
		}
		limbs[i] = w
	}
	return normalize(neg, limbs), nil
}

// MustParse is like Parse but panics if s is not a valid decimal integer.
// It simplifies initialization of package-level values and tests.
func MustParse(s string) BigInt {
	x, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return x
}

// FromLimbs builds a BigInt from a sign and little-endian base 10^9 limbs.
// The limbs are copied and the result is normalized. It returns ErrLimbRange
// if any limb is not below Base.
func FromLimbs(neg bool, limbs []uint32) (BigInt, error) {
	for i, l := range limbs {
		if l >= Base {
			return BigInt{}, fmt.Errorf("%w: limb %d is %d", ErrLimbRange, i, l)
		}
	}
	return normalize(neg, cloneLimbs(limbs)), nil
}

// ErrLimbRange indicates a limb value outside [0, Base).
var ErrLimbRange = errors.New("limb out of range")
