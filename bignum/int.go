package bignum

import (
	"math"
	"math/bits"

	"fortio.org/safecast"
)

// BigInt represents an arbitrary-precision signed integer.
//
// The magnitude is stored as little-endian base 10^9 limbs (limbs[0] is least
// significant). Canonical zero is neg=false with nil limbs, which is also the
// zero value of the type. Values are immutable: every operation returns a new
// BigInt and never modifies its operands, so a BigInt may be shared freely
// between goroutines.
type BigInt struct {
	neg   bool
	limbs []uint32
}

// normalize strips trailing zero limbs and clears the sign of zero.
func normalize(neg bool, limbs []uint32) BigInt {
	limbs = trimLimbs(limbs)
	if len(limbs) == 0 {
		return BigInt{}
	}
	return BigInt{neg: neg, limbs: limbs}
}

// Zero returns the canonical zero.
func Zero() BigInt { return BigInt{} }

// One returns 1.
func One() BigInt { return BigInt{limbs: []uint32{1}} }

// FromInt64 creates a BigInt from an int64.
func FromInt64(v int64) BigInt {
	if v >= 0 {
		return normalize(false, limbsFromUint64(uint64(v)))
	}
	// -(v+1) never overflows, including for math.MinInt64.
	u := uint64(-(v + 1)) //nolint:gosec // G115: -(v+1) is non-negative here.
	u++
	return normalize(true, limbsFromUint64(u))
}

// FromUint64 creates a BigInt from a uint64.
func FromUint64(v uint64) BigInt {
	return normalize(false, limbsFromUint64(v))
}

// IsZero reports whether x == 0.
func (x BigInt) IsZero() bool { return len(x.limbs) == 0 }

// IsNeg reports whether x < 0.
func (x BigInt) IsNeg() bool { return x.neg }

// Sign returns -1, 0, or +1 depending on the sign of x.
func (x BigInt) Sign() int {
	switch {
	case len(x.limbs) == 0:
		return 0
	case x.neg:
		return -1
	default:
		return 1
	}
}

// Limbs returns a copy of the magnitude limbs, least significant first.
func (x BigInt) Limbs() []uint32 { return cloneLimbs(x.limbs) }

// Len returns the number of limbs in the magnitude of x.
func (x BigInt) Len() int { return len(x.limbs) }

// IsNormalized reports whether x satisfies the representation invariants:
// no trailing zero limb, no negative zero and every limb below Base.
func (x BigInt) IsNormalized() bool {
	if len(x.limbs) == 0 {
		return !x.neg
	}
	if x.limbs[len(x.limbs)-1] == 0 {
		return false
	}
	for _, l := range x.limbs {
		if l >= Base {
			return false
		}
	}
	return true
}

// Int64 converts x to an int64. The boolean is false if x does not fit.
func (x BigInt) Int64() (int64, bool) {
	mag, ok := x.magUint64()
	if !ok {
		return 0, false
	}
	if !x.neg {
		v, err := safecast.Conv[int64](mag)
		return v, err == nil
	}
	// Negative: allow magnitude up to 2^63.
	if mag == 1<<63 {
		return math.MinInt64, true
	}
	v, err := safecast.Conv[int64](mag)
	if err != nil {
		return 0, false
	}
	return -v, true
}

// Uint64 converts a non-negative x to a uint64. The boolean is false if x is
// negative or does not fit.
func (x BigInt) Uint64() (uint64, bool) {
	if x.neg {
		return 0, false
	}
	return x.magUint64()
}

func (x BigInt) magUint64() (uint64, bool) {
	var mag uint64
	for i := len(x.limbs) - 1; i >= 0; i-- {
		hi, lo := bits.Mul64(mag, Base)
		if hi != 0 {
			return 0, false
		}
		var carry uint64
		mag, carry = bits.Add64(lo, uint64(x.limbs[i]), 0)
		if carry != 0 {
			return 0, false
		}
	}
	return mag, true
}

// Cmp compares a and b and returns -1 if a < b, 0 if a == b and +1 if a > b.
func Cmp(a, b BigInt) int {
	if a.neg != b.neg {
		if a.neg {
			return -1
		}
		return 1
	}
	c := cmpLimbs(a.limbs, b.limbs)
	if a.neg {
		return -c
	}
	return c
}

// CmpAbs compares the magnitudes |a| and |b|.
func CmpAbs(a, b BigInt) int { return cmpLimbs(a.limbs, b.limbs) }

// Equal reports whether a == b.
func Equal(a, b BigInt) bool { return Cmp(a, b) == 0 }

// Less reports whether a < b.
func Less(a, b BigInt) bool { return Cmp(a, b) < 0 }

// LessEq reports whether a <= b.
func LessEq(a, b BigInt) bool { return Cmp(a, b) <= 0 }

// Greater reports whether a > b.
func Greater(a, b BigInt) bool { return Cmp(a, b) > 0 }

// GreaterEq reports whether a >= b.
func GreaterEq(a, b BigInt) bool { return Cmp(a, b) >= 0 }

// Cmp compares x and y. See the package-level Cmp.
func (x BigInt) Cmp(y BigInt) int { return Cmp(x, y) }

// Equal reports whether x == y.
func (x BigInt) Equal(y BigInt) bool { return Cmp(x, y) == 0 }

// Neg returns -a.
func Neg(a BigInt) BigInt { return normalize(!a.neg, a.limbs) }

// Abs returns |a|.
func Abs(a BigInt) BigInt { return normalize(false, a.limbs) }

// Add returns a + b.
func Add(a, b BigInt) BigInt {
	if a.neg == b.neg {
		return normalize(a.neg, magAdd(a.limbs, b.limbs))
	}
	switch cmpLimbs(a.limbs, b.limbs) {
	case 0:
		return BigInt{}
	case 1:
		return normalize(a.neg, magSub(a.limbs, b.limbs))
	default:
		return normalize(b.neg, magSub(b.limbs, a.limbs))
	}
}

// Sub returns a - b.
func Sub(a, b BigInt) BigInt {
	if a.neg != b.neg {
		return normalize(a.neg, magAdd(a.limbs, b.limbs))
	}
	switch cmpLimbs(a.limbs, b.limbs) {
	case 0:
		return BigInt{}
	case 1:
		return normalize(a.neg, magSub(a.limbs, b.limbs))
	default:
		return normalize(!a.neg, magSub(b.limbs, a.limbs))
	}
}

// Mul returns a * b.
func Mul(a, b BigInt) BigInt {
	return normalize(a.neg != b.neg, magMul(a.limbs, b.limbs))
}

// DivMod returns the quotient and remainder of a / b, truncated toward zero,
// so that a == b*q + r and |r| < |b|. The remainder has the sign of a.
// It returns ErrDivByZero if b is zero.
func DivMod(a, b BigInt) (q, r BigInt, err error) {
	if len(b.limbs) == 0 {
		return BigInt{}, BigInt{}, ErrDivByZero
	}
	if len(a.limbs) == 0 {
		return BigInt{}, BigInt{}, nil
	}
	qMag, rMag := magDivMod(a.limbs, b.limbs)
	return normalize(a.neg != b.neg, qMag), normalize(a.neg, rMag), nil
}

// Quo returns the quotient a / b truncated toward zero.
func Quo(a, b BigInt) (BigInt, error) {
	q, _, err := DivMod(a, b)
	return q, err
}

// Rem returns the remainder of a / b with the sign of a.
func Rem(a, b BigInt) (BigInt, error) {
	_, r, err := DivMod(a, b)
	return r, err
}
