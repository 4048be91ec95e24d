package bignum

import (
	"errors"
	"math/bits"
)

const (
	// Base is the radix of a limb. Every limb holds LimbDigits decimal digits.
	Base = 1_000_000_000
	// LimbDigits is the number of decimal digits stored in a full limb.
	LimbDigits = 9
)

// ErrDivByZero indicates an attempt to divide by zero.
var ErrDivByZero = errors.New("division by zero")

// Magnitudes below are little-endian []uint32 slices in base 10^9 with no
// trailing zero limbs. Every helper returns a freshly allocated slice and never
// writes into its arguments.

func trimLimbs(limbs []uint32) []uint32 {
	for len(limbs) > 0 && limbs[len(limbs)-1] == 0 {
		limbs = limbs[:len(limbs)-1]
	}
	if len(limbs) == 0 {
		return nil
	}
	return limbs
}

func cloneLimbs(limbs []uint32) []uint32 {
	if len(limbs) == 0 {
		return nil
	}
	out := make([]uint32, len(limbs))
	copy(out, limbs)
	return out
}

// cmpLimbs compares two trimmed magnitudes and returns -1, 0, or 1.
func cmpLimbs(a, b []uint32) int {
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	for i := len(a) - 1; i >= 0; i-- {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// limbsFromUint64 splits v into base 10^9 limbs, least significant first.
func limbsFromUint64(v uint64) []uint32 {
	if v == 0 {
		return nil
	}
	out := make([]uint32, 0, 3)
	for v > 0 {
		out = append(out, uint32(v%Base)) //nolint:gosec // G115: v%Base < 10^9 fits in uint32.
		v /= Base
	}
	return out
}

// magAdd returns x + y.
func magAdd(x, y []uint32) []uint32 {
	if len(x) < len(y) {
		x, y = y, x
	}
	if len(x) == 0 {
		return nil
	}
	out := make([]uint32, len(x)+1)
	var carry uint32
	for i := range x {
		// x[i] + y[i] + carry <= 2*Base-1, no uint32 overflow.
		s := x[i] + carry
		if i < len(y) {
			s += y[i]
		}
		carry = 0
		if s >= Base {
			s -= Base
			carry = 1
		}
		out[i] = s
	}
	out[len(x)] = carry
	return trimLimbs(out)
}

// magSub returns x - y. The caller guarantees x >= y.
func magSub(x, y []uint32) []uint32 {
	out := make([]uint32, len(x))
	var borrow uint32
	for i := range x {
		var yi uint32
		if i < len(y) {
			yi = y[i]
		}
		d, b := bits.Sub32(x[i], yi, borrow)
		if b != 0 {
			// wrapped modulo 2^32; adding Base lands back in [0, Base)
			d += Base
		}
		out[i] = d
		borrow = b
	}
	if borrow != 0 {
		// Add and Sub order operands by cmpLimbs and magDivMod only subtracts
		// a multiple it has compared, so reaching here is a bug in this package.
		panic("bignum: magSub underflow")
	}
	return trimLimbs(out)
}

// magMul returns x * y using the schoolbook algorithm.
func magMul(x, y []uint32) []uint32 {
	if len(x) == 0 || len(y) == 0 {
		return nil
	}
	out := make([]uint32, len(x)+len(y))
	for i, xi := range x {
		if xi == 0 {
			continue
		}
		var carry uint64
		for j, yj := range y {
			k := i + j
			// < 10^9 + (10^9-1)^2 + 10^9 + 1, well inside uint64.
			t := uint64(out[k]) + uint64(xi)*uint64(yj) + carry
			out[k] = uint32(t % Base) //nolint:gosec // G115: t%Base fits in uint32.
			carry = t / Base
		}
		for k := i + len(y); carry != 0; k++ {
			t := uint64(out[k]) + carry
			out[k] = uint32(t % Base) //nolint:gosec // G115: t%Base fits in uint32.
			carry = t / Base
		}
	}
	return trimLimbs(out)
}

// mulLimb returns x * m for a single limb m < Base.
func mulLimb(x []uint32, m uint32) []uint32 {
	if m == 0 || len(x) == 0 {
		return nil
	}
	out := make([]uint32, len(x)+1)
	var carry uint64
	for i, xi := range x {
		t := uint64(xi)*uint64(m) + carry
		out[i] = uint32(t % Base) //nolint:gosec // G115: t%Base fits in uint32.
		carry = t / Base
	}
	out[len(x)] = uint32(carry) //nolint:gosec // G115: carry < Base.
	return trimLimbs(out)
}

// shiftIn returns r*Base + limb.
func shiftIn(r []uint32, limb uint32) []uint32 {
	if len(r) == 0 {
		if limb == 0 {
			return nil
		}
		return []uint32{limb}
	}
	out := make([]uint32, len(r)+1)
	out[0] = limb
	copy(out[1:], r)
	return out
}

// magDivModSmall divides u by a single nonzero limb d.
func magDivModSmall(u []uint32, d uint32) (q []uint32, r uint32) {
	q = make([]uint32, len(u))
	var rem uint64
	for i := len(u) - 1; i >= 0; i-- {
		cur := rem*Base + uint64(u[i])
		q[i] = uint32(cur / uint64(d)) //nolint:gosec // G115: rem < d, so the quotient digit is < Base.
		rem = cur % uint64(d)
	}
	return trimLimbs(q), uint32(rem) //nolint:gosec // G115: rem < d fits in uint32.
}

// magDivMod returns the quotient and remainder of u / v for nonzero v.
//
// The quotient is produced one limb at a time from the most significant end.
// Each digit is the largest d in [0, Base) with d*v <= r, found by binary
// search, where r is the running remainder with the next dividend limb shifted
// in. The invariant r < v*Base keeps every digit below Base.
func magDivMod(u, v []uint32) (q, r []uint32) {
	if len(v) == 0 {
		// DivMod returns ErrDivByZero before calling here
		panic("bignum: magDivMod by zero")
	}
	if cmpLimbs(u, v) < 0 {
		return nil, cloneLimbs(u)
	}
	if len(v) == 1 {
		qs, rs := magDivModSmall(u, v[0])
		return qs, limbsFromUint64(uint64(rs))
	}

	q = make([]uint32, len(u))
	for i := len(u) - 1; i >= 0; i-- {
		r = shiftIn(r, u[i])
		if cmpLimbs(r, v) < 0 {
			continue
		}
		lo, hi := uint32(1), uint32(Base-1)
		for lo < hi {
			mid := lo + (hi-lo+1)/2
			if cmpLimbs(mulLimb(v, mid), r) <= 0 {
				lo = mid
			} else {
				hi = mid - 1
			}
		}
		q[i] = lo
		r = magSub(r, mulLimb(v, lo))
	}
	return trimLimbs(q), r
}
