/*
Package bignum implements arbitrary-precision signed integers.

A BigInt stores its magnitude as little-endian limbs in base 10^9, so
conversion to and from decimal text is a matter of grouping nine digits per
limb. The zero value of BigInt is 0:

	var x bignum.BigInt // x == 0

Values are immutable. Operations are plain functions returning fresh values:

	a := bignum.FromInt64(1002323809800980)
	b := bignum.MustParse("-123456789012345678901234567890")
	s := bignum.Add(a, b)
	q, r, err := bignum.DivMod(b, a) // truncated toward zero, r has the sign of b

Every BigInt handed out by the package is normalized: the most significant
limb is nonzero and zero is never negative, so two BigInts denote the same
number exactly when Equal reports true.

Parse returns a *ParseError wrapping ErrParse for malformed text, and DivMod,
Quo and Rem return ErrDivByZero for a zero divisor. All other operations are
total.
*/
package bignum
