package bignum

import (
	"errors"
	"math/big"
	"testing"
)

const maxFuzzInput = 1 << 12

func FuzzParse(f *testing.F) {
	for _, s := range []string{"0", "-0", "+7", "1000000000", "-999999999999999999", "12a", "", "-", "１２"} {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, s string) {
		if len(s) > maxFuzzInput {
			s = s[:maxFuzzInput]
		}
		x, err := Parse(s)
		// base 10 SetString accepts exactly an optional sign and ASCII digits
		want, ok := new(big.Int).SetString(s, 10)
		if err != nil {
			if !errors.Is(err, ErrParse) {
				t.Fatalf("Parse(%q) error %v does not wrap ErrParse", s, err)
			}
			if ok {
				t.Fatalf("Parse(%q) rejected a decimal math/big accepts: %v", s, err)
			}
			return
		}
		if !ok {
			t.Fatalf("Parse(%q) = %s but math/big rejects it", s, x)
		}
		if !x.IsNormalized() {
			t.Fatalf("Parse(%q) is not normalized: %#v", s, x)
		}
		if x.String() != want.String() {
			t.Fatalf("Parse(%q) = %s; want %s", s, x, want)
		}
		if y := MustParse(x.String()); !Equal(x, y) {
			t.Fatalf("round trip of %s = %s", x, y)
		}
	})
}

func FuzzArith(f *testing.F) {
	f.Add(int64(0), int64(1), uint8(3))
	f.Add(int64(-9223372036854775808), int64(-1), uint8(2))
	f.Add(int64(999999999), int64(1), uint8(1))
	f.Fuzz(func(t *testing.T, a, b int64, scale uint8) {
		// widen the operands so they span several limbs
		shift := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(scale%40)), nil)
		ba := new(big.Int).Mul(big.NewInt(a), shift)
		ba.Add(ba, big.NewInt(b))
		bb := big.NewInt(b)

		x, y := MustParse(ba.String()), FromInt64(b)
		if got := Add(x, y).String(); got != new(big.Int).Add(ba, bb).String() {
			t.Fatalf("Add(%s, %d) = %s", ba, b, got)
		}
		if got := Sub(x, y).String(); got != new(big.Int).Sub(ba, bb).String() {
			t.Fatalf("Sub(%s, %d) = %s", ba, b, got)
		}
		if got := Mul(x, y).String(); got != new(big.Int).Mul(ba, bb).String() {
			t.Fatalf("Mul(%s, %d) = %s", ba, b, got)
		}
		q, r, err := DivMod(x, y)
		if b == 0 {
			if !errors.Is(err, ErrDivByZero) {
				t.Fatalf("DivMod by zero error = %v", err)
			}
			return
		}
		wq, wr := new(big.Int).QuoRem(ba, bb, new(big.Int))
		if err != nil || q.String() != wq.String() || r.String() != wr.String() {
			t.Fatalf("DivMod(%s, %d) = %s, %s, %v; want %s, %s", ba, b, q, r, err, wq, wr)
		}
	})
}
