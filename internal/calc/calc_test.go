package calc

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"bigcalc/bignum"
)

func TestEval(t *testing.T) {
	tests := []struct {
		line string
		op   Op
		text string
	}{
		{"42", OpValue, "42"},
		{"  -0007  ", OpValue, "-7"},
		{"-0", OpValue, "0"},
		{"999999999 + 1", OpAdd, "1000000000"},
		{"1000000000 - 1", OpSub, "999999999"},
		{"5 - -3", OpSub, "8"},
		{"-123456789 * 1000000000", OpMul, "-123456789000000000"},
		{"-7 / 2", OpQuo, "-3"},
		{"-7 % 2", OpRem, "-1"},
		{"7 % -2", OpRem, "1"},
		{"123456789012345678901234567890 divmod 987654321987654321", OpDivMod, "124999998748 432099904777777782"},
		{"-5 cmp 3", OpCmp, "-1"},
		{"5 CMP 5", OpCmp, "0"},
		{"１２３ ＋ ４", OpAdd, "127"},
		{"1\t*\t0", OpMul, "0"},
	}
	for _, tt := range tests {
		res, err := Eval(tt.line)
		if err != nil {
			t.Errorf("Eval(%q): %v", tt.line, err)
			continue
		}
		if res.Op != tt.op {
			t.Errorf("Eval(%q).Op = %q; want %q", tt.line, res.Op, tt.op)
		}
		if got := res.Text(); got != tt.text {
			t.Errorf("Eval(%q).Text() = %q; want %q", tt.line, got, tt.text)
		}
	}
}

func TestEvalExpr(t *testing.T) {
	res, err := Eval("+0010 * -0")
	if err != nil {
		t.Fatal(err)
	}
	if res.Expr != "10 * 0" {
		t.Fatalf("Expr = %q", res.Expr)
	}
	if !res.Value.IsZero() || res.Value.IsNeg() {
		t.Fatalf("Value = %#v", res.Value)
	}
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		line string
		want error
	}{
		{"", ErrSyntax},
		{"1 +", ErrSyntax},
		{"1 + 2 + 3", ErrSyntax},
		{"1 ^ 2", ErrSyntax},
		{"abc", bignum.ErrParse},
		{"1 + x", bignum.ErrParse},
		{"1x + 2", bignum.ErrParse},
		{"1 / 0", bignum.ErrDivByZero},
		{"1 % -0", bignum.ErrDivByZero},
		{"0 divmod 0", bignum.ErrDivByZero},
	}
	for _, tt := range tests {
		_, err := Eval(tt.line)
		if !errors.Is(err, tt.want) {
			t.Errorf("Eval(%q) error = %v; want %v", tt.line, err, tt.want)
		}
	}
}

func TestApplyDivModRemainder(t *testing.T) {
	a := bignum.MustParse("-123456789012345678901234567890")
	b := bignum.FromInt64(1000000007)
	res, err := Apply(a, OpDivMod, b)
	if err != nil {
		t.Fatal(err)
	}
	if res.Rem == nil {
		t.Fatal("divmod result without remainder")
	}
	if res.Value.String() != "-123456788148148161864" || res.Rem.String() != "-197434842" {
		t.Fatalf("divmod = %s %s", res.Value, res.Rem)
	}
}

func TestEvalAll(t *testing.T) {
	input := "# sums\n1 + 2\n\n  \n3 * x\r\n# done\n10 / 3"
	results, err := EvalAll(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	type row struct {
		Line  int
		Input string
		Text  string
		Err   bool
	}
	got := make([]row, len(results))
	for i, r := range results {
		got[i] = row{Line: r.Line, Input: r.Input, Text: r.Result.Text(), Err: r.Err != nil}
	}
	want := []row{
		{Line: 2, Input: "1 + 2", Text: "3"},
		{Line: 5, Input: "3 * x", Text: "0", Err: true},
		{Line: 7, Input: "10 / 3", Text: "3"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("EvalAll mismatch (-want +got):\n%s", diff)
	}
	if !errors.Is(results[1].Err, bignum.ErrParse) {
		t.Fatalf("line 5 error = %v", results[1].Err)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestEvalAllReadError(t *testing.T) {
	if _, err := EvalAll(failingReader{}); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("EvalAll error = %v", err)
	}
}
