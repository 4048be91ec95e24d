// Package calc evaluates one-line integer expressions over bignum values.
//
// A line is either a single integer, which evaluates to its normalized form,
// or a binary expression "A OP B" with whitespace around OP:
//
//	123 + -456
//	10000000000 divmod 7
//	-5 cmp 3
//
// Input is folded with Unicode NFKC first, so full-width digits and signs
// are accepted.
package calc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"bigcalc/bignum"
)

// ErrSyntax reports a line that is not "N" or "A OP B".
var ErrSyntax = errors.New("syntax error")

// Op is a binary operator.
type Op string

const (
	OpValue  Op = ""       // single operand, no operator
	OpAdd    Op = "+"      // sum
	OpSub    Op = "-"      // difference
	OpMul    Op = "*"      // product
	OpQuo    Op = "/"      // truncated quotient
	OpRem    Op = "%"      // remainder with the dividend's sign
	OpDivMod Op = "divmod" // quotient and remainder
	OpCmp    Op = "cmp"    // three-way comparison
)

// ParseOp recognizes an operator token.
func ParseOp(s string) (Op, bool) {
	switch op := Op(strings.ToLower(s)); op {
	case OpAdd, OpSub, OpMul, OpQuo, OpRem, OpDivMod, OpCmp:
		return op, true
	}
	return OpValue, false
}

// Result is the outcome of one expression.
type Result struct {
	Expr  string         // normalized expression text
	Op    Op             // operator, OpValue for a bare operand
	Value bignum.BigInt  // result, quotient for OpDivMod, unused for OpCmp
	Rem   *bignum.BigInt // remainder, set only for OpDivMod
	Cmp   int            // -1, 0 or +1, set only for OpCmp
}

// Text renders the result the way the CLI prints it.
func (r Result) Text() string {
	switch r.Op {
	case OpCmp:
		return strconv.Itoa(r.Cmp)
	case OpDivMod:
		if r.Rem != nil {
			return r.Value.String() + " " + r.Rem.String()
		}
	}
	return r.Value.String()
}

// Fold applies NFKC normalization and trims surrounding space.
func Fold(line string) string {
	return strings.TrimSpace(norm.NFKC.String(line))
}

// Eval evaluates a single expression.
func Eval(line string) (Result, error) {
	fields := strings.Fields(Fold(line))
	switch len(fields) {
	case 1:
		v, err := bignum.Parse(fields[0])
		if err != nil {
			return Result{}, err
		}
		return Result{Expr: v.String(), Op: OpValue, Value: v}, nil
	case 3:
		return eval(fields[0], fields[1], fields[2])
	case 0:
		return Result{}, fmt.Errorf("%w: empty expression", ErrSyntax)
	default:
		return Result{}, fmt.Errorf("%w: expected \"N\" or \"A OP B\", got %d tokens", ErrSyntax, len(fields))
	}
}

// Apply evaluates "a op b" on already-parsed operands.
func Apply(a bignum.BigInt, op Op, b bignum.BigInt) (Result, error) {
	res := Result{Expr: a.String() + " " + string(op) + " " + b.String(), Op: op}
	switch op {
	case OpAdd:
		res.Value = bignum.Add(a, b)
	case OpSub:
		res.Value = bignum.Sub(a, b)
	case OpMul:
		res.Value = bignum.Mul(a, b)
	case OpQuo, OpRem, OpDivMod:
		q, r, err := bignum.DivMod(a, b)
		if err != nil {
			return Result{}, fmt.Errorf("%s: %w", res.Expr, err)
		}
		switch op {
		case OpQuo:
			res.Value = q
		case OpRem:
			res.Value = r
		default:
			res.Value, res.Rem = q, &r
		}
	case OpCmp:
		res.Cmp = bignum.Cmp(a, b)
	default:
		return Result{}, fmt.Errorf("%w: unknown operator %q", ErrSyntax, op)
	}
	return res, nil
}

func eval(lhs, opText, rhs string) (Result, error) {
	op, ok := ParseOp(opText)
	if !ok {
		return Result{}, fmt.Errorf("%w: unknown operator %q", ErrSyntax, opText)
	}
	a, err := bignum.Parse(lhs)
	if err != nil {
		return Result{}, fmt.Errorf("left operand: %w", err)
	}
	b, err := bignum.Parse(rhs)
	if err != nil {
		return Result{}, fmt.Errorf("right operand: %w", err)
	}
	return Apply(a, op, b)
}
