package batch

import (
	"fmt"
	"strconv"

	"fortio.org/safecast"

	"bigcalc/bignum"
	"bigcalc/internal/calc"
)

// LineRecord is the serializable outcome of one input line.
type LineRecord struct {
	Line  uint32         `json:"line" msgpack:"line"`
	Input string         `json:"input" msgpack:"input"`
	Expr  string         `json:"expr,omitempty" msgpack:"expr,omitempty"`
	Op    string         `json:"op,omitempty" msgpack:"op,omitempty"`
	Value *bignum.BigInt `json:"value,omitempty" msgpack:"value,omitempty"`
	Rem   *bignum.BigInt `json:"rem,omitempty" msgpack:"rem,omitempty"`
	Cmp   *int           `json:"cmp,omitempty" msgpack:"cmp,omitempty"`
	Error string         `json:"error,omitempty" msgpack:"error,omitempty"`
}

// Failed reports whether the line did not evaluate.
func (r *LineRecord) Failed() bool { return r.Error != "" }

// Text renders the result the way calc.Result.Text does, or the error message.
func (r *LineRecord) Text() string {
	switch {
	case r.Failed():
		return "error: " + r.Error
	case r.Cmp != nil:
		return strconv.Itoa(*r.Cmp)
	case r.Value == nil:
		return ""
	case r.Rem != nil:
		return r.Value.String() + " " + r.Rem.String()
	default:
		return r.Value.String()
	}
}

func newLineRecord(lr *calc.LineResult) (LineRecord, error) {
	line, err := safecast.Conv[uint32](lr.Line)
	if err != nil {
		return LineRecord{}, fmt.Errorf("line number %d: %w", lr.Line, err)
	}
	rec := LineRecord{Line: line, Input: lr.Input}
	if lr.Err != nil {
		rec.Error = lr.Err.Error()
		return rec, nil
	}

	res := lr.Result
	rec.Expr = res.Expr
	rec.Op = string(res.Op)
	if res.Op == calc.OpCmp {
		c := res.Cmp
		rec.Cmp = &c
		return rec, nil
	}
	v := res.Value
	rec.Value = &v
	if res.Rem != nil {
		r := *res.Rem
		rec.Rem = &r
	}
	return rec, nil
}
