package calc

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// LineResult is the outcome of one non-blank input line.
type LineResult struct {
	Line   int // 1-based
	Input  string
	Result Result
	Err    error
}

// EvalAll evaluates every line of r. Blank lines and lines starting with '#'
// are skipped. Per-line failures are recorded in LineResult.Err; the returned
// error is reserved for read failures.
func EvalAll(r io.Reader) ([]LineResult, error) {
	br := bufio.NewReader(r)
	var out []LineResult
	for lineNo := 1; ; lineNo++ {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return out, err
		}
		text := strings.TrimRight(line, "\r\n")
		if folded := Fold(text); folded != "" && !strings.HasPrefix(folded, "#") {
			res, evalErr := Eval(text)
			out = append(out, LineResult{Line: lineNo, Input: text, Result: res, Err: evalErr})
		}
		if err != nil {
			return out, nil
		}
	}
}
