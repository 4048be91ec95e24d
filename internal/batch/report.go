package batch

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/vmihailenco/msgpack/v5"
)

// Format selects the report encoding.
type Format string

const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatMsgpack:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected text|json|msgpack)", s)
	}
}

// WriteReport encodes report to w.
//
// The text form prints one line per evaluated expression:
//
//	sums.txt:3: 1 + 2 = 3
//	sums.txt:4: 1 / 0: error: 1 / 0: division by zero
func WriteReport(w io.Writer, report *Report, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(report)
	case FormatText, "":
		return writeText(w, report)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func writeText(w io.Writer, report *Report) error {
	bw := bufio.NewWriter(w)
	for i := range report.Files {
		f := &report.Files[i]
		if f.Error != "" {
			fmt.Fprintf(bw, "%s: error: %s\n", f.Path, f.Error)
			continue
		}
		for j := range f.Lines {
			ln := &f.Lines[j]
			if ln.Failed() {
				fmt.Fprintf(bw, "%s:%d: %s: %s\n", f.Path, ln.Line, ln.Input, ln.Text())
				continue
			}
			fmt.Fprintf(bw, "%s:%d: %s = %s\n", f.Path, ln.Line, ln.Expr, ln.Text())
		}
	}
	fmt.Fprintf(bw, "%d files, %d lines, %d failed\n", len(report.Files), report.Lines, report.Failed)
	return bw.Flush()
}

// ReadReport decodes a msgpack report written by WriteReport.
func ReadReport(r io.Reader) (*Report, error) {
	var report Report
	if err := msgpack.NewDecoder(r).Decode(&report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &report, nil
}
