package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"bigcalc/bignum"
	"bigcalc/internal/calc"
	"bigcalc/internal/orderset"
	"bigcalc/internal/trace"
)

func newSortCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sort [flags] [FILE]",
		Short: "Sort integers numerically and drop duplicates",
		Long: `Read one integer per line from FILE (or stdin when FILE is omitted or "-")
and print the distinct values in numeric order. Blank lines and lines starting
with # are skipped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(a, cmd, args)
		},
	}
	cmd.Flags().Bool("desc", false, "print in descending order")
	cmd.Flags().Bool("min", false, "print only the smallest value")
	cmd.Flags().Bool("max", false, "print only the largest value")
	cmd.MarkFlagsMutuallyExclusive("min", "max")
	return cmd
}

func runSort(a *app, cmd *cobra.Command, args []string) (err error) {
	desc, err := cmd.Flags().GetBool("desc")
	if err != nil {
		return fmt.Errorf("failed to get desc flag: %w", err)
	}
	onlyMin, err := cmd.Flags().GetBool("min")
	if err != nil {
		return fmt.Errorf("failed to get min flag: %w", err)
	}
	onlyMax, err := cmd.Flags().GetBool("max")
	if err != nil {
		return fmt.Errorf("failed to get max flag: %w", err)
	}

	in := cmd.InOrStdin()
	name := "<stdin>"
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close() //nolint:errcheck
		in, name = f, args[0]
	}

	span := trace.Begin(trace.FromContext(cmd.Context()), trace.ScopeDriver, "sort", 0)
	idx := a.timer.Begin("read")
	set, read, err := readSet(in, name)
	a.timer.End(idx, fmt.Sprintf("%d values", read))
	if err != nil {
		span.End(err.Error())
		return err
	}
	span.WithExtra("read", fmt.Sprint(read)).WithExtra("distinct", fmt.Sprint(set.Len())).End("")

	w := bufio.NewWriter(cmd.OutOrStdout())
	defer func() {
		if flushErr := w.Flush(); flushErr != nil && err == nil {
			err = flushErr
		}
	}()

	switch {
	case onlyMin:
		if v, ok := set.Min(); ok {
			fmt.Fprintln(w, v)
		}
	case onlyMax:
		if v, ok := set.Max(); ok {
			fmt.Fprintln(w, v)
		}
	default:
		visit := func(v bignum.BigInt) bool {
			fmt.Fprintln(w, v)
			return true
		}
		if desc {
			set.Descend(visit)
		} else {
			set.Ascend(visit)
		}
	}
	return nil
}

// readSet parses one integer per line into a set and returns how many values were read.
func readSet(r io.Reader, name string) (*orderset.Set, int, error) {
	set := orderset.New()
	br := bufio.NewReader(r)
	read := 0
	for lineNo := 1; ; lineNo++ {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, read, err
		}
		if text := calc.Fold(line); text != "" && !strings.HasPrefix(text, "#") {
			v, perr := bignum.Parse(text)
			if perr != nil {
				return nil, read, fmt.Errorf("%s:%d: %w", name, lineNo, perr)
			}
			set.Insert(v)
			read++
		}
		if err != nil {
			return set, read, nil
		}
	}
}
