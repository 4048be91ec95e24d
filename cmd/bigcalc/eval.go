package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"bigcalc/internal/calc"
	"bigcalc/internal/trace"
)

func newEvalCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval [flags] [--] A OP B",
		Short: "Evaluate one expression",
		Long: `Evaluate "N" or "A OP B" where OP is one of + - * / % divmod cmp.
Division truncates toward zero and the remainder takes the dividend's sign.
Put "--" before negative operands so they are not read as flags.`,
		Example: `  bigcalc eval 123456789012345678901234567890 '*' 987654321
  bigcalc eval -- -7 divmod 2`,
		Args: cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(a, cmd, args)
		},
	}
	cmd.Flags().Bool("show-expr", false, "print the normalized expression before the result")
	return cmd
}

func runEval(a *app, cmd *cobra.Command, args []string) error {
	showExpr, err := cmd.Flags().GetBool("show-expr")
	if err != nil {
		return fmt.Errorf("failed to get show-expr flag: %w", err)
	}

	line := strings.Join(args, " ")
	span := trace.Begin(trace.FromContext(cmd.Context()), trace.ScopeDriver, "eval", 0)
	idx := a.timer.Begin("eval")
	res, err := calc.Eval(line)
	a.timer.End(idx, "")
	if err != nil {
		span.End(err.Error())
		return err
	}
	span.End(string(res.Op))

	out := cmd.OutOrStdout()
	if showExpr && res.Op != calc.OpValue {
		fmt.Fprintf(out, "%s = ", color.New(color.Faint).Sprint(res.Expr))
	}
	fmt.Fprintln(out, res.Text())
	return nil
}
