package repl

import (
	"fmt"
	"strings"

	"minisql/internal/engine"
)

// displayTable renders a SELECT's result as an ASCII box. op.Result is a
// comma-row stream with `\,`-escaped values (the same convention as the
// on-disk row format), so it is split with engine.SplitFields rather than
// a raw strings.Split; a plain comma split would misalign columns on any
// projected value containing a literal comma. Column widths come from
// op.MaxColSpace, computed by the executor over the unescaped values.
func (r *REPL) displayTable(op *engine.DbOp) {
	lines := strings.Split(strings.TrimRight(op.Result, "\n"), "\n")
	if len(lines) == 0 {
		return
	}
	header := engine.SplitFields(lines[0])
	rows := make([][]string, 0, len(lines)-1)
	for _, l := range lines[1:] {
		rows = append(rows, engine.SplitFields(l))
	}

	widths := make([]int, len(header))
	for i := range widths {
		widths[i] = op.MaxColSpace
		if len(header[i]) > widths[i] {
			widths[i] = len(header[i])
		}
	}

	r.printSeparator(widths)
	r.printRow(header, widths)
	r.printSeparator(widths)
	for _, row := range rows {
		r.printRow(row, widths)
	}
	r.printSeparator(widths)
	fmt.Fprintf(r.out, "%d row(s)\n", op.RowCount)
}

func (r *REPL) printSeparator(widths []int) {
	fmt.Fprint(r.out, "+")
	for _, w := range widths {
		fmt.Fprint(r.out, strings.Repeat("-", w+2), "+")
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) printRow(values []string, widths []int) {
	fmt.Fprint(r.out, "|")
	for i, w := range widths {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		fmt.Fprintf(r.out, " %-*s |", w, v)
	}
	fmt.Fprintln(r.out)
}
