// Package repl implements the interactive read-eval-print loop: banner,
// login gate, dot-commands, and SQL statement dispatch.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"minisql/internal/auth"
	"minisql/internal/catalog"
	"minisql/internal/cliio"
	"minisql/internal/engine"
	"minisql/internal/lexer"
	"minisql/internal/parser"
)

const banner = `
Booting MiniSQL - v1
=====================================================
m    m   iii   nnnn    iii   ssss    q q q       ll
mm  mm    i    n   n    i    ss      q   q    q  ll
m mm m    i    n   n    i     sss    qqqqq   q   ll
m    m    i    n   n    i        ss      q q     ll
m    m   iii   n   n   iii    ssss       qq      lllll
=====================================================
`

// REPL drives one interactive session over a data directory.
type REPL struct {
	dir   string
	cat   *catalog.Catalog
	shell *cliio.Shell
	in    *bufio.Reader
	out   io.Writer
	log   logrus.FieldLogger

	quit bool
}

// New builds a REPL reading from in and writing results/prompts to out.
// A single *bufio.Reader is shared between the login prompts and the
// statement shell so no buffered input bytes are stranded between them.
func New(dir string, cat *catalog.Catalog, in io.Reader, out io.Writer, log logrus.FieldLogger) *REPL {
	buffered := bufio.NewReader(in)
	return &REPL{
		dir:   dir,
		cat:   cat,
		shell: cliio.NewShellFromReader(buffered, out),
		in:    buffered,
		out:   out,
		log:   log,
	}
}

// Run prints the banner, runs the login gate, then loops reading and
// executing statements until `quit;`, a dot `.exit`, or EOF.
func (r *REPL) Run() {
	fmt.Fprintln(r.out, banner)

	if err := auth.Bootstrap(r.dir, r.cat, r.in, r.out); err != nil {
		r.log.Errorf("startup: %v", err)
		return
	}
	if err := auth.Login(r.dir, r.cat, r.in, r.out); err != nil {
		fmt.Fprintln(r.out, "Login failed:", err)
		return
	}

	fmt.Fprintln(r.out, `Enter ".help" for usage hints.`)

	for !r.quit {
		stmt, eof := r.shell.ReadStatement()
		stmt = strings.TrimSpace(stmt)

		if stmt == "" {
			if eof {
				fmt.Fprintln(r.out)
				return
			}
			continue
		}

		r.handle(stmt)
		if eof {
			return
		}
	}
}

// handle dispatches one statement: a dot-command, a tolerated
// non-SQL sub-command (quit;/create user;/list tables;), or raw SQL.
func (r *REPL) handle(stmt string) {
	switch {
	case strings.HasPrefix(stmt, "."):
		r.handleDotCommand(stmt)
		return
	case strings.EqualFold(stmt, "quit;"):
		r.quit = true
		return
	case strings.EqualFold(stmt, "create user;"):
		if err := auth.CreateUser(r.dir, r.cat, r.in, r.out); err != nil {
			fmt.Fprintln(r.out, "Error:", err)
		}
		return
	case strings.EqualFold(stmt, "list tables;"):
		r.showTables()
		return
	}

	toks, err := lexer.Lex(stmt)
	if err != nil {
		fmt.Fprintln(r.out, err)
		return
	}
	node, err := parser.Parse(toks, stmt)
	if err != nil {
		fmt.Fprintln(r.out, err)
		return
	}
	if node.IsInvalid {
		fmt.Fprintln(r.out, "invalid statement")
		return
	}

	op := engine.Exec(r.dir, node, r.cat)
	r.displayResult(op)
}

func (r *REPL) displayResult(op *engine.DbOp) {
	switch op.Code {
	case engine.Success:
		if op.ColCount > 0 {
			r.displayTable(op)
			return
		}
		if op.SuccessMsg != "" {
			fmt.Fprintln(r.out, op.SuccessMsg)
		}
	case engine.Fail:
		fmt.Fprintln(r.out, "Error:", op.Error)
	case engine.InternalError:
		r.log.Errorf("%s: %s", op.Action, op.Error)
		fmt.Fprintln(r.out, "Internal error:", op.Error)
	}
}

func (r *REPL) handleDotCommand(cmd string) {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return
	}
	switch strings.ToLower(fields[0]) {
	case ".exit", ".quit":
		r.quit = true
	case ".help":
		r.printHelp()
	case ".tables":
		r.showTables()
	case ".schema":
		if len(fields) > 1 {
			r.showSchema(strings.TrimSuffix(fields[1], ";"))
		} else {
			r.showAllSchemas()
		}
	default:
		fmt.Fprintf(r.out, "Unknown command: %s\n", fields[0])
	}
}

func (r *REPL) printHelp() {
	fmt.Fprint(r.out, `
.exit, .quit       Exit this program
.help              Show this help message
.schema [TABLE]    Show the CREATE statement for table(s)
.tables            List all tables

quit;              Exit this program
create user;       Add another account
list tables;       List all tables

Enter SQL statements terminated with a semicolon.
Multi-line statements are supported.
`)
}

func (r *REPL) showTables() {
	tables := r.cat.Tables()
	if len(tables) == 0 {
		fmt.Fprintln(r.out, "(no tables)")
		return
	}
	for _, t := range tables {
		fmt.Fprintln(r.out, t.Table.Lexeme)
	}
}

func (r *REPL) showSchema(table string) {
	node, err := r.cat.Lookup(table)
	if err != nil {
		fmt.Fprintf(r.out, "Error: no such table: %s\n", table)
		return
	}
	fmt.Fprintln(r.out, node.SQL)
}

func (r *REPL) showAllSchemas() {
	for _, t := range r.cat.Tables() {
		fmt.Fprintln(r.out, t.SQL)
	}
}
