// Command minisql runs the interactive SQL shell, or executes a script
// file non-interactively when one is given as a positional argument.
//
// Usage:
//
//	minisql [-data DIR] [script.sql]
//
// If DIR does not yet exist it is created. An interactive session whose
// data directory has no `user` table creates it and prompts for a first
// account, then prompts for a login; batch mode does neither.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"minisql/internal/applog"
	"minisql/internal/catalog"
	"minisql/internal/cliio"
	"minisql/internal/engine"
	"minisql/internal/lexer"
	"minisql/internal/parser"
	"minisql/internal/repl"
)

func main() {
	dataDir := flag.String("data", "./data", "path to the data directory")
	flag.Parse()

	log := applog.New()

	if err := os.MkdirAll(*dataDir, 0o755); err != nil {
		log.Fatalf("create data directory: %v", err)
	}

	cat, err := catalog.New(*dataDir, log)
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}

	if scriptPath := flag.Arg(0); scriptPath != "" {
		if err := runBatch(*dataDir, cat, scriptPath, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		return
	}

	repl.New(*dataDir, cat, os.Stdin, os.Stdout, log).Run()
}

// runBatch feeds scriptPath through the lexer/parser/engine pipeline one
// statement at a time, using the shell's own statement-boundary detector
// so multi-line statements in a script behave identically to interactive
// ones. Batch mode has no interactive operator, so the login gate is
// skipped entirely; the engine itself does not require it.
func runBatch(dataDir string, cat *catalog.Catalog, scriptPath string, out *os.File) error {
	f, err := os.Open(scriptPath)
	if err != nil {
		return err
	}
	defer f.Close()

	shell := cliio.NewShell(f, nil)
	for {
		stmt, eof := shell.ReadStatement()
		stmt = strings.TrimSpace(stmt)
		if stmt != "" {
			runStatement(dataDir, cat, stmt, out)
		}
		if eof {
			return nil
		}
	}
}

func runStatement(dataDir string, cat *catalog.Catalog, stmt string, out *os.File) {
	toks, err := lexer.Lex(stmt)
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}
	node, err := parser.Parse(toks, stmt)
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}
	if node.IsInvalid {
		fmt.Fprintln(out, "invalid statement:", stmt)
		return
	}

	op := engine.Exec(dataDir, node, cat)
	switch op.Code {
	case engine.Success:
		if op.SuccessMsg != "" {
			fmt.Fprintln(out, op.SuccessMsg)
		}
		if op.Result != "" {
			fmt.Fprint(out, op.Result)
		}
	case engine.Fail:
		fmt.Fprintln(out, "Error:", op.Error)
	case engine.InternalError:
		fmt.Fprintln(out, "Internal error:", op.Error)
	}
}
