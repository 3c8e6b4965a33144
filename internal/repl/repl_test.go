package repl

import (
	"bytes"
	"strings"
	"testing"

	"minisql/internal/catalog"
)

func newTestREPL(t *testing.T) (*REPL, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	cat, err := catalog.New(dir, nil)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	out := &bytes.Buffer{}
	r := New(dir, cat, strings.NewReader(""), out, nil)
	return r, out
}

func TestHandleCreateInsertSelect(t *testing.T) {
	r, out := newTestREPL(t)

	r.handle("CREATE TABLE users (id integer primary key, name varchar);")
	r.handle("INSERT INTO users (name) VALUES ('Alice');")
	out.Reset()
	r.handle("SELECT * FROM users;")

	result := out.String()
	if !strings.Contains(result, "id") || !strings.Contains(result, "name") {
		t.Errorf("output should contain column headers, got: %s", result)
	}
	if !strings.Contains(result, "Alice") {
		t.Errorf("output should contain row data, got: %s", result)
	}
}

func TestDisplayTableEscapedCommaDoesNotMisalignColumns(t *testing.T) {
	r, out := newTestREPL(t)

	r.handle("CREATE TABLE t (id integer primary key, name varchar, note varchar);")
	r.handle("INSERT INTO t (name, note) VALUES ('Alice', 'hello, world');")
	out.Reset()
	r.handle("SELECT name, note FROM t;")

	result := out.String()
	if !strings.Contains(result, "hello, world") {
		t.Errorf("comma-containing value should render intact as one cell, got: %s", result)
	}
	// Exactly one data row: the header separator, header, separator,
	// the one data row, and the trailing separator/count line.
	rowLines := 0
	for _, line := range strings.Split(result, "\n") {
		if strings.HasPrefix(line, "|") {
			rowLines++
		}
	}
	if rowLines != 2 {
		t.Errorf("expected exactly 2 '|'-prefixed lines (header + one row), got %d in: %s", rowLines, result)
	}
}

func TestHandleUnknownTableReportsError(t *testing.T) {
	r, out := newTestREPL(t)

	r.handle("SELECT * FROM nonexistent;")

	result := out.String()
	if !strings.Contains(result, "Error") {
		t.Errorf("expected an error message, got: %s", result)
	}
}

func TestHandleInvalidSQLReportsSyntaxError(t *testing.T) {
	r, out := newTestREPL(t)

	r.handle("SELEKT * FROM t;")

	if out.Len() == 0 {
		t.Error("expected a syntax error to be printed")
	}
}

func TestHandleDotHelp(t *testing.T) {
	r, out := newTestREPL(t)

	r.handle(".help")

	if !strings.Contains(out.String(), ".tables") {
		t.Errorf("help output should mention .tables, got: %s", out.String())
	}
}

func TestHandleDotTablesEmptyAndNonEmpty(t *testing.T) {
	r, out := newTestREPL(t)

	r.handle(".tables")
	if !strings.Contains(out.String(), "no tables") {
		t.Errorf("expected 'no tables' on an empty catalog, got: %s", out.String())
	}

	out.Reset()
	r.handle("CREATE TABLE widgets (id integer primary key);")
	out.Reset()
	r.handle(".tables")
	if !strings.Contains(out.String(), "widgets") {
		t.Errorf("expected 'widgets' listed, got: %s", out.String())
	}
}

func TestHandleDotSchema(t *testing.T) {
	r, out := newTestREPL(t)

	r.handle("CREATE TABLE widgets (id integer primary key, name varchar);")
	out.Reset()
	r.handle(".schema widgets")

	if !strings.Contains(out.String(), "CREATE TABLE widgets") {
		t.Errorf("expected the stored CREATE statement, got: %s", out.String())
	}
}

func TestHandleListTablesSubCommand(t *testing.T) {
	r, out := newTestREPL(t)

	r.handle("CREATE TABLE widgets (id integer primary key);")
	out.Reset()
	r.handle("list tables;")

	if !strings.Contains(out.String(), "widgets") {
		t.Errorf("expected 'widgets' listed, got: %s", out.String())
	}
}

func TestHandleQuitSetsQuitFlag(t *testing.T) {
	r, _ := newTestREPL(t)

	r.handle("quit;")

	if !r.quit {
		t.Error("expected quit flag to be set after 'quit;'")
	}
}
