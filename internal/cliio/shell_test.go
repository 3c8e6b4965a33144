package cliio

import (
	"bytes"
	"strings"
	"testing"
)

func TestReadStatementSingleLine(t *testing.T) {
	sh := NewShell(strings.NewReader("SELECT * FROM t;\n"), nil)
	stmt, eof := sh.ReadStatement()
	if eof {
		t.Error("unexpected eof")
	}
	if stmt != "SELECT * FROM t;" {
		t.Errorf("got %q", stmt)
	}
}

func TestReadStatementMultiLine(t *testing.T) {
	sh := NewShell(strings.NewReader("SELECT *\nFROM t;\n"), nil)
	stmt, _ := sh.ReadStatement()
	if stmt != "SELECT *\nFROM t;" {
		t.Errorf("got %q", stmt)
	}
}

func TestIsCompleteIgnoresSemicolonInString(t *testing.T) {
	sh := NewShell(nil, nil)
	if sh.IsComplete("INSERT INTO t VALUES ('a;b'") {
		t.Error("should be incomplete: the only semicolon is inside the string literal")
	}
	if !sh.IsComplete("INSERT INTO t VALUES ('a;b');") {
		t.Error("should be complete")
	}
}

func TestHistoryRecordsCompleteStatements(t *testing.T) {
	var out bytes.Buffer
	sh := NewShell(strings.NewReader("SELECT 1;\nSELECT 2;\n"), &out)
	sh.ReadStatement()
	sh.ReadStatement()
	hist := sh.History()
	if len(hist) != 2 || hist[0] != "SELECT 1;" || hist[1] != "SELECT 2;" {
		t.Errorf("history = %+v", hist)
	}
}

func TestHistorySkipsConsecutiveDuplicates(t *testing.T) {
	sh := NewShell(strings.NewReader("SELECT 1;\nSELECT 1;\n"), nil)
	sh.ReadStatement()
	sh.ReadStatement()
	if len(sh.History()) != 1 {
		t.Errorf("history = %+v, want 1 entry", sh.History())
	}
}
