package engine

import (
	"minisql/internal/catalog"
	"minisql/internal/parser"
)

// Exec dispatches a parsed statement to the matching executor entry
// point. A statement whose node.IsInvalid is true is not a valid call:
// the caller (the shell/REPL) is expected to have already discarded it
// after a syntax error.
func Exec(dir string, node *parser.Node, cat *catalog.Catalog) *DbOp {
	switch {
	case node.ActionIs("SELECT"):
		return Select(dir, node, cat)
	case node.ActionIs("INSERT"):
		return Insert(dir, node, cat)
	case node.ActionIs("UPDATE"):
		return Update(dir, node, cat)
	case node.ActionIs("DELETE"):
		return Delete(dir, node, cat)
	case node.ActionIs("CREATE"):
		return CreateTable(dir, node, cat)
	default:
		return fail(node.Action.Lexeme, "unsupported statement")
	}
}
