// Package parser turns a token.Token stream into a per-statement AST Node.
package parser

import "minisql/internal/token"

// ColumnSpec is the parser's single per-column record, reused across
// roles: a CREATE TABLE column definition, a SELECT projection, an
// UPDATE/INSERT assignment, or a WHERE-clause filter. Not every field is
// meaningful in every role; see the per-field comments.
type ColumnSpec struct {
	// Column names the column. Always set.
	Column token.Token

	// Value holds a literal (string/number/built-in function) when this
	// ColumnSpec is an assignment or a filter condition.
	Value token.Token

	// DataType holds the declared type when this is a CREATE TABLE column
	// definition.
	DataType token.Token

	// Symbol holds the comparison operator (filter) or `=` (assignment).
	Symbol token.Token

	// Default holds a value-producing built-in function token (e.g. NOW)
	// when `DEFAULT <fn>` was parsed for this column.
	Default token.Token

	// IsUnique is set for CREATE columns declared UNIQUE.
	IsUnique bool

	// NextLogicalOp holds the AND/OR token joining this filter to the
	// next one in the filter list; empty on the last filter.
	NextLogicalOp token.Token

	// Display holds an alias set by `AS <identifier>`.
	Display token.Token
}

// Node is the AST for a single SQL statement.
type Node struct {
	// Action is the leading statement keyword (SELECT/INSERT/UPDATE/
	// DELETE/CREATE).
	Action token.Token

	// Table names the statement's target table.
	Table token.Token

	// Columns holds the ordered column list: projections (SELECT),
	// assignments (UPDATE/INSERT), or definitions (CREATE).
	Columns []ColumnSpec

	// Filters holds the ordered WHERE-clause condition list.
	Filters []ColumnSpec

	// PrimaryKey names the column declared PRIMARY KEY in a CREATE TABLE,
	// if any.
	PrimaryKey token.Token

	// IsAllCol is set for `SELECT *`.
	IsAllCol bool

	// IsInvalid marks a parse failure; all other fields are meaningless
	// when this is set.
	IsInvalid bool

	// SQL is the verbatim source text, kept for echoing and for
	// persisting CREATE TABLE statements into schema-SQL files.
	SQL string
}

// invalidNode returns the sentinel "parse failed" node.
func invalidNode() *Node {
	return &Node{IsInvalid: true}
}

// ActionIs reports whether n.Action's lexeme matches name, case-insensitively.
func (n *Node) ActionIs(name string) bool {
	return caseFold(n.Action.Lexeme) == caseFold(name)
}

func caseFold(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
