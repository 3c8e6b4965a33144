package engine

import (
	"strconv"
	"strings"

	"minisql/internal/parser"
	"minisql/internal/token"
)

// columnIndex returns the table-column position of name in a CREATE
// TABLE node's column list, case-insensitively.
func columnIndex(schema *parser.Node, name string) (int, bool) {
	for i, c := range schema.Columns {
		if strings.EqualFold(c.Column.Lexeme, name) {
			return i, true
		}
	}
	return -1, false
}

// matchFilters evaluates a WHERE clause against one row's fields,
// combining conditions left-to-right via each filter's NextLogicalOp
// with AND/OR short-circuit semantics.
func matchFilters(schema *parser.Node, fields []string, filters []parser.ColumnSpec) (bool, error) {
	if len(filters) == 0 {
		return true, nil
	}

	result, logicalOp, err := evalCond(schema, fields, filters[0])
	if err != nil {
		return false, err
	}

	for i := 1; i < len(filters); i++ {
		switch strings.ToUpper(logicalOp) {
		case "AND":
			if !result {
				return false, nil
			}
		case "OR":
			if result {
				return true, nil
			}
		default:
			return result, nil
		}
		var cur bool
		cur, logicalOp, err = evalCond(schema, fields, filters[i])
		if err != nil {
			return false, err
		}
		result = cur
	}

	return result, nil
}

// evalCond evaluates a single filter condition and returns its result
// plus the logical operator joining it to the next one (empty if none).
func evalCond(schema *parser.Node, fields []string, f parser.ColumnSpec) (bool, string, error) {
	idx, ok := columnIndex(schema, f.Column.Lexeme)
	if !ok {
		return false, "", &SemanticError{Reason: "unknown column `" + f.Column.Lexeme + "` in WHERE clause"}
	}
	// fields[0] is the tombstone flag; table column idx lives at fields[idx+1].
	var fieldVal string
	if idx+1 < len(fields) {
		fieldVal = unescapeField(fields[idx+1])
	}

	match := compare(fieldVal, f.Symbol.Lexeme, literalString(f.Value), f.Value.Kind == token.Number)
	return match, f.NextLogicalOp.Lexeme, nil
}

// compare implements the filter-value comparison semantics: a
// comparison is numeric iff the filter literal is a Number token AND
// the field value itself parses as a signed integer; otherwise a
// string comparison is performed and only = and != are meaningful.
func compare(fieldVal, op, literal string, literalIsNumber bool) bool {
	if literalIsNumber {
		if fn, err1 := strconv.ParseInt(fieldVal, 10, 64); err1 == nil {
			if ln, err2 := strconv.ParseInt(literal, 10, 64); err2 == nil {
				return compareInts(fn, op, ln)
			}
		}
	}
	return compareStrings(fieldVal, op, literal)
}

func compareInts(a int64, op string, b int64) bool {
	switch op {
	case "=":
		return a == b
	case "!=":
		return a != b
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	case ">=":
		return a >= b
	default:
		return false
	}
}

func compareStrings(a, op, b string) bool {
	switch op {
	case "=":
		return a == b
	case "!=":
		return a != b
	default:
		return false
	}
}

// SemanticError is a non-fatal executor error, raised for a column name
// the table does not have: it maps to DbOp.Code == Fail.
type SemanticError struct {
	Reason string
}

func (e *SemanticError) Error() string { return e.Reason }
