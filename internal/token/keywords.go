package token

import "strings"

// Keywords are the statement-structure words recognized by the lexer.
// Contents follow the original engine's KEYWORDS table.
var Keywords = map[string]bool{
	"SELECT": true, "INSERT": true, "UPDATE": true, "DELETE": true, "CREATE": true,
	"FROM": true, "WHERE": true, "SET": true, "VALUES": true, "INTO": true, "TABLE": true,
	"LIMIT": true, "OFFSET": true,
	"AND": true, "OR": true, "AS": true,
}

// DataTypes are the column type names recognized in CREATE TABLE.
var DataTypes = map[string]bool{
	"INTEGER": true, "FLOAT": true, "TEXT": true,
	"VARCHAR": true, "BOOLEAN": true, "DATETIME": true,
	"DATE": true, "TIME": true, "SERIAL": true,
}

// BuiltInFuncs are the non-keyword, non-type identifiers with special
// parsing meaning: constraints (UNIQUE, PRIMARY KEY, FOREIGN, NOT,
// DEFAULT) and value-producing functions (NOW, RANDOM, UUID, NULL).
var BuiltInFuncs = map[string]bool{
	"UNIQUE": true, "NOW": true, "RANDOM": true, "UUID": true, "NULL": true,
	"PRIMARY": true, "KEY": true, "FOREIGN": true, "NOT": true, "DEFAULT": true,
}

// ValueFuncs is the subset of BuiltInFuncs that can appear after DEFAULT
// and is evaluated at INSERT time.
var ValueFuncs = map[string]bool{
	"NOW": true, "RANDOM": true, "UUID": true, "NULL": true,
}

// LogicalOps are the filter-joining keywords.
var LogicalOps = map[string]bool{
	"AND": true, "OR": true,
}

// PreTableSelectors are keywords whose immediate successor token names the
// target table.
var PreTableSelectors = map[string]bool{
	"UPDATE": true, "DELETE": true,
	"FROM": true, "INTO": true, "TABLE": true,
}

// FilterKeyword introduces a statement's WHERE clause.
const FilterKeyword = "WHERE"

// IsKeyword reports whether s (case-insensitively) names a keyword.
func IsKeyword(s string) bool { return Keywords[strings.ToUpper(s)] }

// IsDataType reports whether s (case-insensitively) names a data type.
func IsDataType(s string) bool { return DataTypes[strings.ToUpper(s)] }

// IsBuiltInFunc reports whether s (case-insensitively) names a built-in.
func IsBuiltInFunc(s string) bool { return BuiltInFuncs[strings.ToUpper(s)] }

// IsValueFunc reports whether s (case-insensitively) names a value-producing
// built-in usable after DEFAULT.
func IsValueFunc(s string) bool { return ValueFuncs[strings.ToUpper(s)] }

// IsLogicalOp reports whether s (case-insensitively) is AND/OR.
func IsLogicalOp(s string) bool { return LogicalOps[strings.ToUpper(s)] }

// IsPreTableSelector reports whether s (case-insensitively) is a keyword
// whose next token names a table.
func IsPreTableSelector(s string) bool { return PreTableSelectors[strings.ToUpper(s)] }

// Classify determines the Kind of a raw lexeme that is not a string,
// number, or single-character punctuation token (those are classified
// directly by the lexer). It matches, in order, keyword/data-type/
// built-in-function tables, falling back to Identifier.
func Classify(lexeme string) Kind {
	switch {
	case IsKeyword(lexeme):
		return Keyword
	case IsDataType(lexeme):
		return DataType
	case IsBuiltInFunc(lexeme):
		return BuiltInFunc
	default:
		return Identifier
	}
}
