package engine

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"minisql/internal/catalog"
	"minisql/internal/parser"
)

// Select implements SELECT: it evaluates the WHERE clause against each
// live row and projects the requested columns (or every table column,
// in table order, for `SELECT *`).
func Select(dir string, node *parser.Node, cat *catalog.Catalog) *DbOp {
	table := strings.ToLower(node.Table.Lexeme)
	schema, err := cat.Lookup(table)
	if err != nil {
		return fail("SELECT", "unknown table `%s`", table)
	}

	projected, err := projectedColumns(schema, node)
	if err != nil {
		return fail("SELECT", "%v", err)
	}

	f, err := os.Open(dataFile(dir, table))
	if err != nil {
		if os.IsNotExist(err) {
			return internalErr("SELECT", "table `%s` has no data file", table)
		}
		return internalErr("SELECT", "open data file: %v", err)
	}
	defer f.Close()

	var header strings.Builder
	for i, name := range projected {
		if i > 0 {
			header.WriteByte(',')
		}
		header.WriteString(name)
	}
	header.WriteByte('\n')

	var body strings.Builder
	var rawRows []string
	rowCount := 0
	lineCount := 0
	maxColSpace := 0
	for _, name := range projected {
		if len(name) > maxColSpace {
			maxColSpace = len(name)
		}
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		lineCount++
		fields := SplitFields(line)
		if len(fields) == 0 || fields[0] != tombstoneField {
			continue
		}

		matched, err := matchFilters(schema, fields, node.Filters)
		if err != nil {
			return fail("SELECT", "%v", err)
		}
		if !matched {
			continue
		}

		for i, name := range projected {
			idx, ok := columnIndex(schema, name)
			if !ok {
				return fail("SELECT", "unknown column `%s`", name)
			}
			if i > 0 {
				body.WriteByte(',')
			}
			// SplitFields already resolved `\,` escapes, so re-escape before
			// writing into Result: it stays a valid comma-row stream that
			// SplitFields can re-parse downstream without mistaking an
			// embedded literal comma in a value for a column separator.
			var value string
			if idx+1 < len(fields) {
				value = fields[idx+1]
			}
			body.WriteString(escapeField(value))
			if w := len(value); w > maxColSpace {
				maxColSpace = w
			}
		}
		body.WriteByte('\n')
		rawRows = append(rawRows, line)
		rowCount++
	}
	if err := scanner.Err(); err != nil {
		return internalErr("SELECT", "read data file: %v", err)
	}

	return &DbOp{
		Code:        Success,
		Action:      "SELECT",
		SuccessMsg:  fmt.Sprintf("%d row(s) returned", rowCount),
		Result:      header.String() + body.String(),
		Rows:        rawRows,
		RowCount:    rowCount,
		LineCount:   lineCount,
		ColCount:    len(projected),
		MaxColSpace: maxColSpace,
	}
}

// projectedColumns resolves the ordered list of column names a SELECT
// should emit: every table column (table order) for `SELECT *`, or the
// statement's own projection list otherwise.
func projectedColumns(schema *parser.Node, node *parser.Node) ([]string, error) {
	if node.IsAllCol {
		names := make([]string, len(schema.Columns))
		for i, c := range schema.Columns {
			names[i] = c.Column.Lexeme
		}
		return names, nil
	}
	names := make([]string, 0, len(node.Columns))
	for _, c := range node.Columns {
		if _, ok := columnIndex(schema, c.Column.Lexeme); !ok {
			return nil, &SemanticError{Reason: "unknown column `" + c.Column.Lexeme + "`"}
		}
		names = append(names, c.Column.Lexeme)
	}
	return names, nil
}
