package engine

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"minisql/internal/catalog"
	"minisql/internal/parser"
	"minisql/internal/token"
)

// Insert implements INSERT. It computes the output row following the
// table's column order (not the statement's), checks UNIQUE columns
// against the existing data file, and on success appends the row and
// rewrites the PK counter.
func Insert(dir string, node *parser.Node, cat *catalog.Catalog) *DbOp {
	table := strings.ToLower(node.Table.Lexeme)
	schema, err := cat.Lookup(table)
	if err != nil {
		return fail("INSERT", "unknown table `%s`", table)
	}

	stmtIndex := func(name string) int {
		for i, c := range node.Columns {
			if strings.EqualFold(c.Column.Lexeme, name) {
				return i
			}
		}
		return -1
	}

	path := dataFile(dir, table)
	var newID int64 = -1
	fields := make([]string, len(schema.Columns))

	for i, c := range schema.Columns {
		switch {
		case strings.EqualFold(c.Column.Lexeme, "id"):
			id, err := nextPK(dir, table)
			if err != nil {
				return internalErr("INSERT", "pk counter: %v", err)
			}
			newID = id
			fields[i] = strconv.FormatInt(id, 10)

		case stmtIndex(c.Column.Lexeme) == -1:
			if !c.Default.IsEmpty() && token.IsValueFunc(c.Default.Lexeme) {
				v, err := evalValueFunc(c.Default.Lexeme)
				if err != nil {
					return internalErr("INSERT", "default value: %v", err)
				}
				fields[i] = escapeField(v)
			} else {
				fields[i] = ""
			}

		default:
			j := stmtIndex(c.Column.Lexeme)
			value := literalString(node.Columns[j].Value)
			if c.IsUnique {
				dup, err := fieldHasValue(path, i, value)
				if err != nil {
					return internalErr("INSERT", "unique check: %v", err)
				}
				if dup {
					return fail("INSERT", "Duplicate value `%s` violates unique constraint on column `%s` for table `%s`",
						value, c.Column.Lexeme, table)
				}
			}
			fields[i] = escapeField(value)
		}
	}

	line := tombstoneField + "," + joinFields(fields) + "\n"
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return internalErr("INSERT", "open data file: %v", err)
	}
	defer f.Close()
	if _, err := f.WriteString(line); err != nil {
		return internalErr("INSERT", "append row: %v", err)
	}

	if newID >= 0 {
		if err := writePK(dir, table, newID); err != nil {
			return internalErr("INSERT", "update pk counter: %v", err)
		}
	}

	return ok("INSERT", fmt.Sprintf("1 row inserted into `%s`", table))
}

// nextPK reads the table's PK counter and returns it incremented by one,
// without writing it back (the caller writes back only after the row is
// durably appended).
func nextPK(dir, table string) (int64, error) {
	data, err := os.ReadFile(pkFile(dir, table))
	if err != nil {
		if os.IsNotExist(err) {
			return 1, nil
		}
		return 0, err
	}
	cur, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse pk counter: %w", err)
	}
	return cur + 1, nil
}

// writePK overwrites the table's PK counter file with value.
func writePK(dir, table string, value int64) error {
	return os.WriteFile(pkFile(dir, table), []byte(strconv.FormatInt(value, 10)), 0o644)
}

// fieldHasValue scans a data file's live rows for one whose field at
// colIdx equals value.
func fieldHasValue(path string, colIdx int, value string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := SplitFields(line)
		if len(fields) <= colIdx+1 {
			continue
		}
		if fields[0] != tombstoneField {
			continue
		}
		if unescapeField(fields[colIdx+1]) == value {
			return true, nil
		}
	}
	return false, scanner.Err()
}
