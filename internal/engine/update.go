package engine

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"minisql/internal/catalog"
	"minisql/internal/parser"
)

// Update implements UPDATE. Unlike the predecessor this engine is
// modeled on, a unique-constraint violation discovered partway through
// the rewrite does not leave a half-rewritten file: every line is
// computed into a staged buffer first, and the data file is only
// overwritten once the whole buffer is known to be valid.
func Update(dir string, node *parser.Node, cat *catalog.Catalog) *DbOp {
	table := strings.ToLower(node.Table.Lexeme)
	schema, err := cat.Lookup(table)
	if err != nil {
		return fail("UPDATE", "unknown table `%s`", table)
	}

	assignments := make(map[int]string, len(node.Columns))
	for _, c := range node.Columns {
		idx, ok := columnIndex(schema, c.Column.Lexeme)
		if !ok {
			return fail("UPDATE", "unknown column `%s`", c.Column.Lexeme)
		}
		assignments[idx] = literalString(c.Value)
	}

	path := dataFile(dir, table)
	lines, err := readLines(path)
	if err != nil {
		return internalErr("UPDATE", "read data file: %v", err)
	}

	staged := make([]string, len(lines))
	updated := 0

	for i, line := range lines {
		if line == "" {
			staged[i] = line
			continue
		}
		fields := SplitFields(line)
		if len(fields) == 0 || fields[0] != tombstoneField {
			staged[i] = line
			continue
		}

		matched, err := matchFilters(schema, fields, node.Filters)
		if err != nil {
			return fail("UPDATE", "%v", err)
		}
		if !matched {
			staged[i] = line
			continue
		}

		for idx, value := range assignments {
			if schema.Columns[idx].IsUnique {
				dup, err := otherRowHasValue(lines, i, idx, value)
				if err != nil {
					return internalErr("UPDATE", "unique check: %v", err)
				}
				if dup {
					return fail("UPDATE", "Duplicate value `%s` violates unique constraint on column `%s` for table `%s`",
						value, schema.Columns[idx].Column.Lexeme, table)
				}
			}
			if idx+1 < len(fields) {
				fields[idx+1] = value
			}
		}

		// fields holds unescaped values throughout (SplitFields already
		// resolved `\,` escapes); re-escape every field, not just the
		// assigned ones, before rejoining so embedded commas survive.
		escaped := make([]string, len(fields)-1)
		for j, v := range fields[1:] {
			escaped[j] = escapeField(v)
		}
		staged[i] = tombstoneField + "," + joinFields(escaped)
		updated++
	}

	if err := writeLines(path, staged); err != nil {
		return internalErr("UPDATE", "write data file: %v", err)
	}

	return ok("UPDATE", fmt.Sprintf("%d row(s) updated", updated))
}

// otherRowHasValue checks every line except lines[skip] for a live row
// whose field at colIdx equals value.
func otherRowHasValue(lines []string, skip, colIdx int, value string) (bool, error) {
	for i, line := range lines {
		if i == skip || line == "" {
			continue
		}
		fields := SplitFields(line)
		if len(fields) == 0 || fields[0] != tombstoneField {
			continue
		}
		if colIdx+1 < len(fields) && unescapeField(fields[colIdx+1]) == value {
			return true, nil
		}
	}
	return false, nil
}

// readLines reads path into a slice of lines, without trailing newlines.
// A missing file reads as zero lines.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

// writeLines overwrites path with lines, one per line, LF-terminated.
func writeLines(path string, lines []string) error {
	var b strings.Builder
	for _, l := range lines {
		if l == "" {
			continue
		}
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
