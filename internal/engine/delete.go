package engine

import (
	"fmt"
	"strings"

	"minisql/internal/catalog"
	"minisql/internal/parser"
)

// Delete implements DELETE: matching lines are collected, then the data
// file is rebuilt in a single read/write cycle with those lines
// excluded.
func Delete(dir string, node *parser.Node, cat *catalog.Catalog) *DbOp {
	table := strings.ToLower(node.Table.Lexeme)
	schema, err := cat.Lookup(table)
	if err != nil {
		return fail("DELETE", "unknown table `%s`", table)
	}

	path := dataFile(dir, table)
	lines, err := readLines(path)
	if err != nil {
		return internalErr("DELETE", "read data file: %v", err)
	}

	kept := make([]string, 0, len(lines))
	deleted := 0
	for _, line := range lines {
		if line == "" {
			continue
		}
		fields := SplitFields(line)
		if len(fields) == 0 || fields[0] != tombstoneField {
			kept = append(kept, line)
			continue
		}

		matched, err := matchFilters(schema, fields, node.Filters)
		if err != nil {
			return fail("DELETE", "%v", err)
		}
		if matched {
			deleted++
			continue
		}
		kept = append(kept, line)
	}

	if err := writeLines(path, kept); err != nil {
		return internalErr("DELETE", "write data file: %v", err)
	}

	return ok("DELETE", fmt.Sprintf("%d row(s) deleted", deleted))
}
