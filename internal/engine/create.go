package engine

import (
	"fmt"
	"os"
	"strings"

	"minisql/internal/catalog"
	"minisql/internal/parser"
)

// CreateTable implements CREATE TABLE: it fails if the table's data or
// schema-SQL file already exists; on success it writes the schema-SQL
// file, an empty data file, a zeroed PK counter (when the table has an
// `id` column), and appends to the manifest before reloading the
// catalog.
func CreateTable(dir string, node *parser.Node, cat *catalog.Catalog) *DbOp {
	table := strings.ToLower(node.Table.Lexeme)
	dataPath := dataFile(dir, table)
	schemaPath := schemaFile(dir, table)

	if _, err := os.Stat(dataPath); err == nil {
		return fail("CREATE", "table `%s` already exists", table)
	}
	if _, err := os.Stat(schemaPath); err == nil {
		return fail("CREATE", "table `%s` already exists", table)
	}

	if err := os.WriteFile(schemaPath, []byte(node.SQL), 0o644); err != nil {
		return internalErr("CREATE", "write schema file: %v", err)
	}
	if err := os.WriteFile(dataPath, nil, 0o644); err != nil {
		return internalErr("CREATE", "create data file: %v", err)
	}

	if _, hasID := columnIndex(node, "id"); hasID {
		if err := os.WriteFile(pkFile(dir, table), []byte("0"), 0o644); err != nil {
			return internalErr("CREATE", "write pk counter: %v", err)
		}
	}

	if err := cat.AppendManifest(schemaPath); err != nil {
		return internalErr("CREATE", "update manifest: %v", err)
	}
	if err := cat.Reload(); err != nil {
		return internalErr("CREATE", "reload catalog: %v", err)
	}

	return ok("CREATE", fmt.Sprintf("table `%s` created", table))
}
