package engine

import "path/filepath"

// manifestFile is the data directory's table index.
func manifestFile(dir string) string {
	return filepath.Join(dir, ".table")
}

// dataFile is the per-table row file.
func dataFile(dir, table string) string {
	return filepath.Join(dir, "table_"+table)
}

// schemaFile is the per-table file holding the CREATE TABLE text that
// defined it.
func schemaFile(dir, table string) string {
	return filepath.Join(dir, "table_"+table+"_sql")
}

// pkFile is the per-table primary-key counter file.
func pkFile(dir, table string) string {
	return filepath.Join(dir, "table_"+table+"_pk")
}
