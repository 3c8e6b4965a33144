// Package catalog maintains the in-memory table directory recovered from
// the data directory's manifest file.
package catalog

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"minisql/internal/lexer"
	"minisql/internal/parser"
)

var (
	// ErrTableExists names the condition of a CREATE TABLE whose data or
	// schema-SQL file already exists. Nothing in this package returns it;
	// the executor reports that case as a failed DbOp with its own message.
	ErrTableExists = errors.New("table already exists")

	// ErrTableNotFound is returned by Lookup when no table matches.
	ErrTableNotFound = errors.New("table not found")
)

const manifestName = ".table"

// Catalog is the in-memory directory of known tables, recovered by
// reading every schema-SQL file named in the manifest.
type Catalog struct {
	dir    string
	log    logrus.FieldLogger
	tables []*parser.Node
}

// New returns a Catalog rooted at dir, loading whatever manifest entries
// already exist there. A missing manifest is not an error: it means an
// empty, freshly initialized data directory.
func New(dir string, log logrus.FieldLogger) (*Catalog, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	c := &Catalog{dir: dir, log: log}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// ManifestPath returns the data directory's manifest path.
func (c *Catalog) ManifestPath() string {
	return filepath.Join(c.dir, manifestName)
}

// Reload rebuilds the catalog by re-reading the manifest from disk.
// Entries that cannot be opened or parsed are skipped with a warning;
// a missing manifest file yields an empty catalog, not an error.
func (c *Catalog) Reload() error {
	path := c.ManifestPath()
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		c.tables = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	var tables []*parser.Node
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		node, err := loadSchema(line)
		if err != nil {
			c.log.WithField("schema_file", line).Warnf("catalog: skipping unreadable table: %v", err)
			continue
		}
		tables = append(tables, node)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	c.tables = tables
	return nil
}

// loadSchema reads a schema-SQL file's single line of CREATE TABLE text
// and lexes + parses it into a Node.
func loadSchema(path string) (*parser.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sql := strings.TrimSpace(string(data))
	toks, err := lexer.Lex(sql)
	if err != nil {
		return nil, err
	}
	node, err := parser.Parse(toks, sql)
	if err != nil {
		return nil, err
	}
	if node.IsInvalid {
		return nil, fmt.Errorf("invalid schema in %s", path)
	}
	return node, nil
}

// Lookup returns the Node describing table name, matched
// case-insensitively. The returned Node is owned by the catalog; its
// validity ends at the next Reload.
func (c *Catalog) Lookup(name string) (*parser.Node, error) {
	for _, t := range c.tables {
		if strings.EqualFold(t.Table.Lexeme, name) {
			return t, nil
		}
	}
	return nil, ErrTableNotFound
}

// Exists reports whether a table by this name is already known.
func (c *Catalog) Exists(name string) bool {
	_, err := c.Lookup(name)
	return err == nil
}

// Tables returns every known table's Node, in manifest order.
func (c *Catalog) Tables() []*parser.Node {
	out := make([]*parser.Node, len(c.tables))
	copy(out, c.tables)
	return out
}

// AppendManifest records path as a new schema-SQL file in the manifest,
// creating the manifest file if it does not yet exist.
func (c *Catalog) AppendManifest(path string) error {
	f, err := os.OpenFile(c.ManifestPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()
	if _, err := fmt.Fprintln(f, path); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
