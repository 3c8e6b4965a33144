package engine

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"minisql/internal/token"
)

// tombstoneField is the always-"1" leading field reserved for a future
// soft-delete scheme (see the data directory layout).
const tombstoneField = "1"

// escapeField escapes literal commas in a field value so it can be joined
// into a comma-separated row without ambiguity.
func escapeField(s string) string {
	return strings.ReplaceAll(s, ",", `\,`)
}

// unescapeField reverses escapeField.
func unescapeField(s string) string {
	return strings.ReplaceAll(s, `\,`, ",")
}

// SplitFields splits a row line on unescaped commas, returning each field
// with its escape sequences resolved.
func SplitFields(line string) []string {
	var fields []string
	var b strings.Builder
	escaped := false
	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case escaped:
			b.WriteByte(ch)
			escaped = false
		case ch == '\\':
			escaped = true
		case ch == ',':
			fields = append(fields, b.String())
			b.Reset()
		default:
			b.WriteByte(ch)
		}
	}
	fields = append(fields, b.String())
	return fields
}

// joinFields joins already-escaped field values into a single row line,
// without the tombstone prefix or trailing newline.
func joinFields(fields []string) string {
	return strings.Join(fields, ",")
}

// literalString extracts the value of a String or Number token for
// storage, stripping the surrounding quotes and unescaping `\,` back to
// a literal comma for a String token.
func literalString(tok token.Token) string {
	if tok.Kind != token.String {
		return tok.Lexeme
	}
	s := tok.Lexeme
	if len(s) >= 2 && strings.HasPrefix(s, "'") && strings.HasSuffix(s, "'") {
		s = s[1 : len(s)-1]
	}
	return unescapeField(s)
}

// evalValueFunc evaluates a column's DEFAULT value-producing built-in
// function by name (case-insensitive): NOW, RANDOM, UUID, NULL. A
// function written in an INSERT's VALUES list is not evaluated here; it
// is stored as its lexeme.
func evalValueFunc(name string) (string, error) {
	switch strings.ToUpper(name) {
	case "NOW":
		return time.Now().UTC().Format("2006-01-02 15:04:05") + " GMT+0", nil
	case "RANDOM":
		var buf [4]byte
		if _, err := rand.Read(buf[:]); err != nil {
			return "", fmt.Errorf("random: %w", err)
		}
		n := uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])
		return strconv.FormatUint(uint64(n), 10), nil
	case "UUID":
		return uuid.New().String(), nil
	case "NULL":
		return "", nil
	default:
		return "", fmt.Errorf("unknown value function %q", name)
	}
}
