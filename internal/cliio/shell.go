// Package cliio handles line-oriented terminal input: reading
// possibly-multi-line SQL statements and keeping a command history.
package cliio

import (
	"bufio"
	"io"
	"strings"
)

// Shell reads statements from an input stream, accumulating lines until
// a statement-terminating semicolon is seen outside any string literal.
type Shell struct {
	reader *bufio.Reader

	output io.Writer

	prompt         string
	continuePrompt string

	history    []string
	maxHistory int
}

// NewShell creates a Shell reading from input and echoing prompts to
// output. output may be nil to suppress prompts entirely (batch mode).
func NewShell(input io.Reader, output io.Writer) *Shell {
	var reader *bufio.Reader
	if input != nil {
		reader = bufio.NewReader(input)
	}
	return &Shell{
		reader:         reader,
		output:         output,
		prompt:         "minisql> ",
		continuePrompt: "     ...> ",
		maxHistory:     1000,
	}
}

// NewShellFromReader creates a Shell over an already-built *bufio.Reader,
// so it can share input buffering with a prior consumer (e.g. a login
// prompt) instead of risking buffered bytes stranded in a second reader
// wrapping the same stream.
func NewShellFromReader(reader *bufio.Reader, output io.Writer) *Shell {
	return &Shell{
		reader:         reader,
		output:         output,
		prompt:         "minisql> ",
		continuePrompt: "     ...> ",
		maxHistory:     1000,
	}
}

// SetPrompt changes the primary prompt string.
func (s *Shell) SetPrompt(p string) { s.prompt = p }

// ReadLine reads a single line, trimming its trailing newline/whitespace.
// The returned bool reports whether EOF was reached.
func (s *Shell) ReadLine() (string, bool) {
	if s.reader == nil {
		return "", true
	}
	line, err := s.reader.ReadString('\n')
	if err != nil {
		return strings.TrimRight(line, " \t\r\n"), true
	}
	return strings.TrimRight(line, " \t\r\n"), false
}

// ReadStatement reads lines until IsComplete reports the accumulated
// text is a whole statement, or EOF is reached. Complete, non-empty
// statements are recorded in history.
func (s *Shell) ReadStatement() (string, bool) {
	var lines []string
	first := true

	for {
		if s.output != nil {
			if first {
				io.WriteString(s.output, s.prompt)
			} else {
				io.WriteString(s.output, s.continuePrompt)
			}
		}
		first = false

		line, eof := s.ReadLine()
		if eof && line == "" && len(lines) == 0 {
			return "", true
		}

		lines = append(lines, line)
		combined := strings.Join(lines, "\n")

		if s.IsComplete(combined) {
			if trimmed := strings.TrimSpace(combined); trimmed != "" {
				s.addHistory(trimmed)
			}
			return combined, false
		}
		if eof {
			return combined, true
		}
	}
}

// IsComplete reports whether sql contains a semicolon outside of any
// single-quoted string literal.
func (s *Shell) IsComplete(sql string) bool {
	if sql == "" {
		return false
	}
	inString := false
	sawSemicolon := false

	runes := []rune(sql)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '\'':
			inString = !inString
		case ';':
			if !inString {
				sawSemicolon = true
			}
		}
	}
	return !inString && sawSemicolon
}

// addHistory appends stmt to history, skipping consecutive duplicates
// and trimming to maxHistory entries.
func (s *Shell) addHistory(stmt string) {
	if len(s.history) > 0 && s.history[len(s.history)-1] == stmt {
		return
	}
	s.history = append(s.history, stmt)
	if len(s.history) > s.maxHistory {
		s.history = s.history[len(s.history)-s.maxHistory:]
	}
}

// History returns a copy of the recorded statement history.
func (s *Shell) History() []string {
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}
