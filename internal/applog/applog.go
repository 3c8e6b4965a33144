// Package applog configures the process-wide structured logger used for
// internal-error and startup diagnostics.
package applog

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a logrus logger writing colorized text output to stderr.
// Query results, statement messages, and syntax errors are written to the
// session's output directly, not through this logger.
func New() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	l.SetLevel(logrus.InfoLevel)
	return l
}
