// Package logging provides the named loggers used by the commands
package logging

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
)

// Levels lists the accepted level names
var Levels = []string{"panic", "fatal", "error", "warn", "info", "debug"}

// NamedLogger creates a logger writing to stderr whose messages are
// prefixed with the logger name and the calling file.
func NamedLogger(name string) *logrus.Logger {
	return NewLogger(name, os.Stderr, logrus.InfoLevel)
}

// NewLogger creates a named logger on out at the given level
func NewLogger(name string, out io.Writer, level logrus.Level) *logrus.Logger {
	return &logrus.Logger{
		Out: out,
		Formatter: &CustomTextFormatter{
			TextFormatter: logrus.TextFormatter{DisableTimestamp: true},
			Name:          name,
		},
		Hooks:    make(logrus.LevelHooks),
		Level:    level,
		ExitFunc: os.Exit,
	}
}

// CustomTextFormatter prefixes messages with the logger name and caller
type CustomTextFormatter struct {
	logrus.TextFormatter
	Name string
}

// Format renders a single log entry
func (f *CustomTextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	prefix := f.Name
	if file, no, ok := caller(); ok {
		prefix = fmt.Sprintf("%s %s:%d", f.Name, path.Base(file), no)
	}
	entry.Message = fmt.Sprintf("[%s] %s", prefix, entry.Message)
	return f.TextFormatter.Format(entry)
}

// caller finds the first frame outside logrus above Format
func caller() (string, int, bool) {
	for depth := 2; depth < 20; depth++ {
		pc, file, no, ok := runtime.Caller(depth)
		if !ok {
			break
		}
		if fn := runtime.FuncForPC(pc); fn != nil && strings.Contains(fn.Name(), "sirupsen/logrus") {
			continue
		}
		return file, no, true
	}
	return "", 0, false
}

// ParseLevel validates a level name from the command line
func ParseLevel(name string) (logrus.Level, error) {
	for _, l := range Levels {
		if strings.EqualFold(l, name) {
			return logrus.ParseLevel(l)
		}
	}
	return logrus.InfoLevel, fmt.Errorf("invalid log level %q (expected one of %s)", name, strings.Join(Levels, ", "))
}
