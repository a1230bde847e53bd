// Package log provides context-aware logging for altiumate.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/altiumate/altiumate/internal/styles"
)

type ctxKey struct{}

// Logger writes diagnostics to stderr. Primary data output goes through
// the output package instead.
type Logger struct {
	out     io.Writer
	verbose bool
	quiet   bool
	color   bool
}

// New creates a new logger. Level prefixes are colored when out is a
// terminal.
func New(out io.Writer, verbose, quiet bool) *Logger {
	color := false
	if f, ok := out.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Logger{out: out, verbose: verbose, quiet: quiet, color: color}
}

// WithLogger attaches a logger to the context.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves the logger from context.
// Returns a no-op logger if none is attached.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return &Logger{out: io.Discard}
}

// Printf writes formatted output.
func (l *Logger) Printf(format string, args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintf(l.out, format, args...)
}

// Println writes a line of output.
func (l *Logger) Println(args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintln(l.out, args...)
}

// Warnf writes a warning line. Warnings are shown even without verbose
// mode; quiet suppresses them.
func (l *Logger) Warnf(format string, args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintf(l.out, "%s %s\n", l.prefix("warning:", styles.WarnStyle), fmt.Sprintf(format, args...))
}

// Errorf writes an error line. Quiet does not suppress errors.
func (l *Logger) Errorf(format string, args ...any) {
	fmt.Fprintf(l.out, "%s %s\n", l.prefix("error:", styles.ErrorStyle), fmt.Sprintf(format, args...))
}

// Debug writes a message with key=value pairs in verbose mode.
// Incomplete trailing pairs are dropped.
func (l *Logger) Debug(msg string, keyvals ...any) {
	if !l.verbose || l.quiet {
		return
	}
	var sb strings.Builder
	sb.WriteString(msg)
	for i := 0; i+1 < len(keyvals); i += 2 {
		fmt.Fprintf(&sb, " %v=%v", keyvals[i], keyvals[i+1])
	}
	fmt.Fprintf(l.out, "%s %s\n", l.prefix("debug:", styles.DebugStyle), sb.String())
}

// Command logs an external command execution in verbose mode and returns
// a func to report its duration once it finished.
func (l *Logger) Command(dir, name string, args ...string) func(time.Duration) {
	if !l.verbose || l.quiet {
		return func(time.Duration) {}
	}
	if dir != "" {
		fmt.Fprintf(l.out, "[%s] $ %s %s\n", dir, name, strings.Join(args, " "))
	} else {
		fmt.Fprintf(l.out, "$ %s %s\n", name, strings.Join(args, " "))
	}
	return func(d time.Duration) {
		fmt.Fprintf(l.out, "  took %s\n", d.Round(time.Millisecond))
	}
}

func (l *Logger) prefix(label string, style func(string) string) string {
	if l.color {
		return style(label)
	}
	return label
}

// IsVerbose returns true if verbose mode is enabled and not quieted.
func (l *Logger) IsVerbose() bool {
	return l.verbose && !l.quiet
}

// Writer returns the underlying writer.
func (l *Logger) Writer() io.Writer {
	return l.out
}
