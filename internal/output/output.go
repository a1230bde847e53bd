// Package output routes primary data output (resolved paths, rendered
// YAML) to stdout through the context. Diagnostics go to stderr via the
// log package; keeping the two streams apart is what makes
// `altiumate --altium-path | ...` composable.
package output

import (
	"context"
	"fmt"
	"io"
	"os"
)

type ctxKey struct{}

// WithPrinter attaches a data-output writer to the context.
func WithPrinter(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, ctxKey{}, w)
}

func writer(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(ctxKey{}).(io.Writer); ok {
		return w
	}
	return os.Stdout
}

// Print writes data output without a newline.
func Print(ctx context.Context, a ...any) {
	fmt.Fprint(writer(ctx), a...)
}

// Printf writes formatted data output.
func Printf(ctx context.Context, format string, a ...any) {
	fmt.Fprintf(writer(ctx), format, a...)
}

// Println writes a line of data output.
func Println(ctx context.Context, a ...any) {
	fmt.Fprintln(writer(ctx), a...)
}
