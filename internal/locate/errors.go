package locate

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is matched by all resolution failures where Altium
// Designer, or the requested version of it, could not be located.
// Registry-key-absent and access-denied look the same to callers; the
// underlying cause stays attached for diagnostics.
var ErrNotFound = errors.New("altium designer not found")

// NotFoundError reports a failed resolution.
type NotFoundError struct {
	Hint       string // version hint, "" when no install was found at all
	Suggestion string // closest installed version, "" when none is close
	Cause      error
}

func (e *NotFoundError) Error() string {
	if e.Hint == "" {
		return "Altium Designer is not installed on this computer"
	}
	msg := fmt.Sprintf("Altium Designer version %q not found", e.Hint)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (closest installed: %s)", e.Suggestion)
	}
	return msg
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func (e *NotFoundError) Unwrap() error { return e.Cause }

// AmbiguousError reports a version hint matching more than one install.
// The caller must supply a more specific hint.
type AmbiguousError struct {
	Hint       string
	Candidates []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("multiple versions match %q: %s", e.Hint, strings.Join(e.Candidates, ", "))
}
