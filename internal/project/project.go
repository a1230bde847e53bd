// Package project extracts parameters from Altium Designer project
// files (.PrjPcb).
//
// The file is an INI-style document where each parameter occupies its
// own [ParameterN] section holding a Name= line followed by a Value=
// line. The scanner is a single forward pass with an explicit state
// machine; it does not validate section closure or ordering beyond the
// marker/name/value sequence.
package project

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// markerRe matches a parameter section header, e.g. [Parameter3].
var markerRe = regexp.MustCompile(`\[Parameter\d`)

// Parameters holds scanned name/value pairs in discovery order.
// Duplicate names overwrite the value and keep the first position.
type Parameters struct {
	names  []string
	values map[string]string
}

func newParameters() *Parameters {
	return &Parameters{values: make(map[string]string)}
}

// Get returns the value for name.
func (p *Parameters) Get(name string) (string, bool) {
	v, ok := p.values[name]
	return v, ok
}

// Names returns the parameter names in discovery order.
func (p *Parameters) Names() []string {
	return p.names
}

// Len returns the number of distinct parameters.
func (p *Parameters) Len() int {
	return len(p.names)
}

func (p *Parameters) set(name, value string) {
	if _, ok := p.values[name]; !ok {
		p.names = append(p.names, name)
	}
	p.values[name] = value
}

// MalformedError reports a parameter marker that is not followed by a
// well-formed name/value pair.
type MalformedError struct {
	Line   int
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed project file at line %d: %s", e.Line, e.Reason)
}

// scanState tracks where the scanner is relative to the current
// parameter section.
type scanState int

const (
	seekingMarker scanState = iota
	expectName
	expectValue
)

// Scan reads parameters from a project file. Single forward pass, no
// backtracking; all lines outside a parameter section are ignored.
func Scan(r io.Reader) (*Parameters, error) {
	params := newParameters()
	sc := bufio.NewScanner(r)

	state := seekingMarker
	var name string
	line := 0

	for sc.Scan() {
		line++
		text := sc.Text()
		switch state {
		case seekingMarker:
			if markerRe.MatchString(text) {
				state = expectName
			}
		case expectName:
			_, value, found := strings.Cut(text, "=")
			if !found {
				return nil, &MalformedError{Line: line, Reason: "expected a name assignment after parameter marker"}
			}
			name = value
			state = expectValue
		case expectValue:
			_, value, found := strings.Cut(text, "=")
			if !found {
				return nil, &MalformedError{Line: line, Reason: "expected a value assignment after parameter name"}
			}
			params.set(name, value)
			state = seekingMarker
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read project file: %w", err)
	}
	if state != seekingMarker {
		return nil, &MalformedError{Line: line, Reason: "file ended in the middle of a parameter section"}
	}
	return params, nil
}

// ScanFile reads parameters from the project file at path.
func ScanFile(path string) (*Parameters, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open project file: %w", err)
	}
	defer f.Close()
	return Scan(f)
}
