// Package readme rewrites marked spans in documentation files from
// project parameters.
//
// A slot looks like
//
//	[](ProjectName)anything here[](/)
//
// and its inner text is replaced with the parameter value. Rewrites are
// content-replacing, so patching an already-patched document with the
// same parameters is a no-op.
package readme

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
)

// slotRe captures the slot key and its current content. Spans do not
// cross line boundaries.
var slotRe = regexp.MustCompile(`\[\]\((.*?)\)(.*?)\[\]\(/\)`)

// Lookup resolves a slot key to a parameter value.
type Lookup interface {
	Get(name string) (string, bool)
}

// MissingParameterError reports a slot key with no matching parameter
// under strict patching.
type MissingParameterError struct {
	Key string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("parameter %q not found in the project", e.Key)
}

// Patch rewrites every slot in doc. Returns the patched document and
// the number of slots rewritten from a real parameter.
//
// When failOnMissing is set, the first unknown key aborts the whole
// patch and no output is produced. Otherwise unknown keys get the key
// itself as a placeholder value and are not counted.
func Patch(doc []byte, params Lookup, failOnMissing bool) ([]byte, int, error) {
	matches := slotRe.FindAllSubmatchIndex(doc, -1)
	if len(matches) == 0 {
		return doc, 0, nil
	}

	var out bytes.Buffer
	count := 0
	last := 0
	for _, m := range matches {
		key := string(doc[m[2]:m[3]])
		value, ok := params.Get(key)
		if !ok {
			if failOnMissing {
				return nil, 0, &MissingParameterError{Key: key}
			}
			value = key
		} else {
			count++
		}
		out.Write(doc[last:m[0]])
		fmt.Fprintf(&out, "[](%s)%s[](/)", key, value)
		last = m[1]
	}
	out.Write(doc[last:])
	return out.Bytes(), count, nil
}

// PatchFile patches the document at path in place. All-or-nothing: the
// file is only rewritten after the full substitution pass succeeded.
func PatchFile(path string, params Lookup, failOnMissing bool) (int, error) {
	doc, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read document: %w", err)
	}
	patched, count, err := Patch(doc, params, failOnMissing)
	if err != nil {
		return 0, err
	}
	if bytes.Equal(doc, patched) {
		return count, nil
	}
	if err := os.WriteFile(path, patched, 0o644); err != nil {
		return 0, fmt.Errorf("write document: %w", err)
	}
	return count, nil
}
