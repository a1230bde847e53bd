package script

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Fixed, singleton file names inside the data dir. Every invocation
// overwrites the same payload and watches the same status artifact;
// concurrent invocations on one machine are not supported.
const (
	PayloadName = "altiumate.pas"
	ProjectName = "precommit.PrjScr"
	StatusName  = "AD_out"

	// ProcName is the wrapper procedure the launch command tells the
	// scripting system to execute.
	ProcName = "RunFromAltiumate"

	scriptSubdir = "AD_scripting"
)

// Constant is one name/value pair emitted into the payload's const
// block. Names must be valid DelphiScript identifiers.
type Constant struct {
	Name  string
	Value string
}

// Payload describes the script to materialize for Altium Designer.
type Payload struct {
	Constants []Constant
	// Procedure is the statement the wrapper executes. Normalized to end
	// with a statement terminator.
	Procedure string
	// TerminateAfter makes the wrapper close Altium Designer once the
	// status artifact is written, carrying the status as exit code.
	TerminateAfter bool
}

// Workspace owns the fixed script and status artifact locations under
// the altiumate data directory.
type Workspace struct {
	dir string
}

// NewWorkspace returns a Workspace rooted at dataDir.
func NewWorkspace(dataDir string) Workspace {
	return Workspace{dir: dataDir}
}

// PayloadPath is where the rendered script lives.
func (w Workspace) PayloadPath() string {
	return filepath.Join(w.dir, scriptSubdir, PayloadName)
}

// ProjectPath is the script project the launch command names.
func (w Workspace) ProjectPath() string {
	return filepath.Join(w.dir, scriptSubdir, ProjectName)
}

// StatusPath is the status artifact Altium Designer writes the result to.
func (w Workspace) StatusPath() string {
	return filepath.Join(w.dir, StatusName)
}

// RunScriptArg builds the single launch argument instructing Altium
// Designer's scripting system to execute the wrapper procedure.
func (w Workspace) RunScriptArg() string {
	return fmt.Sprintf("-RScriptingSystem:RunScript(ProjectName=%s|ProcName=%s>%s)",
		w.ProjectPath(), PayloadName, ProcName)
}

// Materialize renders the payload to the payload file, makes sure the
// script project exists, and removes any stale status artifact so a
// prior run's result can never be mistaken for this one's.
func (w Workspace) Materialize(p Payload) error {
	if err := os.MkdirAll(filepath.Dir(w.PayloadPath()), 0o755); err != nil {
		return fmt.Errorf("create script directory: %w", err)
	}
	if err := os.Remove(w.StatusPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove stale status artifact: %w", err)
	}

	f, err := os.Create(w.PayloadPath())
	if err != nil {
		return fmt.Errorf("create payload file: %w", err)
	}
	if err := Render(f, w.StatusPath(), p); err != nil {
		f.Close()
		return fmt.Errorf("render payload: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write payload file: %w", err)
	}

	return w.ensureProject()
}

// ensureProject writes the script project file if it is missing. The
// project only has to reference the payload document; Altium Designer
// does the rest.
func (w Workspace) ensureProject() error {
	if _, err := os.Stat(w.ProjectPath()); err == nil {
		return nil
	}
	content := strings.Join([]string{
		"[Design]",
		"Version=1.0",
		"HierarchyMode=0",
		"",
		"[Document1]",
		"DocumentPath=" + PayloadName,
		"",
	}, "\r\n")
	if err := os.WriteFile(w.ProjectPath(), []byte(content), 0o644); err != nil {
		return fmt.Errorf("write script project: %w", err)
	}
	return nil
}

// Render writes the DelphiScript payload. The wrapper initializes the
// status to a failure sentinel and rewrites the status artifact in a
// Finally arm, so exactly one status write happens on every control path
// through the body, including internal failures. That single write is
// the only completion signal the launching side ever sees.
func Render(out io.Writer, statusPath string, p Payload) error {
	var b strings.Builder

	if len(p.Constants) > 0 {
		b.WriteString("const\n")
		for _, c := range p.Constants {
			fmt.Fprintf(&b, "  %s = '%s';\n", c.Name, quote(c.Value))
		}
		b.WriteString("\n")
	}

	b.WriteString("Var\n")
	b.WriteString("  return_code: cardinal;\n")
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Procedure %s;\n", ProcName)
	b.WriteString("Var\n")
	b.WriteString("  tmp_file: TextFile;\n")
	b.WriteString("Begin\n")
	b.WriteString("  return_code := 1;\n")
	fmt.Fprintf(&b, "  AssignFile(tmp_file, '%s');\n", quote(filepath.ToSlash(statusPath)))
	b.WriteString("  Try\n")
	fmt.Fprintf(&b, "  %s\n", normalizeBody(p.Procedure))
	b.WriteString("  Finally\n")
	b.WriteString("    ReWrite(tmp_file);\n")
	b.WriteString("    WriteLn(tmp_file, return_code);\n")
	b.WriteString("    CloseFile(tmp_file);\n")
	b.WriteString("  end;\n")
	if p.TerminateAfter {
		b.WriteString("  TerminateWithExitCode(return_code);\n")
	}
	b.WriteString("End;\n")

	_, err := io.WriteString(out, b.String())
	return err
}

// normalizeBody makes sure the procedure body ends with a statement
// terminator.
func normalizeBody(body string) string {
	body = strings.TrimSpace(body)
	if !strings.HasSuffix(body, ";") {
		body += ";"
	}
	return body
}

// quote escapes embedded single quotes for a DelphiScript string literal.
func quote(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
