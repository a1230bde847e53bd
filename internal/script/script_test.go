package script

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRender_WithConstants(t *testing.T) {
	t.Parallel()
	var b strings.Builder
	err := Render(&b, "/home/u/.altiumate/AD_out", Payload{
		Constants: []Constant{
			{Name: "passed_files", Value: "C:/proj/board.PcbDoc"},
			{Name: "project_dir", Value: "C:/proj"},
		},
		Procedure: "test_altiumate",
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	got := b.String()

	if !strings.Contains(got, "const\n") {
		t.Error("payload missing const block")
	}
	if !strings.Contains(got, "  passed_files = 'C:/proj/board.PcbDoc';") {
		t.Errorf("payload missing constant, got:\n%s", got)
	}
	// Constants keep their given order.
	if strings.Index(got, "passed_files") > strings.Index(got, "project_dir") {
		t.Error("constants emitted out of order")
	}
	if !strings.Contains(got, "  test_altiumate;\n") {
		t.Error("procedure body not terminated with ;")
	}
}

func TestRender_NoConstants(t *testing.T) {
	t.Parallel()
	var b strings.Builder
	if err := Render(&b, "/tmp/AD_out", Payload{Procedure: "RunBoardChecks"}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	got := b.String()
	if strings.Contains(got, "const") {
		t.Error("empty constants should not emit a const block")
	}
	if n := strings.Count(got, "return_code: cardinal;"); n != 1 {
		t.Errorf("status variable declared %d times, want 1", n)
	}
	if n := strings.Count(got, "Procedure "+ProcName); n != 1 {
		t.Errorf("wrapper procedure declared %d times, want 1", n)
	}
}

func TestRender_StatusWriteOnEveryPath(t *testing.T) {
	t.Parallel()
	var b strings.Builder
	if err := Render(&b, "/tmp/AD_out", Payload{Procedure: "might_raise"}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	got := b.String()

	// The body runs inside Try, the artifact write inside Finally, and
	// the status starts at the failure sentinel.
	tryIdx := strings.Index(got, "Try")
	bodyIdx := strings.Index(got, "might_raise;")
	finallyIdx := strings.Index(got, "Finally")
	writeIdx := strings.Index(got, "WriteLn(tmp_file, return_code);")
	if tryIdx == -1 || bodyIdx == -1 || finallyIdx == -1 || writeIdx == -1 {
		t.Fatalf("payload missing Try/Finally scaffolding:\n%s", got)
	}
	if !(tryIdx < bodyIdx && bodyIdx < finallyIdx && finallyIdx < writeIdx) {
		t.Errorf("Try/body/Finally/write out of order:\n%s", got)
	}
	if !strings.Contains(got, "return_code := 1;") {
		t.Error("status not initialized to failure sentinel")
	}
	if n := strings.Count(got, "WriteLn(tmp_file, return_code);"); n != 1 {
		t.Errorf("status written %d times, want exactly 1", n)
	}
}

func TestRender_TerminateAfter(t *testing.T) {
	t.Parallel()
	var b strings.Builder
	if err := Render(&b, "/tmp/AD_out", Payload{Procedure: "x", TerminateAfter: true}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	got := b.String()
	termIdx := strings.Index(got, "TerminateWithExitCode(return_code);")
	if termIdx == -1 {
		t.Fatalf("terminate instruction missing:\n%s", got)
	}
	// Must come after the Finally arm so the artifact is written first.
	if writeIdx := strings.Index(got, "WriteLn(tmp_file"); termIdx < writeIdx {
		t.Error("terminate instruction precedes status write")
	}
}

func TestRender_QuotesEscaped(t *testing.T) {
	t.Parallel()
	var b strings.Builder
	err := Render(&b, "/tmp/AD_out", Payload{
		Constants: []Constant{{Name: "msg", Value: "it's here"}},
		Procedure: "ShowInfo(msg)",
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(b.String(), "'it''s here'") {
		t.Errorf("single quote not doubled:\n%s", b.String())
	}
}

func TestNormalizeBody(t *testing.T) {
	t.Parallel()
	tests := []struct{ in, want string }{
		{"foo", "foo;"},
		{"foo;", "foo;"},
		{"  foo  ", "foo;"},
		{"ShowInfo('hi');", "ShowInfo('hi');"},
	}
	for _, tt := range tests {
		if got := normalizeBody(tt.in); got != tt.want {
			t.Errorf("normalizeBody(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMaterialize(t *testing.T) {
	t.Parallel()

	t.Run("writes payload and project, removes stale status", func(t *testing.T) {
		t.Parallel()
		ws := NewWorkspace(t.TempDir())

		// Seed a stale result from a prior run.
		if err := os.WriteFile(ws.StatusPath(), []byte("0\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		err := ws.Materialize(Payload{Procedure: "test_altiumate"})
		if err != nil {
			t.Fatalf("Materialize() error = %v", err)
		}

		if _, err := os.Stat(ws.StatusPath()); !os.IsNotExist(err) {
			t.Error("stale status artifact not removed")
		}
		data, err := os.ReadFile(ws.PayloadPath())
		if err != nil {
			t.Fatalf("payload not written: %v", err)
		}
		if !strings.Contains(string(data), "Procedure "+ProcName) {
			t.Error("payload missing wrapper procedure")
		}
		prj, err := os.ReadFile(ws.ProjectPath())
		if err != nil {
			t.Fatalf("project not written: %v", err)
		}
		if !strings.Contains(string(prj), "DocumentPath="+PayloadName) {
			t.Error("project does not reference payload document")
		}
	})

	t.Run("overwrites prior payload", func(t *testing.T) {
		t.Parallel()
		ws := NewWorkspace(t.TempDir())
		if err := ws.Materialize(Payload{Procedure: "first"}); err != nil {
			t.Fatal(err)
		}
		if err := ws.Materialize(Payload{Procedure: "second"}); err != nil {
			t.Fatal(err)
		}
		data, _ := os.ReadFile(ws.PayloadPath())
		if strings.Contains(string(data), "first") {
			t.Error("old payload content survived rewrite")
		}
		if !strings.Contains(string(data), "second;") {
			t.Error("new payload content missing")
		}
	})
}

func TestRunScriptArg(t *testing.T) {
	t.Parallel()
	ws := NewWorkspace(filepath.Join("/", "data"))
	got := ws.RunScriptArg()
	if !strings.HasPrefix(got, "-RScriptingSystem:RunScript(ProjectName=") {
		t.Errorf("RunScriptArg() = %q, want RunScript prefix", got)
	}
	if !strings.Contains(got, ws.ProjectPath()) {
		t.Errorf("RunScriptArg() = %q, want project path %q", got, ws.ProjectPath())
	}
	if !strings.HasSuffix(got, "|ProcName="+PayloadName+">"+ProcName+")") {
		t.Errorf("RunScriptArg() = %q, want ProcName suffix", got)
	}
}
