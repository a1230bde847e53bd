package launch

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/altiumate/altiumate/internal/log"
	"github.com/altiumate/altiumate/internal/script"
)

// fastOpts keeps wait-loop tests quick.
var fastOpts = Options{
	Timeout:      2 * time.Second,
	PollInterval: 20 * time.Millisecond,
	DebounceAge:  50 * time.Millisecond,
}

// writeAged writes the artifact and backdates its mtime past any
// debounce age.
func writeAged(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	old := time.Now().Add(-time.Second)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatal(err)
	}
}

func TestAwait_SettlesOnExistingArtifact(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "AD_out")
	writeAged(t, path, "0\n")

	res, err := Await(context.Background(), path, fastOpts)
	if err != nil {
		t.Fatalf("Await() error = %v", err)
	}
	if res.Code != 0 {
		t.Errorf("Code = %d, want 0", res.Code)
	}
}

func TestAwait_SettlesOnLateArtifact(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "AD_out")

	appearAfter := 200 * time.Millisecond
	go func() {
		time.Sleep(appearAfter)
		old := time.Now().Add(-time.Second)
		os.WriteFile(path, []byte("3\n"), 0o644)
		os.Chtimes(path, old, old)
	}()

	start := time.Now()
	res, err := Await(context.Background(), path, fastOpts)
	if err != nil {
		t.Fatalf("Await() error = %v", err)
	}
	if res.Code != 3 {
		t.Errorf("Code = %d, want 3", res.Code)
	}
	// Detection happens within roughly one poll interval of appearance.
	if elapsed := time.Since(start); elapsed > appearAfter+10*fastOpts.PollInterval {
		t.Errorf("settled after %s, want close to %s", elapsed, appearAfter)
	}
	if res.Elapsed <= 0 {
		t.Error("Elapsed not recorded")
	}
}

func TestAwait_DebounceRejectsFreshWrite(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "AD_out")
	opts := Options{
		Timeout:      2 * time.Second,
		PollInterval: 20 * time.Millisecond,
		DebounceAge:  300 * time.Millisecond,
	}

	// Artifact exists before the wait starts, but is too young to trust.
	if err := os.WriteFile(path, []byte("0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	start := time.Now()
	res, err := Await(context.Background(), path, opts)
	if err != nil {
		t.Fatalf("Await() error = %v", err)
	}
	if res.Code != 0 {
		t.Errorf("Code = %d, want 0", res.Code)
	}
	if elapsed := time.Since(start); elapsed < opts.DebounceAge-opts.PollInterval {
		t.Errorf("accepted artifact after %s, want at least debounce age %s", elapsed, opts.DebounceAge)
	}
}

func TestAwait_Timeout(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "AD_out")
	opts := Options{
		Timeout:      300 * time.Millisecond,
		PollInterval: 50 * time.Millisecond,
		DebounceAge:  10 * time.Millisecond,
	}

	start := time.Now()
	_, err := Await(context.Background(), path, opts)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("Await() error = %v, want ErrTimeout", err)
	}
	elapsed := time.Since(start)
	if elapsed < opts.Timeout {
		t.Errorf("timed out after %s, want no earlier than %s", elapsed, opts.Timeout)
	}
	if elapsed > opts.Timeout+2*opts.PollInterval+200*time.Millisecond {
		t.Errorf("timed out after %s, want within a poll interval of %s", elapsed, opts.Timeout)
	}
}

func TestAwait_InvalidResult(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "AD_out")
	writeAged(t, path, "banana\n")

	_, err := Await(context.Background(), path, fastOpts)
	var inv *InvalidResultError
	if !errors.As(err, &inv) {
		t.Fatalf("Await() error = %v, want *InvalidResultError", err)
	}
	if inv.Raw != "banana" {
		t.Errorf("InvalidResultError.Raw = %q, want %q", inv.Raw, "banana")
	}
}

func TestAwait_NegativeCode(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "AD_out")
	writeAged(t, path, "-2\n")

	res, err := Await(context.Background(), path, fastOpts)
	if err != nil {
		t.Fatalf("Await() error = %v", err)
	}
	if res.Code != -2 {
		t.Errorf("Code = %d, want -2", res.Code)
	}
}

func TestAwait_Interrupted(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "AD_out")
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	_, err := Await(ctx, path, Options{Timeout: 5 * time.Second, PollInterval: 20 * time.Millisecond})
	if !errors.Is(err, ErrInterrupted) {
		t.Fatalf("Await() error = %v, want ErrInterrupted", err)
	}
	if errors.Is(err, ErrTimeout) {
		t.Error("interruption must not be reported as a timeout")
	}
}

func TestRun_DeletesStaleArtifactBeforeLaunch(t *testing.T) {
	t.Parallel()
	ws := script.NewWorkspace(t.TempDir())
	if err := ws.Materialize(script.Payload{Procedure: "test_altiumate"}); err != nil {
		t.Fatal(err)
	}
	// Stale success from a prior run must never be observed.
	writeAged(t, ws.StatusPath(), "0\n")

	opts := Options{Timeout: 4 * time.Second, PollInterval: 20 * time.Millisecond, DebounceAge: 10 * time.Millisecond}
	// "true" exits immediately without writing the artifact, standing in
	// for a launch that never completes.
	fastTimeout := opts
	fastTimeout.Timeout = 300 * time.Millisecond
	_, err := Run(context.Background(), "true", ws, fastTimeout)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("Run() error = %v, want ErrTimeout (stale artifact must not settle)", err)
	}
	if _, statErr := os.Stat(ws.StatusPath()); !os.IsNotExist(statErr) {
		t.Error("stale status artifact survived launch")
	}
}

func TestRun_MissingExecutable(t *testing.T) {
	t.Parallel()
	ws := script.NewWorkspace(t.TempDir())
	_, err := Run(context.Background(), "definitely-not-x2", ws, fastOpts)
	if err == nil {
		t.Error("Run() = nil error for missing executable")
	}
}

func TestParseTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       string
		want     time.Duration
		wantWarn bool
	}{
		{"empty means default", "", DefaultTimeout, false},
		{"valid seconds", "120", 120 * time.Second, false},
		{"fractional seconds", "4.5", 4500 * time.Millisecond, false},
		{"unparsable", "soon", DefaultTimeout, true},
		{"too small", "2", DefaultTimeout, true},
		{"too large", "7200", DefaultTimeout, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			logger := log.New(&buf, false, false)
			got := ParseTimeout(tt.in, logger)
			if got != tt.want {
				t.Errorf("ParseTimeout(%q) = %s, want %s", tt.in, got, tt.want)
			}
			warned := strings.Contains(buf.String(), "warning:")
			if warned != tt.wantWarn {
				t.Errorf("ParseTimeout(%q) warned = %v, want %v (output %q)", tt.in, warned, tt.wantWarn, buf.String())
			}
		})
	}
}
