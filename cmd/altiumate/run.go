package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/altiumate/altiumate/internal/launch"
	"github.com/altiumate/altiumate/internal/log"
	"github.com/altiumate/altiumate/internal/script"
	"github.com/altiumate/altiumate/internal/ui/progress"
)

const (
	defaultProcedure      = "test_altiumate"
	checkUnsavedProcedure = "check_unsaved_documents"
	outJobProcedure       = "run_outjob(outjob_file)"
)

type runOptions struct {
	procedure    string
	outJob       string
	checkUnsaved bool
	version      string
	timeout      string
	files        []string
}

func runInAltium(ctx context.Context, opts runOptions) (int, error) {
	logger := log.FromContext(ctx)

	payload, err := buildPayload(opts)
	if err != nil {
		return 0, err
	}

	version := opts.version
	if version == "" {
		version = cfg.Version
	}

	exe, err := resolveExecutable(ctx, version)
	if err != nil {
		return 0, err
	}

	ws := script.NewWorkspace(dataDir)
	if err := ws.Materialize(payload); err != nil {
		return 0, err
	}

	timeout := launch.ParseTimeout(opts.timeout, logger)
	if opts.timeout == "" && cfg.TimeoutSeconds > 0 {
		timeout = launch.ClampTimeout(time.Duration(cfg.TimeoutSeconds*float64(time.Second)), logger)
	}

	logger.Debug("launching script", "exe", exe, "procedure", payload.Procedure, "timeout", timeout)

	// No spinner in verbose mode, it would fight the debug lines for
	// the same stream.
	var spinner *progress.Spinner
	if !quiet && !verbose && isatty.IsTerminal(os.Stderr.Fd()) {
		spinner = progress.NewSpinner("Waiting for Altium Designer")
		spinner.Start()
	}

	res, err := launch.Run(ctx, exe, ws, launch.Options{Timeout: timeout})

	if spinner != nil {
		spinner.Stop()
	}

	switch {
	case errors.Is(err, launch.ErrInterrupted):
		return 0, errors.New("interrupted while waiting for Altium Designer")
	case errors.Is(err, launch.ErrTimeout):
		return 0, fmt.Errorf("Altium Designer did not report a result within %s", timeout)
	case err != nil:
		return 0, err
	}

	logger.Printf("Task took %s\n", res.Elapsed.Round(time.Millisecond))

	return res.Code, nil
}

// buildPayload maps the command line onto a script payload. The selector
// flags are mutually exclusive, so at most one branch applies.
func buildPayload(opts runOptions) (script.Payload, error) {
	var p script.Payload

	files, err := absFiles(opts.files)
	if err != nil {
		return p, err
	}
	p.Constants = append(p.Constants, script.Constant{
		Name:  "passed_files",
		Value: strings.Join(files, ","),
	})

	switch {
	case opts.checkUnsaved:
		p.Procedure = checkUnsavedProcedure
	case opts.outJob != "":
		outJob, err := filepath.Abs(opts.outJob)
		if err != nil {
			return p, err
		}
		if _, err := os.Stat(outJob); err != nil {
			return p, fmt.Errorf("output job file: %w", err)
		}
		p.Constants = append(p.Constants, script.Constant{Name: "outjob_file", Value: outJob})
		p.Procedure = outJobProcedure
	case opts.procedure != "":
		p.Procedure = opts.procedure
	case len(opts.files) > 0:
		p.Procedure = defaultProcedure
	default:
		return p, errors.New("nothing to run, pass files or one of --procedure, --outjob, --check-unsaved")
	}

	return p, nil
}

func absFiles(files []string) ([]string, error) {
	out := make([]string, 0, len(files))
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("resolving %q: %w", f, err)
		}
		out = append(out, abs)
	}
	return out, nil
}
