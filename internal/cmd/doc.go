// Package cmd provides helpers for executing external commands with
// proper error handling.
//
// This package wraps [os/exec.Cmd] to capture stderr and include it in
// error messages, making command failures more informative for users.
//
// # Usage
//
//	if err := cmd.RunContext(ctx, "", "pre-commit", "install"); err != nil {
//	    // err contains stderr output if available
//	    return fmt.Errorf("pre-commit failed: %w", err)
//	}
//
// # Design Notes
//
// altiumate coordinates with two external programs: the pre-commit CLI
// (blocking, RunContext/OutputContext) and Altium Designer itself
// (fire-and-forget, StartContext). Altium Designer is a singleton GUI
// application: if an instance is already open, launching it again only
// forwards the request and returns immediately, so waiting on the
// launched process would tell us nothing. Completion is detected through
// the status artifact instead (see the launch package).
package cmd
