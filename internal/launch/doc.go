// Package launch starts Altium Designer against a materialized script
// and detects completion through the status artifact.
//
// Launching the executable does not mean the requested work finished: a
// singleton GUI application that is already open absorbs the request and
// the launching call returns almost immediately. The engine therefore
// never trusts process termination. It runs a polling completion
// protocol over the status artifact instead:
//
//	STARTED    artifact deleted, process launched fire-and-forget
//	WAITING    poll: artifact exists and is older than the debounce age?
//	SETTLED    decode the single integer line
//	TIMED_OUT  fatal, no partial result, even if the artifact appears
//	           a moment later
//
// Cancellation during the wait is a distinct, non-fatal outcome
// ([ErrInterrupted]) and never kills the external process.
//
// The wait is blocking and synchronous at the caller boundary; no
// concurrency leaks out of this package.
package launch
