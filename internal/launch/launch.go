package launch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/altiumate/altiumate/internal/cmd"
	"github.com/altiumate/altiumate/internal/log"
	"github.com/altiumate/altiumate/internal/script"
)

const (
	// DefaultTimeout bounds the wait when the caller gives no (or a
	// nonsensical) timeout.
	DefaultTimeout = 60 * time.Second

	// Accepted timeout range. Values outside fall back to the default
	// with a warning rather than aborting the run.
	minTimeout = 3 * time.Second
	maxTimeout = time.Hour

	// defaultPollInterval is how often the status artifact is checked.
	defaultPollInterval = 300 * time.Millisecond

	// defaultDebounceAge is the minimum modification age before the
	// artifact's content is trusted. Altium Designer creates the file on
	// ReWrite and fills it shortly after; reading too early would catch
	// a partial write.
	defaultDebounceAge = 100 * time.Millisecond
)

// ErrTimeout reports that the status artifact never settled within the
// bound. A timed-out run is unrecoverable; the caller must re-invoke.
var ErrTimeout = errors.New("altium designer took too long")

// ErrInterrupted reports a user-initiated cancellation of the wait. The
// external instance is left alone: it may be a shared, long-lived one.
var ErrInterrupted = errors.New("interrupted while waiting for altium designer")

// InvalidResultError reports a status artifact whose content is not a
// base-10 integer. No result is fabricated in its place.
type InvalidResultError struct {
	Raw string
}

func (e *InvalidResultError) Error() string {
	return fmt.Sprintf("invalid return code %q in status artifact", e.Raw)
}

// Result is the decoded outcome of one run. Code 0 means success by
// convention; any other value is caller-defined failure.
type Result struct {
	Code    int
	Elapsed time.Duration
}

// Options tunes the wait loop. Zero values mean defaults; tests shrink
// the intervals.
type Options struct {
	Timeout      time.Duration
	PollInterval time.Duration
	DebounceAge  time.Duration
}

func (o Options) timeout() time.Duration {
	if o.Timeout <= 0 {
		return DefaultTimeout
	}
	return o.Timeout
}

func (o Options) poll() time.Duration {
	if o.PollInterval <= 0 {
		return defaultPollInterval
	}
	return o.PollInterval
}

func (o Options) debounce() time.Duration {
	if o.DebounceAge <= 0 {
		return defaultDebounceAge
	}
	return o.DebounceAge
}

// Run launches exe against the workspace's materialized script and waits
// for the result. The launch is fire-and-forget: when Altium Designer is
// already open the new process only forwards the request and exits right
// away, long before the script finished, so the launched process's exit
// tells us nothing. Completion is detected solely through the status
// artifact.
func Run(ctx context.Context, exe string, ws script.Workspace, opts Options) (Result, error) {
	// STARTED: no stale result may survive into this attempt.
	if err := os.Remove(ws.StatusPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Result{}, fmt.Errorf("remove stale status artifact: %w", err)
	}
	if err := cmd.StartContext(ctx, "", exe, ws.RunScriptArg()); err != nil {
		return Result{}, err
	}
	return Await(ctx, ws.StatusPath(), opts)
}

// Await polls until the status artifact settles, the timeout elapses, or
// the context is cancelled. Single attempt, no retries; it blocks the
// caller for up to the timeout and is the only suspension point in the
// whole tool.
func Await(ctx context.Context, statusPath string, opts Options) (Result, error) {
	start := time.Now()
	deadline := start.Add(opts.timeout())
	logger := log.FromContext(ctx)

	for {
		if settled(statusPath, opts.debounce()) {
			res, err := decode(statusPath)
			if err != nil {
				return Result{}, err
			}
			res.Elapsed = time.Since(start)
			logger.Debug("status artifact settled", "code", res.Code, "elapsed", res.Elapsed.Round(time.Millisecond))
			return res, nil
		}
		if time.Now().After(deadline) {
			return Result{}, ErrTimeout
		}
		select {
		case <-ctx.Done():
			return Result{}, ErrInterrupted
		case <-time.After(opts.poll()):
		}
	}
}

// settled reports whether the artifact exists and has not been modified
// for at least the debounce age.
func settled(statusPath string, debounce time.Duration) bool {
	info, err := os.Stat(statusPath)
	if err != nil {
		return false
	}
	return time.Since(info.ModTime()) >= debounce
}

// decode reads the artifact's single line as a base-10 integer.
func decode(statusPath string) (Result, error) {
	f, err := os.Open(statusPath)
	if err != nil {
		return Result{}, fmt.Errorf("read status artifact: %w", err)
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && line == "" {
		return Result{}, fmt.Errorf("read status artifact: %w", err)
	}
	line = strings.TrimSpace(line)
	code, err := strconv.Atoi(line)
	if err != nil {
		return Result{}, &InvalidResultError{Raw: line}
	}
	return Result{Code: code}, nil
}

// ParseTimeout interprets a timeout given in seconds. Unparsable values
// and values outside the accepted range fall back to the default with a
// warning. An empty string is the default without a warning.
func ParseTimeout(s string, logger *log.Logger) time.Duration {
	if s == "" {
		return DefaultTimeout
	}
	secs, err := strconv.ParseFloat(s, 64)
	if err != nil {
		logger.Warnf("invalid timeout value %q, using default %s", s, DefaultTimeout)
		return DefaultTimeout
	}
	return ClampTimeout(time.Duration(secs*float64(time.Second)), logger)
}

// ClampTimeout enforces the accepted timeout range, falling back to the
// default with a warning when d is out of bounds.
func ClampTimeout(d time.Duration, logger *log.Logger) time.Duration {
	if d <= minTimeout || d >= maxTimeout {
		logger.Warnf("timeout %s out of range (%s, %s), using default %s", d, minTimeout, maxTimeout, DefaultTimeout)
		return DefaultTimeout
	}
	return d
}
