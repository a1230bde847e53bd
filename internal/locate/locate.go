package locate

import (
	"context"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/altiumate/altiumate/internal/log"
)

// ExeName is the Altium Designer executable image name.
const ExeName = "X2.EXE"

// Install is one installed Altium Designer build.
type Install struct {
	Version string
	Path    string // absolute path to the executable
}

// InstallProvider enumerates installed Altium Designer builds.
type InstallProvider interface {
	Installs(ctx context.Context) ([]Install, error)
}

// ProcessProvider locates a live Altium Designer instance.
// Returns "" when none is running.
type ProcessProvider interface {
	Running(ctx context.Context) (string, error)
}

// Locator resolves the Altium Designer executable to launch.
type Locator struct {
	Installs InstallProvider
	Process  ProcessProvider
}

// New returns a Locator backed by the OS install registry and the live
// process list.
func New() *Locator {
	return &Locator{Installs: systemInstalls{}, Process: processScan{}}
}

// Resolve returns the executable path for the requested version hint.
// "" and "any" are wildcards.
//
// With a wildcard hint a running instance wins: launching a second copy
// of Altium Designer would conflict with the one the user already has
// open, and the run protocol tolerates handing the script to an existing
// instance. A concrete hint always consults the install registry, since
// the running instance may be a different version.
func (l *Locator) Resolve(ctx context.Context, hint string) (string, error) {
	logger := log.FromContext(ctx)
	if hint == "any" {
		hint = ""
	}

	if hint == "" && l.Process != nil {
		path, err := l.Process.Running(ctx)
		if err != nil {
			// A failed probe is not fatal; the registry may still answer.
			logger.Debug("process probe failed", "err", err)
		} else if path != "" {
			logger.Debug("found running instance", "path", path)
			return path, nil
		}
	}

	if l.Installs == nil {
		return "", &NotFoundError{}
	}
	installs, err := l.Installs.Installs(ctx)
	if err != nil {
		return "", &NotFoundError{Cause: err}
	}
	if len(installs) == 0 {
		return "", &NotFoundError{}
	}
	sort.Slice(installs, func(i, j int) bool { return installs[i].Version < installs[j].Version })
	logger.Debug("found installations", "count", len(installs), "versions", versionList(installs))

	if hint == "" {
		return installs[0].Path, nil
	}

	var matches []Install
	for _, in := range installs {
		if strings.HasPrefix(in.Version, hint) {
			matches = append(matches, in)
		}
	}
	switch len(matches) {
	case 0:
		return "", &NotFoundError{Hint: hint, Suggestion: closestVersion(hint, installs)}
	case 1:
		return matches[0].Path, nil
	default:
		return "", &AmbiguousError{Hint: hint, Candidates: versionList(matches)}
	}
}

func versionList(installs []Install) []string {
	versions := make([]string, len(installs))
	for i, in := range installs {
		versions[i] = in.Version
	}
	return versions
}

// closestVersion returns the best fuzzy match for hint among the
// installed versions, or "" when nothing is close.
func closestVersion(hint string, installs []Install) string {
	results := fuzzy.Find(hint, versionList(installs))
	if len(results) == 0 {
		return ""
	}
	return results[0].Str
}
