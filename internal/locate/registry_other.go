//go:build !windows

package locate

import (
	"context"
	"errors"
)

// Altium Designer installs only on Windows; elsewhere the registry probe
// always comes up empty. The process probe still works, which keeps the
// wildcard path usable in Wine-style setups where X2.EXE shows up in the
// process list.
type systemInstalls struct{}

func (systemInstalls) Installs(ctx context.Context) ([]Install, error) {
	return nil, errors.New("installed-build discovery requires Windows")
}
