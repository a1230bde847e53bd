package locate

import (
	"context"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// processScan finds a live Altium Designer instance by scanning the
// process list for the X2 image name. First match wins; there is at most
// one meaningful instance since Altium Designer runs as a singleton.
type processScan struct{}

func (processScan) Running(ctx context.Context) (string, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return "", err
	}
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			// Processes we can't inspect (permissions, races with exits)
			// are skipped rather than failing the probe.
			continue
		}
		if !strings.EqualFold(name, ExeName) {
			continue
		}
		exe, err := p.ExeWithContext(ctx)
		if err != nil {
			continue
		}
		return exe, nil
	}
	return "", nil
}
