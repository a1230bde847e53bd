//go:build windows

package locate

import (
	"context"
	"fmt"
	"path/filepath"

	"golang.org/x/sys/windows/registry"
)

// buildsKey is where the Altium installer records every installed build.
const buildsKey = `SOFTWARE\Altium\Builds`

// systemInstalls enumerates installed builds from the Windows registry.
// Each subkey of the builds key carries a Version string and the install
// path the executable lives under.
type systemInstalls struct{}

func (systemInstalls) Installs(ctx context.Context) ([]Install, error) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, buildsKey, registry.READ)
	if err != nil {
		return nil, fmt.Errorf("open registry key %s: %w", buildsKey, err)
	}
	defer key.Close()

	names, err := key.ReadSubKeyNames(0)
	if err != nil {
		return nil, fmt.Errorf("enumerate %s: %w", buildsKey, err)
	}

	var installs []Install
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sub, err := registry.OpenKey(key, name, registry.QUERY_VALUE)
		if err != nil {
			return nil, fmt.Errorf("open registry key %s\\%s: %w", buildsKey, name, err)
		}
		version, _, err := sub.GetStringValue("Version")
		if err != nil {
			sub.Close()
			return nil, fmt.Errorf("read Version of %s\\%s: %w", buildsKey, name, err)
		}
		installPath, _, err := sub.GetStringValue("ProgramsInstallPath")
		sub.Close()
		if err != nil {
			return nil, fmt.Errorf("read ProgramsInstallPath of %s\\%s: %w", buildsKey, name, err)
		}
		installs = append(installs, Install{
			Version: version,
			Path:    filepath.Join(installPath, ExeName),
		})
	}
	return installs, nil
}
