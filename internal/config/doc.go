// Package config handles loading of altiumate configuration.
//
// Configuration is read from ~/.config/altiumate/config.toml with
// environment variable overrides.
//
// # Configuration Sources (highest priority first)
//
//   - ALTIUMATE_VERSION / ALTIUMATE_TIMEOUT / ALTIUMATE_DATA_DIR env vars
//   - Config file settings
//   - Default values
//
// # Key Settings
//
//   - version: default Altium Designer version hint ("" or "any" = first found)
//   - timeout_seconds: how long a run waits for the result artifact
//   - data_dir: location of the script payload and status artifact
//     (default ~/.altiumate)
//
// # Executable Override
//
// A one-line .altium_exe file in the data directory pins the Altium
// Designer executable path, bypassing registry and process discovery
// entirely. This matters on machines where registry access is restricted.
package config
