// Package locate resolves which Altium Designer executable to target.
//
// Discovery is split into two capability providers: [InstallProvider]
// enumerates installed builds (the Windows registry on Windows), and
// [ProcessProvider] probes the live process list for an already-running
// instance (via gopsutil, so the probe is portable). [Locator] applies
// policy over both: a running instance wins for wildcard requests,
// concrete version hints filter installed builds by prefix.
//
// Both probes run fresh on every resolution. Install sets change rarely,
// but a running instance can appear or vanish between any two CLI
// invocations, so nothing is cached.
package locate
