// Package precommit generates pre-commit hook configuration for Altium
// Designer projects and drives the pre-commit CLI.
package precommit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/altiumate/altiumate/internal/cmd"
)

// ConfigName is the file name pre-commit expects in a repository root.
const ConfigName = ".pre-commit-config.yaml"

// repoURL and repoRev pin the remote-style sample config to a released
// altiumate version.
const (
	repoURL = "https://github.com/altiumate/altiumate"
	repoRev = "v0.4.1"
)

// Hook is one pre-commit hook definition.
type Hook struct {
	ID            string   `yaml:"id"`
	Args          []string `yaml:"args,omitempty"`
	Name          string   `yaml:"name,omitempty"`
	Entry         string   `yaml:"entry,omitempty"`
	Files         string   `yaml:"files,omitempty"`
	Description   string   `yaml:"description,omitempty"`
	PassFilenames *bool    `yaml:"pass_filenames,omitempty"`
	AlwaysRun     bool     `yaml:"always_run,omitempty"`
	Verbose       bool     `yaml:"verbose,omitempty"`
	Language      string   `yaml:"language,omitempty"`
}

// Repo is one repos entry of a pre-commit config.
type Repo struct {
	Repo  string `yaml:"repo"`
	Rev   string `yaml:"rev,omitempty"`
	Hooks []Hook `yaml:"hooks"`
}

// File is a whole .pre-commit-config.yaml document.
type File struct {
	Repos []Repo `yaml:"repos"`
}

func boolPtr(b bool) *bool { return &b }

// Hooks returns the full hook catalog altiumate ships.
func Hooks() []Hook {
	return []Hook{
		{
			ID:            "find-altium",
			Args:          []string{"--altium-path=24.9.1"},
			Name:          "Find AD installation",
			Entry:         "altiumate",
			Description:   "Finds Altium Designer installations",
			PassFilenames: boolPtr(false),
			AlwaysRun:     true,
			Verbose:       true,
			Language:      "system",
		},
		{
			ID:          "altium-run",
			Args:        []string{"--procedure", "ShowInfo('Hello from Altiumate!')"},
			Name:        "Run in AD",
			Entry:       "altiumate run",
			Files:       `\.(PrjPcb|SchDoc|PcbDoc|OutJob)$`,
			Description: "Runs a script in Altium Designer",
			Language:    "system",
		},
		{
			ID:            "update-readme",
			Name:          "Update README.md",
			Entry:         "altiumate readme",
			Files:         `\.(PrjPcb|md)$`,
			PassFilenames: boolPtr(false),
			Description:   "Updates the README.md file with requested project parameters",
			Language:      "system",
		},
		{
			ID:            "check-unsaved",
			Name:          "Force file saving before commit",
			Entry:         "altiumate run --check-unsaved",
			Description:   "Ensures there are no unsaved changes in Altium Designer before committing",
			PassFilenames: boolPtr(false),
			AlwaysRun:     true,
			Language:      "system",
		},
	}
}

// Kind selects the sample config flavor.
type Kind string

const (
	// Local inlines the hook definitions under a local repo, running
	// whatever altiumate binary is on PATH.
	Local Kind = "local"
	// Remote references the published altiumate repository at a pinned
	// revision.
	Remote Kind = "remote"
)

// SampleConfig renders a sample .pre-commit-config.yaml.
func SampleConfig(kind Kind) (string, error) {
	var file File
	switch kind {
	case Local:
		file.Repos = []Repo{{Repo: "local", Hooks: Hooks()}}
	case Remote:
		var hooks []Hook
		for _, h := range Hooks() {
			hooks = append(hooks, Hook{ID: h.ID, Args: h.Args, Language: "golang"})
		}
		file.Repos = []Repo{{Repo: repoURL, Rev: repoRev, Hooks: hooks}}
	default:
		return "", fmt.Errorf("invalid sample config kind %q", kind)
	}
	return marshal(file)
}

// HooksYAML renders the .pre-commit-hooks.yaml catalog published with
// the repository. Args stay out of the catalog; consumers set their own.
func HooksYAML() (string, error) {
	var hooks []Hook
	for _, h := range Hooks() {
		h.Args = nil
		h.Language = "golang"
		hooks = append(hooks, h)
	}
	return marshal(hooks)
}

func marshal(v any) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("render yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("render yaml: %w", err)
	}
	return buf.String(), nil
}

// WriteConfig writes a sample config into dir. Refuses to overwrite an
// existing config unless force is set.
func WriteConfig(dir string, kind Kind, force bool) (string, error) {
	out, err := configTarget(dir, force)
	if err != nil {
		return "", err
	}
	content, err := SampleConfig(kind)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(out, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return out, nil
}

// WriteLinkedConfig hard-links dir's config to a cached sample in the
// data dir, so every linked repo picks up sample updates at once.
func WriteLinkedConfig(dir, dataDir string, kind Kind, force bool) (string, error) {
	out, err := configTarget(dir, force)
	if err != nil {
		return "", err
	}

	cached := filepath.Join(dataDir, ".linked-config.yaml")
	if _, err := os.Stat(cached); errors.Is(err, os.ErrNotExist) {
		content, err := SampleConfig(kind)
		if err != nil {
			return "", err
		}
		if err := os.WriteFile(cached, []byte(content), 0o644); err != nil {
			return "", fmt.Errorf("write linked config source: %w", err)
		}
	}

	if err := os.Remove(out); err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("replace existing config: %w", err)
	}
	if err := os.Link(cached, out); err != nil {
		return "", fmt.Errorf("hard-link config: %w", err)
	}
	return out, nil
}

// configTarget validates dir and enforces the overwrite policy.
func configTarget(dir string, force bool) (string, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("provided path %s is not a directory", dir)
	}
	out := filepath.Join(dir, ConfigName)
	if _, err := os.Stat(out); err == nil && !force {
		return "", fmt.Errorf("config file %s already exists, use --force to overwrite", out)
	}
	return out, nil
}

// Install runs `pre-commit install` in the current directory and
// returns its stdout.
func Install(ctx context.Context) ([]byte, error) {
	out, err := cmd.OutputContext(ctx, "", "pre-commit", "install")
	if err != nil {
		return nil, fmt.Errorf("pre-commit install: %w", err)
	}
	return out, nil
}
