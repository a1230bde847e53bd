package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/altiumate/altiumate/internal/log"
	"github.com/altiumate/altiumate/internal/output"
	"github.com/altiumate/altiumate/internal/project"
	"github.com/altiumate/altiumate/internal/readme"
)

type readmeOptions struct {
	args          []string
	ignoreMissing bool
}

func updateReadme(ctx context.Context, opts readmeOptions) error {
	logger := log.FromContext(ctx)

	projectFile, readmeFile, err := readmeTargets(opts.args)
	if err != nil {
		return err
	}

	logger.Debug("patching readme", "project", projectFile, "readme", readmeFile)

	params, err := project.ScanFile(projectFile)
	if err != nil {
		return err
	}
	if params.Len() == 0 {
		logger.Warnf("no parameters found in %s", projectFile)
	}

	updated, err := readme.PatchFile(readmeFile, params, !opts.ignoreMissing)
	if err != nil {
		var missing *readme.MissingParameterError
		if errors.As(err, &missing) {
			return fmt.Errorf("%s: %w, define it in %s or pass --ignore-missing",
				readmeFile, missing, projectFile)
		}
		return err
	}

	output.Printf(ctx, "Updated %d parameter(s) in %s\n", updated, readmeFile)

	return nil
}

// readmeTargets fills in defaults for omitted positional arguments.
func readmeTargets(args []string) (projectFile, readmeFile string, err error) {
	readmeFile = "README.md"

	switch len(args) {
	case 2:
		readmeFile = args[1]
		fallthrough
	case 1:
		projectFile = args[0]
	default:
		matches, err := filepath.Glob("*.PrjPcb")
		if err != nil {
			return "", "", err
		}
		if len(matches) == 0 {
			return "", "", errors.New("no *.PrjPcb file in the working directory, pass the project file explicitly")
		}
		projectFile = matches[0]
	}

	return projectFile, readmeFile, nil
}
