package main

import (
	"context"

	"github.com/altiumate/altiumate/internal/log"
	"github.com/altiumate/altiumate/internal/output"
	"github.com/altiumate/altiumate/internal/precommit"
)

type preCommitOptions struct {
	sampleConfig    string
	addConfig       string
	addLinkedConfig string
	install         bool
	hooksYAML       bool
	force           bool
}

func (o preCommitOptions) selected() bool {
	return o.sampleConfig != "" || o.addConfig != "" || o.addLinkedConfig != "" || o.install || o.hooksYAML
}

func managePreCommit(ctx context.Context, opts preCommitOptions) error {
	switch {
	case opts.sampleConfig != "":
		content, err := precommit.SampleConfig(precommit.Kind(opts.sampleConfig))
		if err != nil {
			return err
		}
		output.Print(ctx, content)

	case opts.hooksYAML:
		content, err := precommit.HooksYAML()
		if err != nil {
			return err
		}
		output.Print(ctx, content)

	case opts.addConfig != "":
		path, err := precommit.WriteConfig(opts.addConfig, precommit.Remote, opts.force)
		if err != nil {
			return err
		}
		log.FromContext(ctx).Printf("Wrote %s\n", path)

	case opts.addLinkedConfig != "":
		path, err := precommit.WriteLinkedConfig(opts.addLinkedConfig, dataDir, precommit.Remote, opts.force)
		if err != nil {
			return err
		}
		log.FromContext(ctx).Printf("Linked %s\n", path)

	case opts.install:
		stdout, err := precommit.Install(ctx)
		if err != nil {
			return err
		}
		output.Print(ctx, string(stdout))
	}

	return nil
}
