package main

import (
	"github.com/spf13/cobra"
)

func newPreCommitCmd() *cobra.Command {
	var opts preCommitOptions

	cmd := &cobra.Command{
		Use:   "pre-commit",
		Short: "Manage pre-commit hooks for Altium projects",
		Long: `Set up pre-commit (https://pre-commit.com) for an Altium project.

Exactly one action flag selects what to do. Generated configs reference
the altiumate hooks, either as local system hooks or pinned to the
published repository.`,
		Example: `  altiumate pre-commit --sample-config
  altiumate pre-commit --sample-config=local
  altiumate pre-commit --add-config path/to/repo
  altiumate pre-commit --add-linked-config --force
  altiumate pre-commit --install`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.selected() {
				return cmd.Help()
			}
			return managePreCommit(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.sampleConfig, "sample-config", "", "Print a sample config, local or remote")
	cmd.Flags().Lookup("sample-config").NoOptDefVal = "remote"
	cmd.Flags().StringVar(&opts.addConfig, "add-config", "", "Write a sample config into the given directory")
	cmd.Flags().Lookup("add-config").NoOptDefVal = "."
	cmd.Flags().StringVar(&opts.addLinkedConfig, "add-linked-config", "", "Hard-link a shared sample config into the given directory")
	cmd.Flags().Lookup("add-linked-config").NoOptDefVal = "."
	cmd.Flags().BoolVar(&opts.install, "install", false, "Run pre-commit install in the current directory")
	cmd.Flags().BoolVar(&opts.hooksYAML, "hooks-yaml", false, "Print the published hook catalog")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite an existing config file")
	cmd.MarkFlagsMutuallyExclusive("sample-config", "add-config", "add-linked-config", "install", "hooks-yaml")

	return cmd
}
