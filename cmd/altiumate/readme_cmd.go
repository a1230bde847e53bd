package main

import (
	"github.com/spf13/cobra"
)

func newReadmeCmd() *cobra.Command {
	var opts readmeOptions

	cmd := &cobra.Command{
		Use:   "readme [project-file] [readme-file]",
		Short: "Update documentation from project parameters",
		Long: `Update parameter slots in a markdown file from an Altium project file.

A slot is written as [](Name)...[](/) and its content is replaced with the
value of the project parameter Name. Without arguments the first *.PrjPcb
file in the working directory and README.md are used.`,
		Example: `  altiumate readme
  altiumate readme board.PrjPcb docs/README.md
  altiumate readme --ignore-missing`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.args = args
			return updateReadme(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.ignoreMissing, "ignore-missing", false, "Keep going when a slot names a parameter the project does not define")

	return cmd
}
