package main

import (
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run [flags] [file...]",
		Short: "Run scripts in Altium Designer",
		Long: `Run a script procedure in Altium Designer and wait for its result.

Passed files are exposed to the script as the passed_files constant, a
comma-separated list of absolute paths. The process exit code equals the
return code the script reports.`,
		Example: `  altiumate run --procedure "ShowInfo('Hello from Altiumate!')"
  altiumate run board.PcbDoc controller.SchDoc
  altiumate run --outjob fabrication.OutJob
  altiumate run --check-unsaved
  altiumate run --altium-version 24.9 --timeout 300 board.PcbDoc`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.files = args
			code, err := runInAltium(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if code != 0 {
				return &exitCodeError{code: code}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.procedure, "procedure", "", "Procedure to call in Altium Designer")
	cmd.Flags().StringVar(&opts.outJob, "outjob", "", "Output job file to run")
	cmd.Flags().BoolVar(&opts.checkUnsaved, "check-unsaved", false, "Fail when Altium Designer has unsaved documents")
	cmd.Flags().StringVar(&opts.version, "altium-version", "", "Use a specific version of Altium Designer")
	cmd.Flags().StringVar(&opts.timeout, "timeout", "", "Timeout for the script runtime in seconds (default 60)")
	cmd.MarkFlagsMutuallyExclusive("procedure", "outjob", "check-unsaved")

	return cmd
}
