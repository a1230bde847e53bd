package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/altiumate/altiumate/internal/config"
	"github.com/altiumate/altiumate/internal/locate"
	"github.com/altiumate/altiumate/internal/log"
	"github.com/altiumate/altiumate/internal/output"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	altiumPath string
	copyPath   bool

	// Shared state injected into commands
	cfg     config.Config
	dataDir string
)

// exitCodeError carries a specific process exit status through cobra's
// error return. The run command uses it to surface the script's result
// code to the invoking shell (pre-commit treats it as the hook status).
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "altiumate",
	Short: "Altium Designer automation interface",
	Long: `altiumate drives Altium Designer from the command line.

It resolves an installed (or already running) Altium Designer, hands it a
generated script to execute, and waits for the result - which makes AD
usable from pre-commit hooks and CI-adjacent tooling.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Flags are parsed by now, so the logger can honor them.
		ctx := cmd.Context()
		ctx = log.WithLogger(ctx, log.New(os.Stderr, verbose, quiet))
		ctx = output.WithPrinter(ctx, os.Stdout)
		cmd.SetContext(ctx)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if altiumPath == "" {
			return cmd.Help()
		}
		return printAltiumPath(cmd.Context(), altiumPath)
	},
}

// printAltiumPath resolves and prints the executable path for the
// --altium-path global flag.
func printAltiumPath(ctx context.Context, hint string) error {
	exe, err := resolveExecutable(ctx, hint)
	if err != nil {
		return err
	}
	output.Println(ctx, exe)
	if copyPath {
		if err := clipboard.WriteAll(exe); err != nil {
			log.FromContext(ctx).Warnf("failed to copy to clipboard: %v", err)
		}
	}
	return nil
}

// resolveExecutable returns the Altium Designer executable to use. The
// .altium_exe side file in the data dir wins over any discovery.
func resolveExecutable(ctx context.Context, hint string) (string, error) {
	override, err := config.ExeOverride(dataDir)
	if err != nil {
		return "", err
	}
	if override != "" {
		log.FromContext(ctx).Debug("using executable override", "path", override)
		return override, nil
	}
	return locate.New().Resolve(ctx, hint)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	loadedCfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	cfg = loadedCfg

	dataDir, err = cfg.ResolveDataDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "altiumate: %v\n", err)
		os.Exit(1)
	}

	// Interrupting the wait for Altium Designer cancels this context;
	// the run is reported as interrupted, the AD instance stays alive.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		var exit *exitCodeError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Increase verbosity")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.Flags().StringVar(&altiumPath, "altium-path", "", "Print the path to the Altium Designer executable with the specified version (defaults to the first found)")
	rootCmd.Flags().Lookup("altium-path").NoOptDefVal = "any"
	rootCmd.Flags().BoolVar(&copyPath, "copy", false, "Copy the printed path to the clipboard")

	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddCommand(newPreCommitCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newReadmeCmd())
}
