package dloenv

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/0xa1bed0/dloenv/internal/logs"
)

type runOptions struct {
	Volumes      []string
	ForceRebuild bool
}

var runOpts = &runOptions{}

// attachRunCmdFlags attaches the "run" cmd flags to the given command
// so root can act as an alias for run.
func attachRunCmdFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringSliceVar(&runOpts.Volumes, "volume", nil, "Bind mount in 'host:container' format (may be repeated)")
	flags.BoolVar(&runOpts.ForceRebuild, "rebuild", false, "Force rebuild of the image")
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start an interactive shell in the analysis environment",
		Long: `Build the environment image (if needed) and start an interactive
container with the configured working directory and shell.`,
		Args: cobra.NoArgs,
		RunE: runCmdRunE,
	}

	attachRunCmdFlags(cmd)

	return cmd
}

// runCmdRunE is a separate function so root can reuse it (default command)
func runCmdRunE(cmd *cobra.Command, args []string) error {
	logs.Debugf("running environment...")

	signalsCtx, stopSignalsCtx := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stopSignalsCtx()

	orc, dockerClient, _, _, err := newOrchestrator()
	if err != nil {
		return err
	}

	if err := validateBinds(signalsCtx, runOpts.Volumes); err != nil {
		return err
	}

	imageTag, err := orc.ResolveImageTag(signalsCtx, runOpts.ForceRebuild)
	if err != nil {
		return err
	}

	// the interactive session installs its own signal handling.
	stopSignalsCtx()

	exitCode, err := dockerClient.RunInteractive(context.Background(), imageTag, runOpts.Volumes)
	if err != nil {
		return err
	}

	logs.Close()
	os.Exit(int(exitCode))
	return nil
}
