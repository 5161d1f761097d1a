package dloenv

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/0xa1bed0/dloenv/internal/logs"
	"github.com/0xa1bed0/dloenv/internal/state"
)

func newBuildCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the environment image",
		Long:  "Run the provisioning pipeline and build the resulting image, reusing the cache when possible.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			signalsCtx, stopSignalsCtx := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stopSignalsCtx()

			orc, _, _, _, err := newOrchestrator()
			if err != nil {
				return err
			}

			if db, dbErr := state.OpenDefault(context.Background()); dbErr == nil {
				orc.SetBuildHistory(db)
			} else {
				logs.Debugf("build history disabled: %v", dbErr)
			}

			imageTag, err := orc.ResolveImageTag(signalsCtx, force)
			if err != nil {
				return err
			}

			fmt.Println(imageTag)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "rebuild even when a cached image exists")

	return cmd
}
