package dloenv

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/0xa1bed0/dloenv/internal/logs"
	"github.com/0xa1bed0/dloenv/internal/ui"
	"github.com/0xa1bed0/dloenv/internal/verify"
)

func newVerifyCmd() *cobra.Command {
	var rebuild bool

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Run smoke checks inside the built image",
		Long: `Build the image if needed, then run checks inside it: interpreter on
PATH, channel priority, bundled artifacts and tool versions pinned in
the manifest.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			signalsCtx, stopSignalsCtx := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stopSignalsCtx()

			orc, dockerClient, cfg, m, err := newOrchestrator()
			if err != nil {
				return err
			}

			imageTag, err := orc.ResolveImageTag(signalsCtx, rebuild)
			if err != nil {
				return err
			}

			checks := verify.Checks(cfg, m)
			logs.Infof("running %d checks in %s", len(checks), imageTag)

			results := verify.Run(signalsCtx, dockerClient, imageTag, checks)

			table := ui.NewTable(
				ui.Column{Header: "CHECK"},
				ui.Column{Header: "RESULT"},
				ui.Column{Header: "DETAIL", MaxWidth: 80, Truncate: ui.TruncateEnd},
			)
			for _, res := range results {
				if res.OK() {
					table.AddRow(res.Check.Name, "ok", "")
					continue
				}
				table.AddRow(res.Check.Name, "FAIL", strings.TrimSpace(res.Err.Error()))
			}
			if err := table.Render(os.Stdout); err != nil {
				return err
			}

			if failed := verify.Failed(results); len(failed) > 0 {
				return fmt.Errorf("%d of %d checks failed", len(failed), len(results))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&rebuild, "rebuild", false, "rebuild the image before verifying")

	return cmd
}
