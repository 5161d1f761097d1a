package dloenv

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the generated Dockerfile without building",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orc, _, _, _, err := newOrchestrator()
			if err != nil {
				return err
			}

			df, err := orc.RenderDockerfile(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Print(df.String())
			return nil
		},
	}

	return cmd
}
