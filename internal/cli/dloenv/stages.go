package dloenv

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/0xa1bed0/dloenv/internal/stages"
	"github.com/0xa1bed0/dloenv/internal/ui"
)

func newStagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stages",
		Short: "List the provisioning stages in execution order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadManifest()
			if err != nil {
				return err
			}

			table := ui.NewTable(
				ui.Column{Header: "#", Align: ui.AlignRight},
				ui.Column{Header: "STAGE"},
				ui.Column{Header: "DESCRIPTION", MaxWidth: 90},
			)
			for i, st := range stages.DefaultPipeline(m) {
				table.AddRow(strconv.Itoa(i+1), string(st.ID), st.Description)
			}

			return table.Render(os.Stdout)
		},
	}

	return cmd
}
