package dloenv

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/0xa1bed0/dloenv/internal/state"
	"github.com/0xa1bed0/dloenv/internal/ui"
)

func newBuildsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "builds",
		Short: "Show the build history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := state.OpenDefault(cmd.Context())
			if err != nil {
				return err
			}

			records, err := db.ListBuilds(cmd.Context(), limit)
			if err != nil {
				return err
			}

			table := ui.NewTable(
				ui.Column{Header: "WHEN"},
				ui.Column{Header: "TAG", MaxWidth: 40, Truncate: ui.TruncateMiddle},
				ui.Column{Header: "DURATION", Align: ui.AlignRight},
				ui.Column{Header: "DOCKERFILE", MaxWidth: 16, Truncate: ui.TruncateEnd},
			)
			for _, rec := range records {
				table.AddRow(
					rec.CreatedAt.Format("2006-01-02 15:04:05"),
					rec.Tag,
					rec.Duration.Truncate(1e6).String(),
					rec.DockerfileKey,
				)
			}

			return table.Render(os.Stdout)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum records to show, 0 for all")
	return cmd
}
