package dloenv

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/0xa1bed0/dloenv/internal/version"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version of dloenv",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s\n", version.Get())
		},
	}

	return cmd
}
