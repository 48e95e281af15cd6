package commands

import (
	"fmt"
	"strings"

	"github.com/de-tools/warehouse-atlas/pkg/services/source"
	"github.com/spf13/cobra"
)

func NewSourcesCmd(registry source.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List supported warehouse source kinds",
		RunE: func(cmd *cobra.Command, _ []string) error {
			kinds := registry.ListKinds()
			if len(kinds) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sources registered")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Supported sources:\n%s\n", strings.Join(kinds, "\n"))
			return nil
		},
	}
}
