package cli

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/mgmtkit/version"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd); err != nil {
				return err
			}
			defer a.stop(cmd.Context())
			return a.print(cmd, version.Get())
		},
	}
}
