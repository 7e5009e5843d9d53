package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/mgmtkit/component"
	"github.com/kbukum/mgmtkit/management"
)

func newHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that a management API token can be obtained",
		Args:  cobra.NoArgs,
		RunE: a.withClient(func(cmd *cobra.Command, args []string, _ *management.Client) error {
			results := a.registry.HealthAll(cmd.Context())
			if err := a.print(cmd, results); err != nil {
				return err
			}
			for _, h := range results {
				if h.Status != component.StatusHealthy {
					return fmt.Errorf("%s is %s: %s", h.Name, h.Status, h.Message)
				}
			}
			return nil
		}),
	}
}
