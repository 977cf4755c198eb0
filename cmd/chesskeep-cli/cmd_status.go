package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check server health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			health, err := apiClient.Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("server unreachable at %s: %w", flagURL, err)
			}

			fmt.Fprintf(os.Stderr, "Server %s: %s (version %s, database %s, %d ws clients)\n",
				flagURL, health.Status, health.Version, health.Database, health.WSClients)

			output(health, health.Status)
			return nil
		},
	}

	return cmd
}
