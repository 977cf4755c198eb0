package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show catalog row counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			counts, err := apiClient.Stats(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetching stats: %w", err)
			}

			if flagFmt == "table" {
				formatTable([]string{"Table", "Rows"}, [][]string{
					{"positions", fmt.Sprintf("%d", counts.Positions)},
					{"games", fmt.Sprintf("%d", counts.Games)},
				})
				return nil
			}

			output(counts, fmt.Sprintf("%d", counts.Positions+counts.Games))
			return nil
		},
	}

	return cmd
}
