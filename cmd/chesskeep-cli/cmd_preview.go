package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview <file.pgn>",
		Short: "Validate a PGN file and show statistics without importing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening file: %w", err)
			}
			defer f.Close()

			preview, err := apiClient.PreviewGames(ctx, f)
			if err != nil {
				return fmt.Errorf("preview failed: %w", err)
			}

			v := preview.Validation
			mark := "✓"
			if !v.Valid {
				mark = "✗"
			}
			fmt.Fprintf(os.Stderr, "%s %s (%d games)\n", mark, v.Message, v.GameCount)

			if s := preview.Statistics; s != nil && flagFmt == "table" {
				rows := [][]string{
					{"Games", fmt.Sprintf("%d", s.TotalGames)},
					{"Sampled", fmt.Sprintf("%d", s.SampleSize)},
					{"Avg moves/game", fmt.Sprintf("%.1f", s.AvgMovesPerGame)},
					{"Player name quality", fmt.Sprintf("%.1f%%", s.PlayerNameQuality)},
					{"Results (W/B/D/?)", fmt.Sprintf("%d/%d/%d/%d", s.Results.WhiteWins, s.Results.BlackWins, s.Results.Draws, s.Results.Unknown)},
					{"Estimated import", s.EstimatedImportTime},
				}
				if s.AvgElo > 0 {
					rows = append(rows, []string{"Avg Elo", fmt.Sprintf("%d", s.AvgElo)})
				}
				if s.DateRange != "" {
					rows = append(rows, []string{"Date range", s.DateRange})
				}
				formatTable([]string{"Statistic", "Value"}, rows)
				return nil
			}

			output(preview, fmt.Sprintf("%d", v.GameCount))
			return nil
		},
	}

	return cmd
}
