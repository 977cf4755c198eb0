package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import analysis records or games into the catalog",
	}
	cmd.AddCommand(newImportPositionsCmd())
	cmd.AddCommand(newImportGamesCmd())
	return cmd
}

func newImportPositionsCmd() *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "positions <file.jsonl>",
		Short: "Import a JSONL file of engine analysis records",
		Long: `Import analysis records from a JSONL file (one JSON object per line).
Records are validated and normalized server-side; positions are matched
by FEN, so re-importing the same file updates in place.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			filePath := args[0]

			f, err := os.Open(filePath)
			if err != nil {
				return fmt.Errorf("opening file: %w", err)
			}
			defer f.Close()

			if source == "" {
				source = filepath.Base(filePath)
			}

			result, err := apiClient.ImportPositions(ctx, f, source)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}

			fmt.Fprintf(os.Stderr, "Positions: %d loaded, %d updated, %d errors (%.1f%% success)\n",
				result.PositionsLoaded, result.PositionsUpdated, result.ErrorsEncountered, result.Stats.SuccessRate)

			for _, e := range result.Stats.Errors {
				fmt.Fprintf(os.Stderr, "  - %s\n", e)
			}

			if !result.Success {
				return fmt.Errorf("import rejected: %s", result.Error)
			}

			output(result, fmt.Sprintf("%d", result.PositionsLoaded+result.PositionsUpdated))
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Source name recorded with each position (default: file name)")

	return cmd
}

func newImportGamesCmd() *cobra.Command {
	var (
		source   string
		maxGames int
	)

	cmd := &cobra.Command{
		Use:   "games <file.pgn>",
		Short: "Import a PGN file of chess games",
		Long: `Import games from a PGN file. Each game is parsed, validated against
the rules of chess, and stored with normalized player names and metadata.
Games are append-only; importing the same file twice stores the games twice.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			filePath := args[0]

			f, err := os.Open(filePath)
			if err != nil {
				return fmt.Errorf("opening file: %w", err)
			}
			defer f.Close()

			if source == "" {
				source = filepath.Base(filePath)
			}

			result, err := apiClient.ImportGames(ctx, f, source, maxGames)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}

			fmt.Fprintf(os.Stderr, "Games: %d stored, %d errors (%d processed)\n",
				result.GamesStored, result.Errors, result.TotalProcessed)

			output(result, fmt.Sprintf("%d", result.GamesStored))
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Source name recorded with each game (default: file name)")
	cmd.Flags().IntVar(&maxGames, "max-games", 0, "Stop after this many games (0 = no limit)")

	return cmd
}
