package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chesskeep/chesskeep/client"
)

func newPositionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "position <fen>",
		Short: "Look up a stored position by FEN",
		Long: `Look up a catalog position by its exact FEN string. Quote the FEN:

  chesskeep position "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := apiClient.PositionByFEN(cmd.Context(), args[0])
			if err != nil {
				if client.IsNotFound(err) {
					return fmt.Errorf("no position stored for that FEN")
				}
				return fmt.Errorf("lookup failed: %w", err)
			}

			quiet := ""
			if pos.ID != nil {
				quiet = fmt.Sprintf("%d", *pos.ID)
			}
			output(pos, quiet)
			return nil
		},
	}

	return cmd
}
