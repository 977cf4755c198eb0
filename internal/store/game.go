package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chesskeep/chesskeep/internal/models"
)

// GameStore persists imported games. Games are append-only: there is no
// natural key and no deduplication.
type GameStore struct {
	Base
}

// NewGameStore creates a GameStore.
func NewGameStore(base Base) *GameStore {
	return &GameStore{Base: base}
}

// InsertGames writes a batch of games in one transaction with per-game
// savepoints, mirroring the position batch semantics.
func (s *GameStore) InsertGames(ctx context.Context, games []models.Game) (models.BatchResult, error) {
	ctx, cancel := withBatchTimeout(ctx)
	defer cancel()

	result := models.BatchResult{}

	tx, err := s.beginTx(ctx)
	if err != nil {
		return result, fmt.Errorf("inserting games: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	for i := range games {
		game := &games[i]

		if err := insertOneGame(ctx, tx, game); err != nil {
			result.RecordErrors = append(result.RecordErrors,
				fmt.Sprintf("game %d (%s vs %s): %v",
					game.GameIndex, game.WhitePlayer, game.BlackPlayer, err))

			continue
		}

		result.Loaded++
	}

	if err := tx.Commit(ctx); err != nil {
		return result, fmt.Errorf("committing game batch: %w", err)
	}

	s.Log.WithFields(map[string]any{
		"stored": result.Loaded,
		"errors": len(result.RecordErrors),
	}).Info("game batch committed")

	return result, nil
}

func insertOneGame(ctx context.Context, tx pgx.Tx, game *models.Game) error {
	sp, err := tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("starting savepoint: %w", err)
	}

	if err := insertGame(ctx, sp, game); err != nil {
		sp.Rollback(ctx) //nolint:errcheck // savepoint rollback on record failure.

		return err
	}

	if err := sp.Commit(ctx); err != nil {
		return fmt.Errorf("releasing savepoint: %w", err)
	}

	return nil
}

func insertGame(ctx context.Context, tx pgx.Tx, game *models.Game) error {
	moves, err := json.Marshal(game.Moves)
	if err != nil {
		return fmt.Errorf("marshalling moves: %w", err)
	}

	positions, err := listVal(game.Positions)
	if err != nil {
		return err
	}

	openingMoves, err := listVal(game.OpeningMoves)
	if err != nil {
		return err
	}

	metadata, err := json.Marshal(game.Metadata)
	if err != nil {
		return fmt.Errorf("marshalling metadata: %w", err)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO games
			(pgn_source, game_index, white_player, black_player,
			 white_elo, black_elo, result, game_date, event, site, round,
			 opening, eco_code, time_control, total_moves, moves, positions,
			 game_length_category, opening_moves, winner, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
		        $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING id
	`,
		game.Source, game.GameIndex, game.WhitePlayer, game.BlackPlayer,
		game.WhiteElo, game.BlackElo, game.Result, game.Date, game.Event,
		game.Site, game.Round, game.Opening, game.ECOCode, game.TimeControl,
		game.TotalMoves, moves, positions, game.LengthCategory,
		openingMoves, game.Winner, metadata,
	).Scan(&game.ID)
	if err != nil {
		return fmt.Errorf("inserting game: %w", err)
	}

	return nil
}

// CountGames returns the number of stored games.
func (s *GameStore) CountGames(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var count int64
	if err := s.Pool.QueryRow(ctx, "SELECT count(*) FROM games").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting games: %w", err)
	}

	return count, nil
}
