package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chesskeep/chesskeep/internal/models"
)

// PositionStore persists the position catalog and its candidate moves.
type PositionStore struct {
	Base
}

// NewPositionStore creates a PositionStore.
func NewPositionStore(base Base) *PositionStore {
	return &PositionStore{Base: base}
}

const positionColumnList = `
		fen, turn, fullmove_number, halfmove_clock, castling_rights, en_passant,
		move_history, last_move, engine_depth, analysis_time, evaluation,
		material_analysis, mobility_analysis, king_safety_analysis,
		center_control_analysis, pawn_structure_analysis,
		piece_development_analysis, comprehensive_analysis, variation_analysis,
		learning_insights, visualization_data, position_classification,
		game_phase, difficulty_rating, themes, position_type, source_type,
		title, description, solution_moves, source_timestamp, processing_quality`

const positionPlaceholders = `
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
		$17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30,
		$31, $32`

const positionUpdateSet = `
		turn = EXCLUDED.turn,
		fullmove_number = EXCLUDED.fullmove_number,
		halfmove_clock = EXCLUDED.halfmove_clock,
		castling_rights = EXCLUDED.castling_rights,
		en_passant = EXCLUDED.en_passant,
		move_history = EXCLUDED.move_history,
		last_move = EXCLUDED.last_move,
		engine_depth = EXCLUDED.engine_depth,
		analysis_time = EXCLUDED.analysis_time,
		evaluation = EXCLUDED.evaluation,
		material_analysis = EXCLUDED.material_analysis,
		mobility_analysis = EXCLUDED.mobility_analysis,
		king_safety_analysis = EXCLUDED.king_safety_analysis,
		center_control_analysis = EXCLUDED.center_control_analysis,
		pawn_structure_analysis = EXCLUDED.pawn_structure_analysis,
		piece_development_analysis = EXCLUDED.piece_development_analysis,
		comprehensive_analysis = EXCLUDED.comprehensive_analysis,
		variation_analysis = EXCLUDED.variation_analysis,
		learning_insights = EXCLUDED.learning_insights,
		visualization_data = EXCLUDED.visualization_data,
		position_classification = EXCLUDED.position_classification,
		game_phase = EXCLUDED.game_phase,
		difficulty_rating = EXCLUDED.difficulty_rating,
		themes = EXCLUDED.themes,
		position_type = EXCLUDED.position_type,
		source_type = EXCLUDED.source_type,
		title = EXCLUDED.title,
		description = EXCLUDED.description,
		solution_moves = EXCLUDED.solution_moves,
		source_timestamp = EXCLUDED.source_timestamp,
		processing_quality = EXCLUDED.processing_quality,
		updated_at = now()`

// upsertByFEN targets the natural key. The FEN never changes on conflict, so
// the update set can safely omit it.
const upsertByFEN = `
	INSERT INTO positions (` + positionColumnList + `)
	VALUES (` + positionPlaceholders + `)
	ON CONFLICT ON CONSTRAINT positions_fen_key DO UPDATE SET` + positionUpdateSet + `
	RETURNING id, (xmax = 0) AS was_inserted`

// upsertByID targets an explicit source id once identity resolution has
// settled on the id key; the fen column is then part of the update set. A FEN
// collision with a different id surfaces as a constraint error and is handled
// per record by the caller.
const upsertByID = `
	INSERT INTO positions (id, ` + positionColumnList + `)
	VALUES ($33, ` + positionPlaceholders + `)
	ON CONFLICT (id) DO UPDATE SET
		fen = EXCLUDED.fen,` + positionUpdateSet + `
	RETURNING id, (xmax = 0) AS was_inserted`

// LoadPositions writes a batch of positions inside a single transaction.
// Each record runs under its own savepoint: a failing record is rolled back
// and reported without disturbing the records staged before it, and the
// batch commits once at the end.
func (s *PositionStore) LoadPositions(ctx context.Context, positions []models.Position) (models.BatchResult, error) {
	ctx, cancel := withBatchTimeout(ctx)
	defer cancel()

	result := models.BatchResult{}

	tx, err := s.beginTx(ctx)
	if err != nil {
		return result, fmt.Errorf("loading positions: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	for i := range positions {
		pos := &positions[i]

		wasInserted, err := s.loadOne(ctx, tx, pos)
		if err != nil {
			result.RecordErrors = append(result.RecordErrors,
				fmt.Sprintf("position %s: %v", pos.FEN, err))

			continue
		}

		if wasInserted {
			result.Loaded++
		} else {
			result.Updated++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return result, fmt.Errorf("committing position batch: %w", err)
	}

	s.Log.WithFields(map[string]any{
		"loaded":  result.Loaded,
		"updated": result.Updated,
		"errors":  len(result.RecordErrors),
	}).Info("position batch committed")

	return result, nil
}

// loadOne upserts a single position and rebuilds its moves under a savepoint,
// so a failure rolls back only this record.
func (s *PositionStore) loadOne(ctx context.Context, tx pgx.Tx, pos *models.Position) (bool, error) {
	sp, err := tx.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("starting savepoint: %w", err)
	}

	id, wasInserted, err := upsertPosition(ctx, sp, pos)
	if err == nil {
		err = replaceMoves(ctx, sp, id, pos.Moves)
	}

	if err != nil {
		sp.Rollback(ctx) //nolint:errcheck // savepoint rollback on record failure.

		return false, err
	}

	if err := sp.Commit(ctx); err != nil {
		return false, fmt.Errorf("releasing savepoint: %w", err)
	}

	pos.ID = &id

	return wasInserted, nil
}

func upsertPosition(ctx context.Context, tx pgx.Tx, pos *models.Position) (int64, bool, error) {
	args, err := positionArgs(pos)
	if err != nil {
		return 0, false, err
	}

	query := upsertByFEN

	if pos.ID != nil && *pos.ID > 0 {
		byID, err := useIDKey(ctx, tx, *pos.ID, pos.FEN)
		if err != nil {
			return 0, false, err
		}

		if byID {
			query = upsertByID
			args = append(args, *pos.ID)
		}
	}

	var (
		id          int64
		wasInserted bool
	)

	if err := tx.QueryRow(ctx, query, args...).Scan(&id, &wasInserted); err != nil {
		return 0, false, fmt.Errorf("upserting position: %w", err)
	}

	return id, wasInserted, nil
}

// useIDKey decides which key an explicit-id record writes through. The id
// wins when a row with that id exists, or when the FEN is new too (a fresh
// insert keeps the explicit id). An unknown id whose FEN already names a row
// falls back to the FEN key like an id-less record.
func useIDKey(ctx context.Context, tx pgx.Tx, id int64, fen string) (bool, error) {
	var idKnown bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM positions WHERE id = $1)`, id).Scan(&idKnown); err != nil {
		return false, fmt.Errorf("resolving position id: %w", err)
	}

	if idKnown {
		return true, nil
	}

	var fenKnown bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM positions WHERE fen = $1)`, fen).Scan(&fenKnown); err != nil {
		return false, fmt.Errorf("resolving position FEN: %w", err)
	}

	return !fenKnown, nil
}

// replaceMoves destroys and rebuilds the candidate-move set for a position.
func replaceMoves(ctx context.Context, tx pgx.Tx, positionID int64, moves []models.Move) error {
	if _, err := tx.Exec(ctx, "DELETE FROM moves WHERE position_id = $1", positionID); err != nil {
		return fmt.Errorf("clearing moves: %w", err)
	}

	for i := range moves {
		m := &moves[i]

		tactics, err := listVal(m.Tactics)
		if err != nil {
			return err
		}

		impact, err := blobVal(m.PositionImpact)
		if err != nil {
			return err
		}

		mlEval, err := blobVal(m.MLEvaluation)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO moves
				(position_id, san, uci, score, depth, centipawn_loss,
				 classification, principal_variation, tactics,
				 position_impact, ml_evaluation, move_complexity,
				 strategic_value, rank)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		`,
			positionID, m.SAN, m.UCI, m.Score, m.Depth, m.CentipawnLoss,
			m.Classification, m.PrincipalVariation, tactics,
			impact, mlEval, m.MoveComplexity, m.StrategicValue, m.Rank,
		)
		if err != nil {
			return fmt.Errorf("inserting move %d: %w", m.Rank, err)
		}
	}

	return nil
}

// positionArgs builds the 32 positional parameters shared by both upsert
// statements, in positionColumnList order.
func positionArgs(pos *models.Position) ([]any, error) {
	blobs := make([][]byte, 0, 13)

	for _, b := range []models.Blob{
		pos.MoveHistory, pos.LastMove, pos.Evaluation,
		pos.MaterialAnalysis, pos.MobilityAnalysis, pos.KingSafetyAnalysis,
		pos.CenterControlAnalysis, pos.PawnStructureAnalysis,
		pos.PieceDevelopmentAnalysis, pos.ComprehensiveAnalysis,
		pos.VariationAnalysis, pos.LearningInsights, pos.VisualizationData,
	} {
		data, err := blobVal(b)
		if err != nil {
			return nil, err
		}

		blobs = append(blobs, data)
	}

	classification, err := listVal(pos.Classification)
	if err != nil {
		return nil, err
	}

	themes, err := listVal(pos.Themes)
	if err != nil {
		return nil, err
	}

	solutionMoves, err := listVal(pos.SolutionMoves)
	if err != nil {
		return nil, err
	}

	return []any{
		pos.FEN, pos.Turn, pos.FullmoveNumber, pos.HalfmoveClock,
		pos.CastlingRights, pos.EnPassant,
		blobs[0], blobs[1], pos.EngineDepth, pos.AnalysisTime, blobs[2],
		blobs[3], blobs[4], blobs[5], blobs[6], blobs[7], blobs[8],
		blobs[9], blobs[10], blobs[11], blobs[12],
		classification, string(pos.GamePhase), pos.DifficultyRating,
		themes, string(pos.PositionType), pos.SourceType,
		pos.Title, pos.Description, solutionMoves,
		pos.Timestamp, string(pos.Quality),
	}, nil
}

// GetPositionByFEN fetches one position with its moves, or
// models.ErrPositionNotFound.
func (s *PositionStore) GetPositionByFEN(ctx context.Context, fen string) (*models.Position, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx, `
		SELECT id, `+positionColumnList+`
		FROM positions
		WHERE fen = $1
	`, fen)

	pos, err := scanPosition(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrPositionNotFound
		}

		return nil, fmt.Errorf("fetching position: %w", err)
	}

	moves, err := s.movesForPosition(ctx, *pos.ID)
	if err != nil {
		return nil, err
	}

	pos.Moves = moves

	return pos, nil
}

func (s *PositionStore) movesForPosition(ctx context.Context, positionID int64) ([]models.Move, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT san, uci, score, depth, centipawn_loss, classification,
		       principal_variation, tactics, position_impact, ml_evaluation,
		       move_complexity, strategic_value, rank
		FROM moves
		WHERE position_id = $1
		ORDER BY rank
	`, positionID)
	if err != nil {
		return nil, fmt.Errorf("fetching moves: %w", err)
	}
	defer rows.Close()

	return scanMoves(rows)
}

// CountPositions returns the catalog size.
func (s *PositionStore) CountPositions(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var count int64
	if err := s.Pool.QueryRow(ctx, "SELECT count(*) FROM positions").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting positions: %w", err)
	}

	return count, nil
}
