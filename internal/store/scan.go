package store

import (
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chesskeep/chesskeep/internal/models"
)

// scanPosition reads one row produced by selecting id + positionColumnList.
func scanPosition(row pgx.Row) (*models.Position, error) {
	var (
		pos          models.Position
		id           int64
		gamePhase    string
		positionType string
		quality      string
	)

	err := row.Scan(
		&id, &pos.FEN, &pos.Turn, &pos.FullmoveNumber, &pos.HalfmoveClock,
		&pos.CastlingRights, &pos.EnPassant,
		&pos.MoveHistory, &pos.LastMove,
		&pos.EngineDepth, &pos.AnalysisTime, &pos.Evaluation,
		&pos.MaterialAnalysis, &pos.MobilityAnalysis, &pos.KingSafetyAnalysis,
		&pos.CenterControlAnalysis, &pos.PawnStructureAnalysis,
		&pos.PieceDevelopmentAnalysis, &pos.ComprehensiveAnalysis,
		&pos.VariationAnalysis, &pos.LearningInsights, &pos.VisualizationData,
		&pos.Classification, &gamePhase, &pos.DifficultyRating,
		&pos.Themes, &positionType, &pos.SourceType,
		&pos.Title, &pos.Description, &pos.SolutionMoves,
		&pos.Timestamp, &quality,
	)
	if err != nil {
		return nil, err
	}

	pos.ID = &id
	pos.GamePhase = models.GamePhase(gamePhase)
	pos.PositionType = models.PositionType(positionType)
	pos.Quality = models.QualityTier(quality)

	return &pos, nil
}

// scanMoves drains a moves result set ordered by rank.
func scanMoves(rows pgx.Rows) ([]models.Move, error) {
	moves := []models.Move{}

	for rows.Next() {
		var m models.Move

		err := rows.Scan(
			&m.SAN, &m.UCI, &m.Score, &m.Depth, &m.CentipawnLoss,
			&m.Classification, &m.PrincipalVariation, &m.Tactics,
			&m.PositionImpact, &m.MLEvaluation,
			&m.MoveComplexity, &m.StrategicValue, &m.Rank,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning move: %w", err)
		}

		moves = append(moves, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading moves: %w", err)
	}

	return moves, nil
}
