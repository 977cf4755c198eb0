// Package models defines data types for the chess position and game catalog.
package models

// Blob holds a semi-structured analysis section exactly as the upstream
// analysis tool produced it. The internal schema is deliberately not
// modelled; blobs are persisted verbatim as JSONB.
type Blob map[string]any

// GamePhase classifies a position by stage of the game.
type GamePhase string

// Game phases.
const (
	PhaseOpening    GamePhase = "opening"
	PhaseMiddlegame GamePhase = "middlegame"
	PhaseEndgame    GamePhase = "endgame"
)

// PositionType classifies the training character of a position.
type PositionType string

// Position types, in classification priority order.
const (
	TypeTactical   PositionType = "tactical"
	TypeEndgame    PositionType = "endgame"
	TypeOpening    PositionType = "opening"
	TypePositional PositionType = "positional"
)

// QualityTier grades how complete a position's analysis payload is.
type QualityTier string

// Quality tiers.
const (
	QualityBasic    QualityTier = "basic"
	QualityStandard QualityTier = "standard"
	QualityHigh     QualityTier = "high"
)

// Position is a canonical, validated analysis position. The FEN string is a
// unique natural key; ID is either the explicit id carried by the source
// record or assigned by the store on first insert.
type Position struct {
	ID             *int64 `json:"id,omitempty"`
	FEN            string `json:"fen"`
	Turn           string `json:"turn"`
	FullmoveNumber int    `json:"fullmove_number"`
	HalfmoveClock  int    `json:"halfmove_clock"`
	CastlingRights string `json:"castling_rights,omitempty"`
	EnPassant      string `json:"en_passant,omitempty"`

	MoveHistory Blob `json:"move_history,omitempty"`
	LastMove    Blob `json:"last_move,omitempty"`

	EngineDepth  int     `json:"engine_depth"`
	AnalysisTime float64 `json:"analysis_time"`
	Evaluation   Blob    `json:"evaluation,omitempty"`

	MaterialAnalysis         Blob `json:"material_analysis,omitempty"`
	MobilityAnalysis         Blob `json:"mobility_analysis,omitempty"`
	KingSafetyAnalysis       Blob `json:"king_safety_analysis,omitempty"`
	CenterControlAnalysis    Blob `json:"center_control_analysis,omitempty"`
	PawnStructureAnalysis    Blob `json:"pawn_structure_analysis,omitempty"`
	PieceDevelopmentAnalysis Blob `json:"piece_development_analysis,omitempty"`
	ComprehensiveAnalysis    Blob `json:"comprehensive_analysis,omitempty"`
	VariationAnalysis        Blob `json:"variation_analysis,omitempty"`
	LearningInsights         Blob `json:"learning_insights,omitempty"`
	VisualizationData        Blob `json:"visualization_data,omitempty"`

	Classification   []string     `json:"position_classification"`
	GamePhase        GamePhase    `json:"game_phase"`
	DifficultyRating int          `json:"difficulty_rating"`
	Themes           []string     `json:"themes"`
	PositionType     PositionType `json:"position_type"`

	SourceType    string   `json:"source_type"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	SolutionMoves []string `json:"solution_moves"`

	Timestamp string      `json:"timestamp,omitempty"`
	Quality   QualityTier `json:"processing_quality"`

	// Moves are owned by this position; they are destroyed and rebuilt
	// together with every position overwrite.
	Moves []Move `json:"top_moves"`
}

// Move is one ranked engine candidate move for a Position.
type Move struct {
	SAN                string   `json:"move"`
	UCI                string   `json:"uci"`
	Score              int      `json:"score"`
	Depth              int      `json:"depth"`
	CentipawnLoss      int      `json:"centipawn_loss"`
	Classification     string   `json:"classification"`
	PrincipalVariation string   `json:"pv"`
	Tactics            []string `json:"tactics"`
	PositionImpact     Blob     `json:"position_impact,omitempty"`
	MLEvaluation       Blob     `json:"ml_evaluation,omitempty"`
	MoveComplexity     float64  `json:"move_complexity"`
	StrategicValue     float64  `json:"strategic_value"`

	// Rank is 1-based and equals the move's position in the source's
	// candidate-move array; unique per position.
	Rank int `json:"rank"`
}
