package client

import (
	"encoding/json"
	"time"
)

// HealthResponse is the liveness check payload.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Database      string  `json:"database"`
	WSClients     int     `json:"ws_clients"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// CatalogCounts reports stored catalog row counts.
type CatalogCounts struct {
	Positions int64 `json:"positions"`
	Games     int64 `json:"games"`
}

// ProcessingStats summarises the JSONL normalization pass for one batch.
// Errors and Warnings carry at most the first ten messages; the counts
// are always exact.
type ProcessingStats struct {
	ProcessedCount int       `json:"processed_count"`
	ValidCount     int       `json:"valid_count"`
	ErrorCount     int       `json:"error_count"`
	WarningCount   int       `json:"warning_count"`
	SuccessRate    float64   `json:"success_rate"`
	Errors         []string  `json:"errors"`
	Warnings       []string  `json:"warnings"`
	ProcessedAt    time.Time `json:"processing_timestamp"`
}

// LoadResult is the outcome of a position import.
type LoadResult struct {
	Success           bool            `json:"success"`
	PositionsLoaded   int             `json:"positions_loaded"`
	PositionsUpdated  int             `json:"positions_updated"`
	ErrorsEncountered int             `json:"errors_encountered"`
	Stats             ProcessingStats `json:"processor_stats"`
	Error             string          `json:"error,omitempty"`
}

// GameLoadResult is the outcome of a game import.
type GameLoadResult struct {
	GamesStored    int `json:"games_stored"`
	Errors         int `json:"errors"`
	TotalProcessed int `json:"total_processed"`
}

// ValidationReport is the shallow pre-import PGN check.
type ValidationReport struct {
	Valid     bool   `json:"valid"`
	Message   string `json:"message"`
	GameCount int    `json:"game_count"`
}

// ResultDistribution tallies game outcomes in a PGN sample.
type ResultDistribution struct {
	WhiteWins int `json:"white_wins"`
	BlackWins int `json:"black_wins"`
	Draws     int `json:"draws"`
	Unknown   int `json:"unknown"`
}

// FileStatistics is the advisory pre-import preview for a PGN file.
type FileStatistics struct {
	TotalGames           int                `json:"total_games"`
	SampleSize           int                `json:"sample_size"`
	AvgMovesPerGame      float64            `json:"avg_moves_per_game"`
	MinMoves             int                `json:"min_moves"`
	MaxMoves             int                `json:"max_moves"`
	UniqueEvents         int                `json:"unique_events"`
	UniqueOpenings       int                `json:"unique_openings"`
	UniqueWhitePlayers   int                `json:"unique_white_players"`
	UniqueBlackPlayers   int                `json:"unique_black_players"`
	GeneratedPlayerNames int                `json:"generated_player_names"`
	PlayerNameQuality    float64            `json:"player_name_quality"`
	FileSizeKB           float64            `json:"file_size_kb"`
	EstimatedImportTime  string             `json:"estimated_import_time"`
	Results              ResultDistribution `json:"result_distribution"`

	AvgElo            int     `json:"avg_elo,omitempty"`
	MinElo            int     `json:"min_elo,omitempty"`
	MaxElo            int     `json:"max_elo,omitempty"`
	RatedGamesPercent float64 `json:"rated_games_percent,omitempty"`

	DateRange string `json:"date_range"`
	YearSpan  int    `json:"year_span,omitempty"`
}

// GamePreview bundles the shallow validation check with file statistics.
// Statistics is nil when the file holds no scannable games.
type GamePreview struct {
	Validation ValidationReport `json:"validation"`
	Statistics *FileStatistics  `json:"statistics,omitempty"`
}

// Move is one engine line attached to a stored position.
type Move struct {
	SAN                string  `json:"move"`
	UCI                string  `json:"uci"`
	Score              int     `json:"score"`
	Depth              int     `json:"depth"`
	CentipawnLoss      int     `json:"centipawn_loss"`
	Classification     string  `json:"classification"`
	PrincipalVariation string  `json:"pv"`
	MoveComplexity     float64 `json:"move_complexity"`
	StrategicValue     float64 `json:"strategic_value"`
	Rank               int     `json:"rank"`
}

// Position is a stored analysis record. Engine analysis payloads are kept
// as raw JSON; decode the ones you need.
type Position struct {
	ID             *int64 `json:"id,omitempty"`
	FEN            string `json:"fen"`
	Turn           string `json:"turn"`
	FullmoveNumber int    `json:"fullmove_number"`
	HalfmoveClock  int    `json:"halfmove_clock"`
	CastlingRights string `json:"castling_rights,omitempty"`
	EnPassant      string `json:"en_passant,omitempty"`

	EngineDepth  int             `json:"engine_depth"`
	AnalysisTime float64         `json:"analysis_time"`
	Evaluation   json.RawMessage `json:"evaluation,omitempty"`

	Classification   []string `json:"position_classification"`
	GamePhase        string   `json:"game_phase"`
	DifficultyRating int      `json:"difficulty_rating"`
	Themes           []string `json:"themes"`
	PositionType     string   `json:"position_type"`

	SourceType    string   `json:"source_type"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	SolutionMoves []string `json:"solution_moves"`

	Quality string `json:"processing_quality"`

	Moves []Move `json:"top_moves"`
}
