package models

import "time"

// maxDiagnostics caps the error/warning lists surfaced to callers.
// Counts are always exact; only the message lists are truncated.
const maxDiagnostics = 10

// ProcessingStats summarises one JSONL normalization pass.
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

// CapDiagnostics truncates the error and warning lists to the surfaced
// maximum. Call once, after the batch is complete.
func (s *ProcessingStats) CapDiagnostics() {
	if len(s.Errors) > maxDiagnostics {
		s.Errors = s.Errors[:maxDiagnostics]
	}

	if len(s.Warnings) > maxDiagnostics {
		s.Warnings = s.Warnings[:maxDiagnostics]
	}
}

// LoadResult is the outcome of persisting one JSONL batch.
type LoadResult struct {
	Success           bool            `json:"success"`
	PositionsLoaded   int             `json:"positions_loaded"`
	PositionsUpdated  int             `json:"positions_updated"`
	ErrorsEncountered int             `json:"errors_encountered"`
	Stats             ProcessingStats `json:"processor_stats"`
	Error             string          `json:"error,omitempty"`
}

// BatchResult reports the outcome of one store-level batch write.
type BatchResult struct {
	Loaded       int
	Updated      int
	RecordErrors []string
}

// GameLoadResult is the outcome of persisting one PGN batch.
type GameLoadResult struct {
	GamesStored    int `json:"games_stored"`
	Errors         int `json:"errors"`
	TotalProcessed int `json:"total_processed"`
}

// ResultDistribution tallies game outcomes in a PGN sample.
type ResultDistribution struct {
	WhiteWins int `json:"white_wins"`
	BlackWins int `json:"black_wins"`
	Draws     int `json:"draws"`
	Unknown   int `json:"unknown"`
}

// FileStatistics is the advisory pre-import preview for a PGN file, computed
// from a bounded sample of games. It is display material, not a contract.
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

	AvgElo            int    `json:"avg_elo,omitempty"`
	MinElo            int    `json:"min_elo,omitempty"`
	MaxElo            int    `json:"max_elo,omitempty"`
	RatedGamesPercent float64 `json:"rated_games_percent,omitempty"`

	DateRange string `json:"date_range"`
	YearSpan  int    `json:"year_span,omitempty"`
}

// ValidationReport is the result of the shallow pre-import PGN check.
type ValidationReport struct {
	Valid     bool   `json:"valid"`
	Message   string `json:"message"`
	GameCount int    `json:"game_count"`
}

// CatalogCounts reports the stored catalog size.
type CatalogCounts struct {
	Positions int64 `json:"positions"`
	Games     int64 `json:"games"`
}

// GamePreview bundles the shallow validation check with file statistics.
// Statistics is nil when the file holds no scannable games.
type GamePreview struct {
	Validation ValidationReport `json:"validation"`
	Statistics *FileStatistics  `json:"statistics,omitempty"`
}
