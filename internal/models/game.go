package models

import "time"

// Ply is one half-move record produced by replaying a game.
type Ply struct {
	SAN        string `json:"san"`
	UCI        string `json:"uci"`
	MoveNumber int    `json:"move_number"`
	Turn       string `json:"turn"`
	Index      int    `json:"ply"`
}

// GameMetadata captures header fields and provenance that do not get their
// own column, including the pre-fallback player names.
type GameMetadata struct {
	Termination    string    `json:"termination,omitempty"`
	Annotator      string    `json:"annotator,omitempty"`
	PlyCount       string    `json:"ply_count,omitempty"`
	OriginalWhite  string    `json:"original_white,omitempty"`
	OriginalBlack  string    `json:"original_black,omitempty"`
	WhiteCorrected bool      `json:"white_corrected"`
	BlackCorrected bool      `json:"black_corrected"`
	ImportedAt     time.Time `json:"imported_at"`
	SourceFile     string    `json:"source_file,omitempty"`
}

// Game is a self-contained imported game record. It never references the
// position catalog; games are inserted once and not deduplicated.
type Game struct {
	ID        int64  `json:"id,omitempty"`
	Source    string `json:"pgn_source"`
	GameIndex int    `json:"game_index"`

	// Player names are always non-empty after extraction; placeholder
	// source values never reach the store as-is.
	WhitePlayer string `json:"white_player"`
	BlackPlayer string `json:"black_player"`
	WhiteElo    *int   `json:"white_elo,omitempty"`
	BlackElo    *int   `json:"black_elo,omitempty"`

	Result      string `json:"result"`
	Date        string `json:"date"`
	Event       string `json:"event"`
	Site        string `json:"site"`
	Round       string `json:"round"`
	Opening     string `json:"opening"`
	ECOCode     string `json:"eco_code"`
	TimeControl string `json:"time_control"`

	TotalMoves int      `json:"total_moves"`
	Moves      []Ply    `json:"moves"`
	Positions  []string `json:"positions"`

	LengthCategory string   `json:"game_length_category,omitempty"`
	OpeningMoves   []string `json:"opening_moves,omitempty"`
	Winner         string   `json:"winner,omitempty"`

	Metadata GameMetadata `json:"metadata"`
}

// WinnerFromResult maps a PGN Result tag to a winner label.
func WinnerFromResult(result string) string {
	switch result {
	case "1-0":
		return "white"
	case "0-1":
		return "black"
	case "1/2-1/2":
		return "draw"
	default:
		return "unknown"
	}
}

// ValidResult reports whether a Result tag is one of the four legal values.
func ValidResult(result string) bool {
	switch result {
	case "1-0", "0-1", "1/2-1/2", "*":
		return true
	}

	return false
}
