// Package rules defines the chess-rules capability consumed by the ingestion
// pipeline. Board-state transitions, move legality, and notation all live
// behind these interfaces; the pipeline never implements chess rules itself.
package rules

import "io"

// Provider parses board encodings and iterates games from PGN streams.
type Provider interface {
	// ParseBoard validates a FEN string and returns a board view.
	// The returned error means the FEN is invalid.
	ParseBoard(fen string) (Board, error)

	// Games returns a scanner over the games in a PGN text stream.
	Games(r io.Reader) GameScanner
}

// Board is a read-only view of one parsed position.
type Board interface {
	FEN() string
	SideToMove() string // "white" or "black"
	FullmoveNumber() int
	HalfmoveClock() int
	CastlingRights() string // "KQkq" style; empty when no rights remain
	EnPassantSquare() string // algebraic square; empty when none
	LivePieceCount() int
}

// GameScanner iterates parsed games with per-game fault isolation: when a
// game fails to parse, Game returns the parse error for that game and the
// scan continues with the next one. Err reports a stream read error that
// ended the scan.
type GameScanner interface {
	Scan() bool
	Game() (Game, error)
	Err() error
}

// Game is one parsed game: its header tags plus a replayed move list.
// Ply indexes run 0..MoveCount-1; board index i is the position before
// ply i, so index MoveCount is the final position.
type Game interface {
	Header(key string) string
	Headers() map[string]string
	MoveCount() int
	Notation(i int) (san, uci string)
	FENAt(i int) string
	SideToMove(i int) string
	FullmoveNumber(i int) int
}
