package rules

import (
	"strings"
	"testing"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func TestParseBoardStartPosition(t *testing.T) {
	board, err := NewProvider().ParseBoard(startFEN)
	if err != nil {
		t.Fatalf("ParseBoard() error: %v", err)
	}

	if board.FEN() != startFEN {
		t.Errorf("FEN: got %q", board.FEN())
	}
	if board.SideToMove() != "white" {
		t.Errorf("SideToMove: got %q", board.SideToMove())
	}
	if board.FullmoveNumber() != 1 {
		t.Errorf("FullmoveNumber: got %d", board.FullmoveNumber())
	}
	if board.HalfmoveClock() != 0 {
		t.Errorf("HalfmoveClock: got %d", board.HalfmoveClock())
	}
	if board.CastlingRights() != "KQkq" {
		t.Errorf("CastlingRights: got %q", board.CastlingRights())
	}
	if board.EnPassantSquare() != "" {
		t.Errorf("EnPassantSquare: got %q", board.EnPassantSquare())
	}
	if board.LivePieceCount() != 32 {
		t.Errorf("LivePieceCount: got %d", board.LivePieceCount())
	}
}

func TestParseBoardMidGame(t *testing.T) {
	fen := "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2"

	board, err := NewProvider().ParseBoard(fen)
	if err != nil {
		t.Fatalf("ParseBoard() error: %v", err)
	}

	if board.EnPassantSquare() != "d6" {
		t.Errorf("EnPassantSquare: got %q, want d6", board.EnPassantSquare())
	}
	if board.FullmoveNumber() != 2 {
		t.Errorf("FullmoveNumber: got %d, want 2", board.FullmoveNumber())
	}
}

func TestParseBoardBareKings(t *testing.T) {
	board, err := NewProvider().ParseBoard("8/8/4k3/8/8/4K3/8/8 w - - 0 60")
	if err != nil {
		t.Fatalf("ParseBoard() error: %v", err)
	}

	if board.LivePieceCount() != 2 {
		t.Errorf("LivePieceCount: got %d, want 2", board.LivePieceCount())
	}
	if board.CastlingRights() != "" {
		t.Errorf("CastlingRights: got %q, want empty", board.CastlingRights())
	}
}

func TestParseBoardInvalid(t *testing.T) {
	for _, fen := range []string{"", "not a fen", "rnbqkbnr/pppppppp w KQkq - 0 1"} {
		if _, err := NewProvider().ParseBoard(fen); err == nil {
			t.Errorf("ParseBoard(%q): expected error", fen)
		}
	}
}

func TestGameScanner(t *testing.T) {
	pgn := `[Event "Test Match"]
[White "Alice"]
[Black "Bob"]
[Result "0-1"]

1. e4 e5 2. Nf3 Nc6 0-1

[Event "Second"]
[Result "*"]

1. d4 *
`

	scanner := NewProvider().Games(strings.NewReader(pgn))

	if !scanner.Scan() {
		t.Fatalf("first Scan() failed: %v", scanner.Err())
	}

	game, err := scanner.Game()
	if err != nil {
		t.Fatalf("first game: %v", err)
	}

	if game.Header("Event") != "Test Match" {
		t.Errorf("Event: got %q", game.Header("Event"))
	}
	if game.Headers()["Result"] != "0-1" {
		t.Errorf("Result: got %q", game.Headers()["Result"])
	}
	if game.MoveCount() != 4 {
		t.Fatalf("MoveCount: got %d, want 4", game.MoveCount())
	}

	san, uci := game.Notation(0)
	if san != "e4" || uci != "e2e4" {
		t.Errorf("Notation(0): got %q %q", san, uci)
	}

	san, _ = game.Notation(2)
	if san != "Nf3" {
		t.Errorf("Notation(2): got %q", san)
	}

	if game.FENAt(0) != startFEN {
		t.Errorf("FENAt(0): got %q", game.FENAt(0))
	}
	if game.SideToMove(0) != "white" || game.SideToMove(1) != "black" {
		t.Errorf("SideToMove: %q, %q", game.SideToMove(0), game.SideToMove(1))
	}
	if game.FullmoveNumber(2) != 2 {
		t.Errorf("FullmoveNumber(2): got %d, want 2", game.FullmoveNumber(2))
	}

	// The final board index is one past the last ply.
	final := game.FENAt(game.MoveCount())
	if !strings.Contains(final, " w ") {
		t.Errorf("final position should be white to move: %q", final)
	}

	if !scanner.Scan() {
		t.Fatalf("second Scan() failed: %v", scanner.Err())
	}

	second, err := scanner.Game()
	if err != nil {
		t.Fatalf("second game: %v", err)
	}

	if second.Header("Event") != "Second" {
		t.Errorf("second game Event: got %q", second.Header("Event"))
	}
	if second.MoveCount() != 1 {
		t.Errorf("second game MoveCount: got %d", second.MoveCount())
	}

	if scanner.Scan() {
		t.Error("expected scan to end after two games")
	}
	if err := scanner.Err(); err != nil {
		t.Errorf("Err() after clean scan: %v", err)
	}
}

func TestGameScannerSkipsCorruptGame(t *testing.T) {
	pgn := `[Event "First"]
[Result "1-0"]

1. e4 e5 1-0

[Event "Broken"]
[Result "1-0"]

1. Zz9 e5 1-0

[Event "Third"]
[Result "0-1"]

1. d4 d5 0-1
`

	scanner := NewProvider().Games(strings.NewReader(pgn))

	if !scanner.Scan() {
		t.Fatalf("first Scan() failed: %v", scanner.Err())
	}
	if _, err := scanner.Game(); err != nil {
		t.Fatalf("first game: %v", err)
	}

	if !scanner.Scan() {
		t.Fatal("corrupt game should not end the scan")
	}

	game, err := scanner.Game()
	if err == nil {
		t.Fatal("expected a parse error for the corrupt game")
	}
	if game != nil {
		t.Errorf("corrupt game should yield no game, got %v", game)
	}

	if !scanner.Scan() {
		t.Fatalf("third Scan() failed: %v", scanner.Err())
	}

	third, err := scanner.Game()
	if err != nil {
		t.Fatalf("third game: %v", err)
	}
	if third.Header("Event") != "Third" {
		t.Errorf("third game Event: got %q", third.Header("Event"))
	}

	if scanner.Scan() {
		t.Error("expected scan to end after three games")
	}
	if err := scanner.Err(); err != nil {
		t.Errorf("Err() after scan: %v", err)
	}
}
