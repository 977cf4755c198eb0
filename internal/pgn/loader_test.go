package pgn

import (
	"strings"
	"testing"

	"github.com/chesskeep/chesskeep/internal/rules"
)

const twoGamePGN = samplePGN + `
[Event "Spring Open"]
[Site "Berlin GER"]
[Date "2023.04.13"]
[Round "2"]
[White "mcdonald, ronald"]
[Black "GM Magnus Carlsen Jr."]
[Result "1/2-1/2"]

1. d4 d5 2. c4 e6 1/2-1/2
`

func newTestLoader() *Loader {
	return NewLoader(rules.NewProvider(), testLogger())
}

func TestLoad(t *testing.T) {
	l := newTestLoader()

	games, stats := l.Load(strings.NewReader(twoGamePGN), 0, nil)

	if len(games) != 2 {
		t.Fatalf("games: got %d, want 2", len(games))
	}
	if stats.Processed != 2 || stats.Succeeded != 2 || stats.Failed != 0 {
		t.Errorf("stats: %+v", stats)
	}

	// Both games needed their player names cleaned.
	if stats.NameCorrections != 2 {
		t.Errorf("NameCorrections: got %d, want 2", stats.NameCorrections)
	}

	if games[0].GameIndex != 0 || games[1].GameIndex != 1 {
		t.Errorf("game indices: %d, %d", games[0].GameIndex, games[1].GameIndex)
	}
	if games[1].WhitePlayer != "McDonald, Ronald" {
		t.Errorf("second game white: got %q", games[1].WhitePlayer)
	}
}

func TestLoadSkipsCorruptGame(t *testing.T) {
	pgn := `[Event "Spring Open"]
[White "Alice Smith"]
[Black "Bob Jones"]
[Result "1-0"]

1. e4 e5 2. Nf3 Nc6 1-0

[Event "Mid Open"]
[White "Eve Adams"]
[Black "Frank Burns"]
[Result "1-0"]

1. Zz9 e5 1-0

[Event "Autumn Open"]
[White "Carol Clark"]
[Black "Dan Drake"]
[Result "0-1"]

1. d4 d5 0-1
`

	l := newTestLoader()

	games, stats := l.Load(strings.NewReader(pgn), 0, nil)

	if stats.Processed != 3 || stats.Succeeded != 2 || stats.Failed != 1 {
		t.Fatalf("stats: %+v", stats)
	}

	// Games on either side of the corrupt one survive.
	if len(games) != 2 {
		t.Fatalf("games: got %d, want 2", len(games))
	}
	if games[0].WhitePlayer != "Alice Smith" {
		t.Errorf("first game white: got %q", games[0].WhitePlayer)
	}
	if games[1].WhitePlayer != "Carol Clark" {
		t.Errorf("last game white: got %q", games[1].WhitePlayer)
	}
}

func TestLoadMaxGames(t *testing.T) {
	l := newTestLoader()

	games, stats := l.Load(strings.NewReader(twoGamePGN), 1, nil)

	if len(games) != 1 {
		t.Fatalf("games: got %d, want 1", len(games))
	}
	if stats.Processed != 1 {
		t.Errorf("Processed: got %d, want 1", stats.Processed)
	}
}

func TestLoadProgressCadence(t *testing.T) {
	game := `[Event "Bulk"]
[White "Alice"]
[Black "Bob"]
[Result "*"]

1. e4 e5 *

`

	l := newTestLoader()

	var calls []int
	progress := func(processed, succeeded, failed int) {
		calls = append(calls, processed)
	}

	games, stats := l.Load(strings.NewReader(strings.Repeat(game, 150)), 0, progress)

	if len(games) != 150 || stats.Succeeded != 150 {
		t.Fatalf("games %d, stats %+v", len(games), stats)
	}
	if len(calls) != 1 || calls[0] != 100 {
		t.Errorf("progress calls: got %v, want one signal at 100", calls)
	}
}

func TestValidate(t *testing.T) {
	l := newTestLoader()

	report := l.Validate(twoGamePGN)

	if !report.Valid {
		t.Fatalf("report invalid: %q", report.Message)
	}
	if report.GameCount != 2 {
		t.Errorf("GameCount: got %d, want 2", report.GameCount)
	}
	if report.Message != "All 2 validated games are valid" {
		t.Errorf("Message: got %q", report.Message)
	}
}

func TestValidateNameIssues(t *testing.T) {
	// Nothing recoverable in any header; name resolution bottoms out at the
	// numbered fallback, which Validate flags.
	pgn := `[Event "Game"]
[White "?"]
[Black "?"]
[Result "*"]

1. e4 e5 *
`

	l := newTestLoader()

	report := l.Validate(pgn)

	if !report.Valid {
		t.Fatalf("name issues are warnings, not failures: %q", report.Message)
	}
	if !strings.Contains(report.Message, "player name issues in 1 games") {
		t.Errorf("Message: got %q", report.Message)
	}
}

func TestValidateEmptyFile(t *testing.T) {
	l := newTestLoader()

	report := l.Validate("")

	if report.Valid {
		t.Fatal("empty input should not validate")
	}
	if report.GameCount != 0 {
		t.Errorf("GameCount: got %d, want 0", report.GameCount)
	}
}
