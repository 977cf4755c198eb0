package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/chesskeep/chesskeep/internal/models"
	"github.com/chesskeep/chesskeep/internal/rules"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

const samplePGN = `[Event "Test Open"]
[Site "Test City"]
[Date "2024.01.15"]
[Round "1"]
[White "Smith, John"]
[Black "Jones, Mary"]
[Result "1-0"]

1. e4 e5 2. Nf3 Nc6 3. Bb5 1-0

[Event "Test Open"]
[Site "Test City"]
[Date "2024.01.16"]
[Round "2"]
[White "Jones, Mary"]
[Black "Smith, John"]
[Result "1/2-1/2"]

1. d4 d5 2. c4 e6 1/2-1/2
`

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	return log
}

func newTestService(positions *mockPositionStore, games *mockGameStore, notifier *mockNotifier) *ImportService {
	var n progressNotifier
	if notifier != nil {
		n = notifier
	}

	return NewImportService(positions, games, rules.NewProvider(), n, testLogger())
}

func TestImportPositions_ValidBatch(t *testing.T) {
	positions := &mockPositionStore{
		loadFunc: func(_ context.Context, batch []models.Position) (models.BatchResult, error) {
			return models.BatchResult{Loaded: 1, Updated: 1}, nil
		},
	}
	notifier := &mockNotifier{}
	svc := newTestService(positions, &mockGameStore{}, notifier)

	input := `{"fen": "` + startFEN + `", "engine_depth": 20}` + "\n" +
		`{"fen": "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1", "engine_depth": 18}` + "\n" +
		"{not json}\n"

	result, err := svc.ImportPositions(context.Background(), strings.NewReader(input), "batch.jsonl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Success {
		t.Error("expected success")
	}

	if result.PositionsLoaded != 1 || result.PositionsUpdated != 1 {
		t.Errorf("expected 1 loaded / 1 updated, got %d/%d", result.PositionsLoaded, result.PositionsUpdated)
	}

	// The malformed line is counted, not fatal.
	if result.ErrorsEncountered != 1 {
		t.Errorf("expected 1 error encountered, got %d", result.ErrorsEncountered)
	}

	if positions.loadCalls != 1 {
		t.Errorf("expected 1 store call, got %d", positions.loadCalls)
	}

	if len(positions.lastBatch) != 2 {
		t.Fatalf("expected 2 positions passed to store, got %d", len(positions.lastBatch))
	}

	if positions.lastBatch[0].SourceType != "jsonl_import" {
		t.Errorf("expected default source type, got %q", positions.lastBatch[0].SourceType)
	}

	if len(notifier.events) != 1 || notifier.events[0] != "import.positions.completed" {
		t.Errorf("expected completion event, got %v", notifier.events)
	}
}

func TestImportPositions_NoValidRecords(t *testing.T) {
	positions := &mockPositionStore{}
	svc := newTestService(positions, &mockGameStore{}, nil)

	result, err := svc.ImportPositions(context.Background(), strings.NewReader("{\"themes\": []}\n"), "bad.jsonl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Success {
		t.Error("expected failure result")
	}

	if result.Error == "" {
		t.Error("expected error message in result")
	}

	if positions.loadCalls != 0 {
		t.Errorf("store should not be called for an empty batch, got %d calls", positions.loadCalls)
	}
}

func TestImportPositions_StoreFailure(t *testing.T) {
	positions := &mockPositionStore{
		loadFunc: func(_ context.Context, _ []models.Position) (models.BatchResult, error) {
			return models.BatchResult{}, errors.New("connection refused")
		},
	}
	svc := newTestService(positions, &mockGameStore{}, nil)

	input := `{"fen": "` + startFEN + `"}` + "\n"

	_, err := svc.ImportPositions(context.Background(), strings.NewReader(input), "batch.jsonl")
	if err == nil {
		t.Fatal("expected error when the store fails")
	}
}

func TestImportGames_StoresWithSource(t *testing.T) {
	games := &mockGameStore{}
	notifier := &mockNotifier{}
	svc := newTestService(&mockPositionStore{}, games, notifier)

	result, err := svc.ImportGames(context.Background(), strings.NewReader(samplePGN), "games.pgn", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.GamesStored != 2 {
		t.Errorf("expected 2 games stored, got %d", result.GamesStored)
	}

	if result.TotalProcessed != 2 {
		t.Errorf("expected 2 processed, got %d", result.TotalProcessed)
	}

	if games.insertCalls != 1 {
		t.Fatalf("expected 1 store call, got %d", games.insertCalls)
	}

	for _, g := range games.lastBatch {
		if g.Source != "games.pgn" {
			t.Errorf("expected source games.pgn, got %q", g.Source)
		}

		if g.Metadata.SourceFile != "games.pgn" {
			t.Errorf("expected metadata source file, got %q", g.Metadata.SourceFile)
		}
	}

	if len(notifier.events) == 0 || notifier.events[len(notifier.events)-1] != "import.games.completed" {
		t.Errorf("expected completion event, got %v", notifier.events)
	}
}

func TestImportGames_MaxGamesLimit(t *testing.T) {
	games := &mockGameStore{}
	svc := newTestService(&mockPositionStore{}, games, nil)

	result, err := svc.ImportGames(context.Background(), strings.NewReader(samplePGN), "games.pgn", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.GamesStored != 1 {
		t.Errorf("expected 1 game stored with limit, got %d", result.GamesStored)
	}
}

func TestImportGames_EmptyInput(t *testing.T) {
	svc := newTestService(&mockPositionStore{}, &mockGameStore{}, nil)

	_, err := svc.ImportGames(context.Background(), strings.NewReader(""), "empty.pgn", 0)
	if !errors.Is(err, models.ErrNoGames) {
		t.Errorf("expected ErrNoGames, got %v", err)
	}
}

func TestPreviewGames_ValidFile(t *testing.T) {
	svc := newTestService(&mockPositionStore{}, &mockGameStore{}, nil)

	preview, err := svc.PreviewGames(context.Background(), samplePGN)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !preview.Validation.Valid {
		t.Errorf("expected valid file, got %q", preview.Validation.Message)
	}

	if preview.Validation.GameCount != 2 {
		t.Errorf("expected 2 games counted, got %d", preview.Validation.GameCount)
	}

	if preview.Statistics == nil {
		t.Fatal("expected statistics for a scannable file")
	}

	if preview.Statistics.TotalGames != 2 {
		t.Errorf("expected 2 total games, got %d", preview.Statistics.TotalGames)
	}

	if preview.Statistics.Results.WhiteWins != 1 || preview.Statistics.Results.Draws != 1 {
		t.Errorf("unexpected result distribution: %+v", preview.Statistics.Results)
	}
}

func TestPreviewGames_NoGames(t *testing.T) {
	svc := newTestService(&mockPositionStore{}, &mockGameStore{}, nil)

	preview, err := svc.PreviewGames(context.Background(), "not a pgn file")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if preview.Validation.Valid {
		t.Error("expected invalid report")
	}

	if preview.Statistics != nil {
		t.Error("expected nil statistics for an unscannable file")
	}
}
