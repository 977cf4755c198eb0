// Package service implements business logic for the chess catalog.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chesskeep/chesskeep/internal/domain"
	"github.com/chesskeep/chesskeep/internal/ingest"
	"github.com/chesskeep/chesskeep/internal/metrics"
	"github.com/chesskeep/chesskeep/internal/models"
	"github.com/chesskeep/chesskeep/internal/pgn"
	"github.com/chesskeep/chesskeep/internal/rules"
)

// positionStore is the minimal store interface consumed by ImportService.
// Defined at the consumer (per project convention) so the store package
// depends on no service types.
type positionStore interface {
	LoadPositions(ctx context.Context, positions []models.Position) (models.BatchResult, error)
}

// gameStore is the game half of the store surface ImportService consumes.
type gameStore interface {
	InsertGames(ctx context.Context, games []models.Game) (models.BatchResult, error)
}

// progressNotifier pushes import lifecycle events to connected clients.
type progressNotifier interface {
	BroadcastEvent(eventType string, data json.RawMessage)
}

// Compile-time check: *ImportService must satisfy domain.ImportService.
var _ domain.ImportService = (*ImportService)(nil)

// ImportService implements domain.ImportService.
type ImportService struct {
	positions positionStore
	games     gameStore
	processor *ingest.Processor
	loader    *pgn.Loader
	notifier  progressNotifier
	log       *logrus.Logger
}

// NewImportService creates an ImportService. notifier may be nil when no
// event channel exists (CLI usage).
func NewImportService(
	positions positionStore,
	games gameStore,
	provider rules.Provider,
	notifier progressNotifier,
	log *logrus.Logger,
) *ImportService {
	return &ImportService{
		positions: positions,
		games:     games,
		processor: ingest.NewProcessor(provider, log),
		loader:    pgn.NewLoader(provider, log),
		notifier:  notifier,
		log:       log,
	}
}

// ImportPositions normalizes a JSONL stream and upserts the valid records in
// one batch. Per-record failures are reported in the result, never as an
// error; an error means the batch as a whole could not be persisted.
func (s *ImportService) ImportPositions(ctx context.Context, r io.Reader, sourceName string) (*models.LoadResult, error) {
	start := time.Now()

	positions, stats := s.processor.Process(r)

	for i := range positions {
		if positions[i].SourceType == "" {
			positions[i].SourceType = "jsonl_import"
		}
	}

	result := &models.LoadResult{Stats: stats}

	if len(positions) == 0 {
		result.ErrorsEncountered = stats.ErrorCount
		result.Error = "no valid positions found in input"

		return result, nil
	}

	batch, err := s.positions.LoadPositions(ctx, positions)
	if err != nil {
		metrics.ErrorsTotal.WithLabelValues("import_positions").Inc()

		return nil, fmt.Errorf("importing positions from %s: %w", sourceName, err)
	}

	result.Success = true
	result.PositionsLoaded = batch.Loaded
	result.PositionsUpdated = batch.Updated
	result.ErrorsEncountered = stats.ErrorCount + len(batch.RecordErrors)

	metrics.PositionsLoaded.Add(float64(batch.Loaded))
	metrics.PositionsUpdated.Add(float64(batch.Updated))
	metrics.ImportErrors.WithLabelValues("positions").Add(float64(result.ErrorsEncountered))
	metrics.ImportDuration.WithLabelValues("positions").Observe(time.Since(start).Seconds())

	s.broadcast("import.positions.completed", map[string]any{
		"source":  sourceName,
		"loaded":  batch.Loaded,
		"updated": batch.Updated,
		"errors":  result.ErrorsEncountered,
	})

	s.log.WithFields(logrus.Fields{
		"source":   sourceName,
		"loaded":   batch.Loaded,
		"updated":  batch.Updated,
		"errors":   result.ErrorsEncountered,
		"duration": time.Since(start),
	}).Info("position import finished")

	return result, nil
}

// ImportGames extracts games from a PGN stream and stores them append-only.
// maxGames of 0 means unlimited.
func (s *ImportService) ImportGames(ctx context.Context, r io.Reader, sourceName string, maxGames int) (*models.GameLoadResult, error) {
	start := time.Now()

	progress := func(processed, succeeded, failed int) {
		s.broadcast("import.games.progress", map[string]any{
			"source":    sourceName,
			"processed": processed,
			"succeeded": succeeded,
			"failed":    failed,
		})
	}

	games, loadStats := s.loader.Load(r, maxGames, progress)

	for i := range games {
		games[i].Source = sourceName
		games[i].Metadata.SourceFile = sourceName
	}

	if len(games) == 0 {
		if loadStats.Processed == 0 {
			return nil, models.ErrNoGames
		}

		return &models.GameLoadResult{
			Errors:         loadStats.Failed,
			TotalProcessed: loadStats.Processed,
		}, nil
	}

	batch, err := s.games.InsertGames(ctx, games)
	if err != nil {
		metrics.ErrorsTotal.WithLabelValues("import_games").Inc()

		return nil, fmt.Errorf("importing games from %s: %w", sourceName, err)
	}

	result := &models.GameLoadResult{
		GamesStored:    batch.Loaded,
		Errors:         loadStats.Failed + len(batch.RecordErrors),
		TotalProcessed: loadStats.Processed,
	}

	metrics.GamesStored.Add(float64(batch.Loaded))
	metrics.ImportErrors.WithLabelValues("games").Add(float64(result.Errors))
	metrics.ImportDuration.WithLabelValues("games").Observe(time.Since(start).Seconds())

	s.broadcast("import.games.completed", map[string]any{
		"source":    sourceName,
		"stored":    batch.Loaded,
		"errors":    result.Errors,
		"processed": loadStats.Processed,
	})

	s.log.WithFields(logrus.Fields{
		"source":   sourceName,
		"stored":   batch.Loaded,
		"errors":   result.Errors,
		"duration": time.Since(start),
	}).Info("game import finished")

	return result, nil
}

// PreviewGames runs the shallow validation check plus file statistics without
// writing anything.
func (s *ImportService) PreviewGames(ctx context.Context, content string) (*models.GamePreview, error) {
	preview := &models.GamePreview{
		Validation: s.loader.Validate(content),
	}

	stats, err := s.loader.FileStats(content)
	if err != nil {
		if errors.Is(err, models.ErrNoGames) {
			return preview, nil
		}

		return nil, fmt.Errorf("computing file statistics: %w", err)
	}

	preview.Statistics = &stats

	return preview, nil
}

func (s *ImportService) broadcast(eventType string, payload map[string]any) {
	if s.notifier == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	s.notifier.BroadcastEvent(eventType, data)
}
