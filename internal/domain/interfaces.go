// Package domain defines the canonical service interfaces shared across API
// layers (REST, CLI). Consumers should depend on these interfaces rather than
// re-declaring equivalent ones.
package domain

import (
	"context"
	"io"

	"github.com/chesskeep/chesskeep/internal/models"
)

// ImportService defines the ingestion operations.
type ImportService interface {
	ImportPositions(ctx context.Context, r io.Reader, sourceName string) (*models.LoadResult, error)
	ImportGames(ctx context.Context, r io.Reader, sourceName string, maxGames int) (*models.GameLoadResult, error)
	PreviewGames(ctx context.Context, content string) (*models.GamePreview, error)
}

// CatalogService defines read operations over the stored catalog.
type CatalogService interface {
	Counts(ctx context.Context) (*models.CatalogCounts, error)
	PositionByFEN(ctx context.Context, fen string) (*models.Position, error)
}
