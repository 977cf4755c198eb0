package api

import (
	"context"
	"io"

	"github.com/chesskeep/chesskeep/internal/models"
)

// Importer defines the ingestion operations used by ImportHandler.
type Importer interface {
	ImportPositions(ctx context.Context, r io.Reader, sourceName string) (*models.LoadResult, error)
	ImportGames(ctx context.Context, r io.Reader, sourceName string, maxGames int) (*models.GameLoadResult, error)
	PreviewGames(ctx context.Context, content string) (*models.GamePreview, error)
}

// Catalog defines the read operations used by CatalogHandler.
type Catalog interface {
	Counts(ctx context.Context) (*models.CatalogCounts, error)
	PositionByFEN(ctx context.Context, fen string) (*models.Position, error)
}
