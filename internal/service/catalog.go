package service

import (
	"context"
	"fmt"

	"github.com/chesskeep/chesskeep/internal/domain"
	"github.com/chesskeep/chesskeep/internal/models"
)

// catalogStore is the read surface consumed by CatalogService.
type catalogStore interface {
	CountPositions(ctx context.Context) (int64, error)
	GetPositionByFEN(ctx context.Context, fen string) (*models.Position, error)
}

type gameCountStore interface {
	CountGames(ctx context.Context) (int64, error)
}

// Compile-time check: *CatalogService must satisfy domain.CatalogService.
var _ domain.CatalogService = (*CatalogService)(nil)

// CatalogService implements domain.CatalogService.
type CatalogService struct {
	positions catalogStore
	games     gameCountStore
}

// NewCatalogService creates a CatalogService.
func NewCatalogService(positions catalogStore, games gameCountStore) *CatalogService {
	return &CatalogService{positions: positions, games: games}
}

// Counts returns the stored catalog size.
func (s *CatalogService) Counts(ctx context.Context) (*models.CatalogCounts, error) {
	positions, err := s.positions.CountPositions(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting positions: %w", err)
	}

	games, err := s.games.CountGames(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting games: %w", err)
	}

	return &models.CatalogCounts{Positions: positions, Games: games}, nil
}

// PositionByFEN fetches one catalog position with its candidate moves.
func (s *CatalogService) PositionByFEN(ctx context.Context, fen string) (*models.Position, error) {
	return s.positions.GetPositionByFEN(ctx, fen)
}
