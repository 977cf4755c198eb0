package service

import (
	"context"
	"encoding/json"

	"github.com/chesskeep/chesskeep/internal/models"
)

// mockPositionStore implements positionStore with recordable behavior.
type mockPositionStore struct {
	loadFunc  func(ctx context.Context, positions []models.Position) (models.BatchResult, error)
	loadCalls int
	lastBatch []models.Position
}

func (m *mockPositionStore) LoadPositions(ctx context.Context, positions []models.Position) (models.BatchResult, error) {
	m.loadCalls++
	m.lastBatch = positions

	if m.loadFunc != nil {
		return m.loadFunc(ctx, positions)
	}

	return models.BatchResult{Loaded: len(positions)}, nil
}

// mockGameStore implements gameStore with recordable behavior.
type mockGameStore struct {
	insertFunc  func(ctx context.Context, games []models.Game) (models.BatchResult, error)
	insertCalls int
	lastBatch   []models.Game
}

func (m *mockGameStore) InsertGames(ctx context.Context, games []models.Game) (models.BatchResult, error) {
	m.insertCalls++
	m.lastBatch = games

	if m.insertFunc != nil {
		return m.insertFunc(ctx, games)
	}

	return models.BatchResult{Loaded: len(games)}, nil
}

// mockNotifier records broadcast events.
type mockNotifier struct {
	events   []string
	payloads []json.RawMessage
}

func (m *mockNotifier) BroadcastEvent(eventType string, data json.RawMessage) {
	m.events = append(m.events, eventType)
	m.payloads = append(m.payloads, data)
}
