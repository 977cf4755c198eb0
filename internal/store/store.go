// Package store provides focused, single-concern data access stores
// for the chesskeep catalog.
//
// Each store owns one domain (positions, games) and embeds shared
// helpers (Pool, logger) via the Base struct. Stores never import each
// other — shared logic lives in this file or in scan.go.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sirupsen/logrus"

	"github.com/chesskeep/chesskeep/internal/dbpool"
	"github.com/chesskeep/chesskeep/internal/models"
)

const defaultQueryTimeout = 30 * time.Second

// batchQueryTimeout bounds a whole batch load, which holds one transaction
// open across every record in the file.
const batchQueryTimeout = 10 * time.Minute

// Base contains shared dependencies for all stores.
// Embed this in each store struct.
type Base struct {
	Pool *dbpool.Pool
	Log  *logrus.Logger
}

// withTimeout creates a context with the default query timeout.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultQueryTimeout)
}

// withBatchTimeout creates a context sized for batch imports.
func withBatchTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, batchQueryTimeout)
}

// beginTx starts a read-write transaction.
func (b *Base) beginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := b.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}

	return tx, nil
}

// blobVal prepares a Blob for a nullable JSONB parameter. Nil blobs become
// SQL NULL so absent analysis sections stay distinguishable from empty ones.
func blobVal(b models.Blob) ([]byte, error) {
	if b == nil {
		return nil, nil
	}

	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("marshalling JSONB blob: %w", err)
	}

	return data, nil
}

// listVal prepares a string slice for a NOT NULL JSONB array column.
// Nil slices become the empty array.
func listVal(list []string) ([]byte, error) {
	if list == nil {
		list = []string{}
	}

	data, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("marshalling JSONB list: %w", err)
	}

	return data, nil
}
