package ingest

import (
	"fmt"
	"time"

	"github.com/chesskeep/chesskeep/internal/models"
)

// Batch accumulates counters and diagnostics for one processing pass. It is
// an explicit value owned by the driving loop, never package state; the
// normalizer only appends to the batch it is handed.
type Batch struct {
	Processed  int
	Valid      int
	ErrorCount int
	Errors     []string
	Warnings   []string
}

// Errorf appends a formatted record-level error.
func (b *Batch) Errorf(format string, args ...any) {
	b.Errors = append(b.Errors, fmt.Sprintf(format, args...))
}

// Warnf appends a formatted record-level warning. Warnings never reject a
// record.
func (b *Batch) Warnf(format string, args ...any) {
	b.Warnings = append(b.Warnings, fmt.Sprintf(format, args...))
}

// Stats snapshots the batch into the caller-facing statistics object.
// The success rate is a percentage; an empty batch reports 0.
func (b *Batch) Stats() models.ProcessingStats {
	rate := 0.0
	if b.Processed > 0 {
		rate = float64(b.Valid) / float64(b.Processed) * 100
	}

	stats := models.ProcessingStats{
		ProcessedCount: b.Processed,
		ValidCount:     b.Valid,
		ErrorCount:     b.ErrorCount,
		WarningCount:   len(b.Warnings),
		SuccessRate:    rate,
		Errors:         append([]string(nil), b.Errors...),
		Warnings:       append([]string(nil), b.Warnings...),
		ProcessedAt:    time.Now().UTC(),
	}
	stats.CapDiagnostics()

	return stats
}
