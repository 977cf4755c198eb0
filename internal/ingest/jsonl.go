package ingest

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/chesskeep/chesskeep/internal/models"
	"github.com/chesskeep/chesskeep/internal/rules"
)

// maxLineBytes bounds a single JSONL record. Comprehensive analysis payloads
// run wide, so the default bufio limit is far too small.
const maxLineBytes = 16 << 20

// Processor drives the normalizer over a newline-delimited record stream
// with per-record fault isolation: a malformed line never aborts processing
// of subsequent lines.
type Processor struct {
	normalizer *Normalizer
	log        *logrus.Logger
}

// NewProcessor creates a Processor backed by the given rules provider.
func NewProcessor(provider rules.Provider, log *logrus.Logger) *Processor {
	return &Processor{
		normalizer: NewNormalizer(provider, log),
		log:        log,
	}
}

// Process reads JSONL content and returns the normalized positions plus
// batch statistics. Blank lines are skipped and do not count as processed.
func (p *Processor) Process(r io.Reader) ([]models.Position, models.ProcessingStats) {
	batch := &Batch{}
	positions := []models.Position{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNum := 0

	for scanner.Scan() {
		lineNum++

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		batch.Processed++

		var record map[string]any
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			batch.ErrorCount++
			batch.Errorf("JSON error on line %d: %v", lineNum, err)

			continue
		}

		pos := p.normalizer.Normalize(record, lineNum, batch)
		if pos == nil {
			batch.ErrorCount++
			p.log.WithField("line", lineNum).Warn("position validation failed")

			continue
		}

		positions = append(positions, *pos)
		batch.Valid++
	}

	if err := scanner.Err(); err != nil {
		batch.ErrorCount++
		batch.Errorf("read error after line %d: %v", lineNum, err)
	}

	p.log.WithFields(logrus.Fields{
		"processed": batch.Processed,
		"valid":     batch.Valid,
		"errors":    batch.ErrorCount,
	}).Info("JSONL processing complete")

	return positions, batch.Stats()
}
