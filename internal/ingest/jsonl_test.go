package ingest

import (
	"math"
	"strings"
	"testing"

	"github.com/chesskeep/chesskeep/internal/rules"
)

func TestProcessMixedBatch(t *testing.T) {
	p := NewProcessor(rules.NewProvider(), testLogger())

	input := strings.Join([]string{
		`{"fen": "` + startFEN + `"}`,
		"",
		"{not json",
		`{"fen": "8/8/4k3/8/8/4K3/4P3/8 w - - 0 50"}`,
		`{"depth": 20}`,
		"",
	}, "\n")

	positions, stats := p.Process(strings.NewReader(input))

	if len(positions) != 2 {
		t.Fatalf("positions: got %d, want 2", len(positions))
	}
	if stats.ProcessedCount != 4 {
		t.Errorf("ProcessedCount: got %d, want 4 (blank lines do not count)", stats.ProcessedCount)
	}
	if stats.ValidCount != 2 {
		t.Errorf("ValidCount: got %d, want 2", stats.ValidCount)
	}
	if stats.ErrorCount != 2 {
		t.Errorf("ErrorCount: got %d, want 2", stats.ErrorCount)
	}
	if math.Abs(stats.SuccessRate-50.0) > 0.001 {
		t.Errorf("SuccessRate: got %v, want 50", stats.SuccessRate)
	}

	foundJSONErr, foundFENErr := false, false
	for _, e := range stats.Errors {
		if strings.Contains(e, "JSON error on line 3") {
			foundJSONErr = true
		}
		if strings.Contains(e, "missing FEN") {
			foundFENErr = true
		}
	}
	if !foundJSONErr || !foundFENErr {
		t.Errorf("diagnostics missing expected entries: %v", stats.Errors)
	}
}

func TestProcessEmptyInput(t *testing.T) {
	p := NewProcessor(rules.NewProvider(), testLogger())

	positions, stats := p.Process(strings.NewReader("\n\n  \n"))

	if len(positions) != 0 {
		t.Errorf("positions: got %d, want 0", len(positions))
	}
	if stats.ProcessedCount != 0 || stats.SuccessRate != 0 {
		t.Errorf("stats: %+v", stats)
	}
}

func TestProcessCapsDiagnostics(t *testing.T) {
	p := NewProcessor(rules.NewProvider(), testLogger())

	var sb strings.Builder
	for i := 0; i < 25; i++ {
		sb.WriteString("{broken\n")
	}

	_, stats := p.Process(strings.NewReader(sb.String()))

	if stats.ErrorCount != 25 {
		t.Errorf("ErrorCount: got %d, want 25 (counts stay exact)", stats.ErrorCount)
	}
	if len(stats.Errors) != 10 {
		t.Errorf("Errors: got %d messages, want the capped 10", len(stats.Errors))
	}
}
