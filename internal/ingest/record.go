package ingest

import (
	"strconv"

	"github.com/chesskeep/chesskeep/internal/models"
)

// Raw analysis records are duck-typed JSON objects with deeply optional
// nested structure. These helpers read them defensively; a wrong shape
// always degrades to the default rather than failing the record.

func recString(record map[string]any, key string) (string, bool) {
	v, ok := record[key]
	if !ok {
		return "", false
	}

	s, ok := v.(string)

	return s, ok
}

func recMap(record map[string]any, key string) models.Blob {
	v, ok := record[key]
	if !ok {
		return nil
	}

	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}

	return models.Blob(m)
}

func recList(record map[string]any, key string) ([]any, bool) {
	v, ok := record[key]
	if !ok {
		return nil, false
	}

	l, ok := v.([]any)

	return l, ok
}

// asInt coerces JSON numbers and numeric strings to int.
func asInt(v any, def int) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i
		}
	}

	return def
}

// asFloat coerces JSON numbers and numeric strings to float64.
func asFloat(v any, def float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f
		}
	}

	return def
}

func asString(v any) string {
	s, _ := v.(string)

	return s
}

// asStringList flattens a JSON array into its string elements, dropping
// anything that is not a string.
func asStringList(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(raw))

	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}

	return out
}

// recMoves returns the candidate-move array as raw objects, skipping
// entries that are not objects or lack a move field.
func recMoves(record map[string]any) []map[string]any {
	raw, ok := recList(record, "top_moves")
	if !ok {
		return nil
	}

	moves := make([]map[string]any, 0, len(raw))

	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		if _, ok := m["move"]; !ok {
			continue
		}

		moves = append(moves, m)
	}

	return moves
}
