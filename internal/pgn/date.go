package pgn

import (
	"fmt"
	"strconv"
	"strings"
)

// Year sanity bounds for PGN date tags.
const (
	minGameYear = 1800
	maxGameYear = 2030
)

// NormalizeDate normalizes a PGN Date tag (YYYY.MM.DD with "?" for unknown
// parts). An unknown year makes the whole date "Unknown"; unknown month or
// day default to 01. Out-of-range or unparseable dates pass through as-is.
func NormalizeDate(date string) string {
	if date == "" || date == "??" {
		return "Unknown"
	}

	parts := strings.Split(date, ".")
	if len(parts) != 3 {
		return date
	}

	if strings.Contains(parts[0], "?") {
		return "Unknown"
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil || year < minGameYear || year > maxGameYear {
		return date
	}

	month := partOrDefault(parts[1], 1, 12)
	day := partOrDefault(parts[2], 1, 31)

	return fmt.Sprintf("%04d.%02d.%02d", year, month, day)
}

func partOrDefault(part string, def, max int) int {
	if strings.Contains(part, "?") {
		return def
	}

	n, err := strconv.Atoi(part)
	if err != nil || n < 1 || n > max {
		return def
	}

	return n
}
