package pgn

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chesskeep/chesskeep/internal/models"
)

// statsSample bounds how many games the preview inspects in detail.
const statsSample = 50

// importRate is the assumed throughput, in games per second, behind the
// import-time estimate shown to callers.
const importRate = 150.0

// FileStats computes a preview of a PGN file from a bounded sample of its
// games. Aggregates describing the whole file (game count, size) are exact;
// the per-game figures come from the sample.
func (l *Loader) FileStats(content string) (models.FileStatistics, error) {
	total := strings.Count(content, "[Event ")
	if total == 0 {
		return models.FileStatistics{}, models.ErrNoGames
	}

	var (
		moveCounts   []int
		whitePlayers = map[string]struct{}{}
		blackPlayers = map[string]struct{}{}
		events       = map[string]struct{}{}
		openings     = map[string]struct{}{}
		years        = map[int]struct{}{}
		elos         []int
		generated    int
		results      models.ResultDistribution
		sampled      int
	)

	scanner := l.rules.Games(strings.NewReader(content))

	for sampled < statsSample && scanner.Scan() {
		game, err := scanner.Game()
		if err != nil {
			// The sample covers parseable games only.
			continue
		}

		headers := game.Headers()
		gameNum := sampled + 1

		moveCounts = append(moveCounts, game.MoveCount())

		white := ExtractPlayerName(headers, "White", gameNum)
		black := ExtractPlayerName(headers, "Black", gameNum)
		whitePlayers[white] = struct{}{}
		blackPlayers[black] = struct{}{}

		// A game whose name resolution bottomed out carries a "Player"
		// fallback in the extracted name.
		if strings.Contains(white, "Player") || strings.Contains(black, "Player") {
			generated++
		}

		if event := headers["Event"]; event != "" && event != "Unknown" {
			events[event] = struct{}{}
		}

		if opening := headers["Opening"]; opening != "" {
			openings[opening] = struct{}{}
		}

		if year, ok := dateYear(headers["Date"]); ok {
			years[year] = struct{}{}
		}

		whiteElo := parseElo(headers["WhiteElo"])
		blackElo := parseElo(headers["BlackElo"])

		if whiteElo != nil {
			elos = append(elos, *whiteElo)
		}

		if blackElo != nil {
			elos = append(elos, *blackElo)
		}

		switch headers["Result"] {
		case "1-0":
			results.WhiteWins++
		case "0-1":
			results.BlackWins++
		case "1/2-1/2":
			results.Draws++
		default:
			results.Unknown++
		}

		sampled++
	}

	if sampled == 0 {
		return models.FileStatistics{}, models.ErrNoGames
	}

	stats := models.FileStatistics{
		TotalGames:           total,
		SampleSize:           sampled,
		FileSizeKB:           round1(float64(len(content)) / 1024),
		UniqueWhitePlayers:   len(whitePlayers),
		UniqueBlackPlayers:   len(blackPlayers),
		UniqueEvents:         len(events),
		UniqueOpenings:       len(openings),
		GeneratedPlayerNames: generated,
		Results:              results,
		EstimatedImportTime:  EstimateImportTime(total),
	}

	nameSlots := sampled * 2
	stats.PlayerNameQuality = round1(float64(nameSlots-generated) / float64(nameSlots) * 100)

	sum := 0
	stats.MinMoves = moveCounts[0]
	stats.MaxMoves = moveCounts[0]

	for _, n := range moveCounts {
		sum += n
		if n < stats.MinMoves {
			stats.MinMoves = n
		}

		if n > stats.MaxMoves {
			stats.MaxMoves = n
		}
	}

	stats.AvgMovesPerGame = round1(float64(sum) / float64(sampled))

	if len(elos) > 0 {
		eloSum := 0
		minElo, maxElo := elos[0], elos[0]

		for _, e := range elos {
			eloSum += e
			if e < minElo {
				minElo = e
			}

			if e > maxElo {
				maxElo = e
			}
		}

		stats.AvgElo = eloSum / len(elos)
		stats.MinElo = minElo
		stats.MaxElo = maxElo
		stats.RatedGamesPercent = round1(float64(len(elos)) / float64(sampled*2) * 100)
	}

	stats.DateRange = "Unknown"

	if len(years) > 0 {
		sorted := make([]int, 0, len(years))
		for y := range years {
			sorted = append(sorted, y)
		}

		sort.Ints(sorted)

		first, last := sorted[0], sorted[len(sorted)-1]
		stats.DateRange = fmt.Sprintf("%d - %d", first, last)
		stats.YearSpan = last - first + 1
	}

	return stats, nil
}

// EstimateImportTime renders a human-readable duration for importing
// gameCount games at the assumed throughput.
func EstimateImportTime(gameCount int) string {
	seconds := float64(gameCount) / importRate

	switch {
	case seconds < 60:
		return fmt.Sprintf("%.0f seconds", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%.1f minutes", seconds/60)
	default:
		return fmt.Sprintf("%.1f hours", seconds/3600)
	}
}

func dateYear(date string) (int, bool) {
	parts := strings.Split(date, ".")
	if len(parts) == 0 {
		return 0, false
	}

	year := 0
	for _, r := range parts[0] {
		if r < '0' || r > '9' {
			return 0, false
		}

		year = year*10 + int(r-'0')
	}

	if year < 1800 || year > 2030 {
		return 0, false
	}

	return year, true
}

func round1(v float64) float64 {
	if v < 0 {
		return float64(int(v*10-0.5)) / 10
	}

	return float64(int(v*10+0.5)) / 10
}
