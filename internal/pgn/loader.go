package pgn

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/chesskeep/chesskeep/internal/models"
	"github.com/chesskeep/chesskeep/internal/rules"
)

// progressInterval is how many games pass between progress signals.
const progressInterval = 100

// validationSample is how many games the shallow pre-import check inspects.
const validationSample = 10

// ProgressFunc receives periodic progress during a batch load. It is an
// advisory side channel for the caller; there is no contract beyond counts.
type ProgressFunc func(processed, succeeded, failed int)

// LoadStats summarises one batch load.
type LoadStats struct {
	Processed       int
	Succeeded       int
	Failed          int
	NameCorrections int
}

// Loader iterates games from a PGN text stream, extracting each one with
// per-game fault tolerance: a single game's failure is counted and the batch
// continues.
type Loader struct {
	rules     rules.Provider
	extractor *Extractor
	log       *logrus.Logger
}

// NewLoader creates a Loader backed by the given rules provider.
func NewLoader(provider rules.Provider, log *logrus.Logger) *Loader {
	return &Loader{
		rules:     provider,
		extractor: NewExtractor(log),
		log:       log,
	}
}

// Load reads games from r up to maxGames (0 for unlimited) and returns the
// extracted records. progress may be nil.
func (l *Loader) Load(r io.Reader, maxGames int, progress ProgressFunc) ([]models.Game, LoadStats) {
	games := []models.Game{}
	stats := LoadStats{}

	scanner := l.rules.Games(r)

	for scanner.Scan() {
		if maxGames > 0 && stats.Processed >= maxGames {
			break
		}

		stats.Processed++

		parsed, err := scanner.Game()

		var game *models.Game
		if err == nil {
			game, err = l.extractor.Extract(parsed, stats.Processed-1)
		}

		if err != nil {
			stats.Failed++
			l.log.WithError(err).WithField("game", stats.Processed).Warn("game extraction failed")
		} else {
			stats.Succeeded++

			if game.Metadata.WhiteCorrected || game.Metadata.BlackCorrected {
				stats.NameCorrections++
			}

			games = append(games, *game)
		}

		if stats.Processed%progressInterval == 0 {
			l.log.WithFields(logrus.Fields{
				"processed":  stats.Processed,
				"successful": stats.Succeeded,
				"failed":     stats.Failed,
			}).Info("PGN import progress")

			if progress != nil {
				progress(stats.Processed, stats.Succeeded, stats.Failed)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		// A read error ends the scan; games extracted so far are kept.
		stats.Failed++
		l.log.WithError(err).WithField("game", stats.Processed+1).Warn("PGN scan ended early")
	}

	l.log.WithFields(logrus.Fields{
		"processed":        stats.Processed,
		"successful":       stats.Succeeded,
		"failed":           stats.Failed,
		"name_corrections": stats.NameCorrections,
	}).Info("PGN loading complete")

	return games, stats
}

// Validate performs the shallow pre-import check: it inspects the first few
// games for result-tag and player-name problems and counts the file's games
// cheaply by Event-tag occurrences.
func (l *Loader) Validate(content string) models.ValidationReport {
	var (
		errs       []string
		nameIssues int
		validated  int
		parsed     int
	)

	scanner := l.rules.Games(strings.NewReader(content))

	for validated < validationSample && scanner.Scan() {
		gameNum := validated + 1
		validated++

		game, err := scanner.Game()
		if err != nil {
			errs = append(errs, fmt.Sprintf("Game %d: %v", gameNum, err))

			continue
		}

		parsed++
		headers := game.Headers()

		white := ExtractPlayerName(headers, "White", gameNum)
		black := ExtractPlayerName(headers, "Black", gameNum)

		if white == numberedName("White", gameNum) || black == numberedName("Black", gameNum) {
			nameIssues++
		}

		result := headers["Result"]
		if result == "" {
			result = "*"
		}

		if !models.ValidResult(result) {
			errs = append(errs, fmt.Sprintf("Game %d: invalid result %q", gameNum, result))
		}
	}

	if err := scanner.Err(); err != nil && validated == 0 {
		return models.ValidationReport{
			Valid:   false,
			Message: fmt.Sprintf("Validation failed: %v", err),
		}
	}

	if parsed == 0 {
		return models.ValidationReport{
			Valid:   false,
			Message: "No valid chess games found in PGN file",
		}
	}

	total := strings.Count(content, "[Event ")

	var parts []string
	if len(errs) > 0 {
		parts = append(parts, fmt.Sprintf("found issues in %d games: %s", len(errs), strings.Join(errs, "; ")))
	}

	if nameIssues > 0 {
		parts = append(parts, fmt.Sprintf("player name issues in %d games", nameIssues))
	}

	message := fmt.Sprintf("All %d validated games are valid", validated)
	if len(parts) > 0 {
		message = "Validation completed with warnings: " + strings.Join(parts, "; ")
	}

	return models.ValidationReport{
		Valid:     true,
		Message:   message,
		GameCount: total,
	}
}
