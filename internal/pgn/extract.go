package pgn

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chesskeep/chesskeep/internal/models"
	"github.com/chesskeep/chesskeep/internal/rules"
)

// maxPlies bounds the replay loop against corrupt or unbounded move records.
// Reaching the limit truncates the game but keeps it.
const maxPlies = 500

// Game length categories, in plies.
const (
	shortGamePlies  = 20
	mediumGamePlies = 40
	openingSample   = 10
)

// Extractor turns one parsed game into a Game record: resolved player
// identities, a replayed ply list with the full position trajectory, and
// derived summary characteristics.
type Extractor struct {
	log *logrus.Logger
}

// NewExtractor creates an Extractor.
func NewExtractor(log *logrus.Logger) *Extractor {
	return &Extractor{log: log}
}

// Extract builds a Game from a parsed game and its index in the batch.
// A non-nil error means the game is unrecoverable and should be skipped;
// the batch continues either way.
func (e *Extractor) Extract(game rules.Game, index int) (g *models.Game, err error) {
	defer func() {
		if r := recover(); r != nil {
			g = nil
			err = fmt.Errorf("replaying game %d: %v", index, r)
		}
	}()

	headers := game.Headers()

	originalWhite := headers["White"]
	originalBlack := headers["Black"]
	white := ExtractPlayerName(headers, "White", index+1)
	black := ExtractPlayerName(headers, "Black", index+1)

	result := headers["Result"]
	if result == "" {
		result = "*"
	}

	out := &models.Game{
		GameIndex:   index,
		WhitePlayer: white,
		BlackPlayer: black,
		WhiteElo:    parseElo(headers["WhiteElo"]),
		BlackElo:    parseElo(headers["BlackElo"]),
		Result:      result,
		Date:        NormalizeDate(headers["Date"]),
		Event:       headerOr(headers, "Event", "Unknown"),
		Site:        headerOr(headers, "Site", "Unknown"),
		Round:       headerOr(headers, "Round", "Unknown"),
		Opening:     headers["Opening"],
		ECOCode:     headers["ECO"],
		TimeControl: headers["TimeControl"],
		Metadata: models.GameMetadata{
			Termination:    headers["Termination"],
			Annotator:      headers["Annotator"],
			PlyCount:       headers["PlyCount"],
			OriginalWhite:  originalWhite,
			OriginalBlack:  originalBlack,
			WhiteCorrected: originalWhite != white,
			BlackCorrected: originalBlack != black,
			ImportedAt:     time.Now().UTC(),
		},
	}

	plies := game.MoveCount()
	if plies > maxPlies {
		e.log.WithFields(logrus.Fields{
			"game":  index,
			"plies": plies,
		}).Warn("ply limit reached, truncating game")

		plies = maxPlies
	}

	out.Positions = make([]string, 0, plies+1)
	out.Positions = append(out.Positions, game.FENAt(0))
	out.Moves = make([]models.Ply, 0, plies)

	for i := 0; i < plies; i++ {
		san, uci := game.Notation(i)
		out.Moves = append(out.Moves, models.Ply{
			SAN:        san,
			UCI:        uci,
			MoveNumber: game.FullmoveNumber(i),
			Turn:       game.SideToMove(i),
			Index:      i + 1,
		})
		out.Positions = append(out.Positions, game.FENAt(i+1))
	}

	out.TotalMoves = len(out.Moves)
	applyCharacteristics(out)

	return out, nil
}

// applyCharacteristics derives the summary fields for a replayed game.
func applyCharacteristics(g *models.Game) {
	if g.TotalMoves == 0 {
		return
	}

	switch {
	case g.TotalMoves < shortGamePlies:
		g.LengthCategory = "short"
	case g.TotalMoves < mediumGamePlies:
		g.LengthCategory = "medium"
	default:
		g.LengthCategory = "long"
	}

	sample := g.TotalMoves
	if sample > openingSample {
		sample = openingSample
	}

	g.OpeningMoves = make([]string, 0, sample)
	for _, ply := range g.Moves[:sample] {
		g.OpeningMoves = append(g.OpeningMoves, ply.SAN)
	}

	g.Winner = models.WinnerFromResult(g.Result)
}

// parseElo accepts only all-digit positive ratings; anything else is absent.
func parseElo(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	for _, r := range raw {
		if r < '0' || r > '9' {
			return nil
		}
	}

	elo, err := strconv.Atoi(raw)
	if err != nil || elo <= 0 {
		return nil
	}

	return &elo
}

func headerOr(headers map[string]string, key, def string) string {
	if v := headers[key]; v != "" {
		return v
	}

	return def
}
