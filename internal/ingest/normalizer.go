// Package ingest validates and normalizes raw chess analysis records into
// canonical Position and Move entities.
package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/chesskeep/chesskeep/internal/models"
	"github.com/chesskeep/chesskeep/internal/rules"
)

// Difficulty estimation constants: a position starts at the base rating and
// earns a capped bonus per tactical motif across its candidate moves.
const (
	difficultyDefault    = 1200
	difficultyBase       = 1000
	difficultyPerTactic  = 50
	difficultyBonusCap   = 600
	difficultyRangeLow   = 800
	difficultyRangeHigh  = 2600
	solutionMoveLimit    = 3
	openingPieceCount    = 20
	middlegamePieceCount = 12
)

// qualitySections are the rich-analysis sections that count toward the
// quality tier, one point each.
var qualitySections = []string{
	"material", "mobility", "king_safety", "center_control",
	"pawn_structure", "comprehensive_analysis", "variation_analysis",
	"learning_insights", "visualization_data",
}

// Normalizer converts one raw analysis record into a canonical Position.
// It is stateless per record; batch counters live in the Batch it is handed.
type Normalizer struct {
	rules rules.Provider
	log   *logrus.Logger
}

// NewNormalizer creates a Normalizer backed by the given rules provider.
func NewNormalizer(provider rules.Provider, log *logrus.Logger) *Normalizer {
	return &Normalizer{rules: provider, log: log}
}

// Normalize validates and normalizes a decoded record. On rejection it
// appends a line-scoped error to the batch and returns nil.
func (n *Normalizer) Normalize(record map[string]any, lineNum int, batch *Batch) *models.Position {
	fen, board, err := n.validate(record)
	if err != nil {
		batch.Errorf("line %d: %v", lineNum, err)

		return nil
	}

	turn, ok := recString(record, "turn")
	if !ok || turn == "" {
		turn = board.SideToMove()
	}

	rawMoves := recMoves(record)
	moves := normalizeMoves(rawMoves)
	themes := deriveThemes(record, rawMoves)
	phase := gamePhase(record, board)

	pos := &models.Position{
		FEN:            fen,
		Turn:           turn,
		FullmoveNumber: intOr(record, "fullmove_number", board.FullmoveNumber()),
		HalfmoveClock:  intOr(record, "halfmove_clock", board.HalfmoveClock()),
		CastlingRights: stringOr(record, "castling_rights", board.CastlingRights()),
		EnPassant:      stringOr(record, "en_passant", board.EnPassantSquare()),

		MoveHistory: recMap(record, "move_history"),
		LastMove:    recMap(record, "last_move"),

		EngineDepth:  engineDepth(record, rawMoves),
		AnalysisTime: asFloat(record["time"], 0),
		Evaluation:   evaluation(record, rawMoves),

		MaterialAnalysis:         recMap(record, "material"),
		MobilityAnalysis:         recMap(record, "mobility"),
		KingSafetyAnalysis:       recMap(record, "king_safety"),
		CenterControlAnalysis:    recMap(record, "center_control"),
		PawnStructureAnalysis:    recMap(record, "pawn_structure"),
		PieceDevelopmentAnalysis: recMap(record, "piece_development"),
		ComprehensiveAnalysis:    recMap(record, "comprehensive_analysis"),
		VariationAnalysis:        recMap(record, "variation_analysis"),
		LearningInsights:         recMap(record, "learning_insights"),
		VisualizationData:        recMap(record, "visualization_data"),

		Classification:   classificationTags(record),
		GamePhase:        phase,
		DifficultyRating: difficultyRating(record, rawMoves),
		Themes:           themes,
		PositionType:     positionType(themes, phase),

		SourceType:    stringOr(record, "source_type", "upload"),
		Title:         title(record, themes, phase, lineNum),
		Description:   description(record),
		SolutionMoves: solutionMoves(rawMoves),

		Timestamp: asString(record["timestamp"]),
		Quality:   qualityTier(record, rawMoves),

		Moves: moves,
	}

	if id, present := record["id"]; present {
		v := int64(asInt(id, 0))
		if v > 0 {
			pos.ID = &v
		}
	}

	if pos.DifficultyRating < difficultyRangeLow || pos.DifficultyRating > difficultyRangeHigh {
		batch.Warnf("line %d: difficulty rating %d outside normal range", lineNum, pos.DifficultyRating)
	}

	return pos
}

// validate applies the hard rejection rules to a decoded record. The
// returned error is or wraps one of the models sentinel errors.
func (n *Normalizer) validate(record map[string]any) (string, rules.Board, error) {
	if len(record) == 0 {
		return "", nil, models.ErrEmptyRecord
	}

	fen, ok := recString(record, "fen")
	if !ok || fen == "" {
		return "", nil, models.ErrMissingFEN
	}

	board, err := n.rules.ParseBoard(fen)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", models.ErrInvalidFEN, err)
	}

	// An explicit themes value must be list-shaped; the derived set is
	// used either way.
	if raw, present := record["themes"]; present {
		if _, isList := raw.([]any); !isList {
			return "", nil, models.ErrBadThemes
		}
	}

	return fen, board, nil
}

// normalizeMoves builds ranked Move records from the raw candidate-move
// array, preserving all present fields with defaults.
func normalizeMoves(rawMoves []map[string]any) []models.Move {
	moves := make([]models.Move, 0, len(rawMoves))

	for i, raw := range rawMoves {
		move := models.Move{
			SAN:                asString(raw["move"]),
			UCI:                asString(raw["uci"]),
			Score:              asInt(raw["score"], 0),
			Depth:              asInt(raw["depth"], 0),
			CentipawnLoss:      asInt(raw["centipawn_loss"], 0),
			Classification:     "unknown",
			PrincipalVariation: asString(raw["pv"]),
			Tactics:            asStringList(raw["tactics"]),
			PositionImpact:     recMap(raw, "position_impact"),
			MLEvaluation:       recMap(raw, "ml_evaluation"),
			MoveComplexity:     round3(asFloat(raw["move_complexity"], 0)),
			StrategicValue:     round3(asFloat(raw["strategic_value"], 0)),
			Rank:               i + 1,
		}

		if c, ok := raw["classification"].(string); ok && c != "" {
			move.Classification = c
		}

		if move.Tactics == nil {
			move.Tactics = []string{}
		}

		moves = append(moves, move)
	}

	return moves
}

// engineDepth prefers the record's top-level depth, then the first candidate
// move's depth.
func engineDepth(record map[string]any, rawMoves []map[string]any) int {
	if v, present := record["depth"]; present {
		return asInt(v, 0)
	}

	if len(rawMoves) > 0 {
		if v, present := rawMoves[0]["depth"]; present {
			return asInt(v, 0)
		}
	}

	return 0
}

// evaluation uses the record's evaluation object when present, else
// synthesizes one from the first candidate move's score.
func evaluation(record map[string]any, rawMoves []map[string]any) models.Blob {
	if ev := recMap(record, "evaluation"); ev != nil {
		return ev
	}

	if len(rawMoves) > 0 {
		if score, present := rawMoves[0]["score"]; present {
			return models.Blob{
				"score": score,
				"depth": rawMoves[0]["depth"],
			}
		}
	}

	return nil
}

func gamePhase(record map[string]any, board rules.Board) models.GamePhase {
	if v, ok := recString(record, "game_phase"); ok && v != "" {
		return models.GamePhase(v)
	}

	switch pieces := board.LivePieceCount(); {
	case pieces > openingPieceCount:
		return models.PhaseOpening
	case pieces > middlegamePieceCount:
		return models.PhaseMiddlegame
	default:
		return models.PhaseEndgame
	}
}

func difficultyRating(record map[string]any, rawMoves []map[string]any) int {
	if v, present := record["difficulty_rating"]; present {
		return asInt(v, difficultyDefault)
	}

	if len(rawMoves) > 0 {
		tactical := 0
		for _, raw := range rawMoves {
			tactical += len(asStringList(raw["tactics"]))
		}

		bonus := tactical * difficultyPerTactic
		if bonus > difficultyBonusCap {
			bonus = difficultyBonusCap
		}

		return difficultyBase + bonus
	}

	return difficultyDefault
}

func classificationTags(record map[string]any) []string {
	tags := asStringList(record["position_classification"])
	if tags == nil {
		tags = []string{}
	}

	return tags
}

// deriveThemes unions the explicit classification tags, every candidate
// move's tactics, and tactical/theme entries inside the comprehensive
// analysis blob. Insertion order is preserved, duplicates dropped.
func deriveThemes(record map[string]any, rawMoves []map[string]any) []string {
	themes := make([]string, 0, 8)
	seen := make(map[string]struct{})

	add := func(theme string) {
		if theme == "" {
			return
		}

		if _, dup := seen[theme]; dup {
			return
		}

		seen[theme] = struct{}{}
		themes = append(themes, theme)
	}

	for _, tag := range asStringList(record["position_classification"]) {
		add(tag)
	}

	for _, raw := range rawMoves {
		for _, tactic := range asStringList(raw["tactics"]) {
			add(tactic)
		}
	}

	for key, value := range recMap(record, "comprehensive_analysis") {
		lower := strings.ToLower(key)
		if !strings.Contains(lower, "tactical") && !strings.Contains(lower, "theme") {
			continue
		}

		switch v := value.(type) {
		case string:
			add(v)
		case []any:
			for _, entry := range asStringList(v) {
				add(entry)
			}
		}
	}

	return themes
}

// positionType picks the first matching type in priority order against the
// derived theme set, falling back to a mapping from the game phase.
func positionType(themes []string, phase models.GamePhase) models.PositionType {
	set := make(map[string]struct{}, len(themes))
	for _, t := range themes {
		set[t] = struct{}{}
	}

	for _, pt := range []models.PositionType{models.TypeTactical, models.TypeEndgame, models.TypeOpening, models.TypePositional} {
		if _, ok := set[string(pt)]; ok {
			return pt
		}
	}

	switch phase {
	case models.PhaseEndgame:
		return models.TypeEndgame
	case models.PhaseOpening:
		return models.TypeOpening
	default:
		return models.TypeTactical
	}
}

func title(record map[string]any, themes []string, phase models.GamePhase, lineNum int) string {
	if t, ok := recString(record, "title"); ok && t != "" {
		return t
	}

	if len(themes) > 0 {
		theme := titleCase(strings.ReplaceAll(themes[0], "_", " "))

		return titleCase(string(phase)) + " - " + theme
	}

	return titleCase(string(phase)) + " Position #" + strconv.Itoa(lineNum)
}

func description(record map[string]any) string {
	if d, ok := recString(record, "description"); ok && d != "" {
		return d
	}

	insights := recMap(record, "learning_insights")
	if universal, ok := insights["universal"].(map[string]any); ok {
		if assessment, ok := universal["position_assessment"].(string); ok && assessment != "" {
			return assessment
		}
	}

	return "Find the best move in this position."
}

// solutionMoves takes up to the first three candidate moves whose
// classification is excellent, good, or unset.
func solutionMoves(rawMoves []map[string]any) []string {
	solutions := []string{}

	for i, raw := range rawMoves {
		if i >= solutionMoveLimit {
			break
		}

		classification := strings.ToLower(asString(raw["classification"]))
		if classification == "excellent" || classification == "good" || classification == "" {
			if san := asString(raw["move"]); san != "" {
				solutions = append(solutions, san)
			}
		}
	}

	return solutions
}

// qualityTier scores one point per populated rich-analysis section and two
// for a detailed candidate-move list.
func qualityTier(record map[string]any, rawMoves []map[string]any) models.QualityTier {
	score := 0

	for _, section := range qualitySections {
		if populated(record[section]) {
			score++
		}
	}

	if len(rawMoves) >= 3 {
		score += 2
	}

	switch {
	case score >= 8:
		return models.QualityHigh
	case score >= 5:
		return models.QualityStandard
	default:
		return models.QualityBasic
	}
}

func populated(v any) bool {
	switch value := v.(type) {
	case nil:
		return false
	case map[string]any:
		return len(value) > 0
	case []any:
		return len(value) > 0
	case string:
		return value != ""
	case bool:
		return value
	case float64:
		return value != 0
	default:
		return true
	}
}

func intOr(record map[string]any, key string, def int) int {
	if v, present := record[key]; present {
		return asInt(v, def)
	}

	return def
}

func stringOr(record map[string]any, key string, def string) string {
	if v, ok := recString(record, key); ok && v != "" {
		return v
	}

	return def
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}

	return strings.Join(words, " ")
}

