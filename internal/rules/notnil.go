package rules

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/notnil/chess"
)

// maxGameBytes bounds a single line of raw PGN text; exported movetext is
// sometimes written on one long line.
const maxGameBytes = 1 << 20

// notnilProvider implements Provider on top of github.com/notnil/chess.
type notnilProvider struct{}

// NewProvider returns the production chess-rules provider.
func NewProvider() Provider {
	return notnilProvider{}
}

func (notnilProvider) ParseBoard(fen string) (Board, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("parsing FEN %q: %w", fen, err)
	}

	game := chess.NewGame(opt)

	return notnilBoard{pos: game.Position()}, nil
}

func (notnilProvider) Games(r io.Reader) GameScanner {
	lines := bufio.NewScanner(r)
	lines.Buffer(make([]byte, 0, 64*1024), maxGameBytes)

	return &notnilScanner{lines: lines}
}

type notnilBoard struct {
	pos *chess.Position
}

func (b notnilBoard) FEN() string { return b.pos.String() }

func (b notnilBoard) SideToMove() string {
	if b.pos.Turn() == chess.White {
		return "white"
	}

	return "black"
}

func (b notnilBoard) FullmoveNumber() int { return fenFullmove(b.pos.String()) }

func (b notnilBoard) HalfmoveClock() int { return b.pos.HalfMoveClock() }

func (b notnilBoard) CastlingRights() string {
	rights := b.pos.CastleRights().String()
	if rights == "-" {
		return ""
	}

	return rights
}

func (b notnilBoard) EnPassantSquare() string {
	sq := b.pos.EnPassantSquare()
	if sq == chess.NoSquare {
		return ""
	}

	return sq.String()
}

func (b notnilBoard) LivePieceCount() int {
	return len(b.pos.Board().SquareMap())
}

// notnilScanner splits the stream into raw per-game chunks on "[Event "
// header lines and parses each chunk on its own, so a corrupt game is
// reported for that game only and the scan keeps going.
type notnilScanner struct {
	lines    *bufio.Scanner
	pending  string
	buffered bool
	current  *notnilGame
	gameErr  error
}

func (s *notnilScanner) Scan() bool {
	s.current = nil
	s.gameErr = nil

	chunk, ok := s.nextChunk()
	if !ok {
		return false
	}

	opt, err := chess.PGN(strings.NewReader(chunk))
	if err != nil {
		s.gameErr = fmt.Errorf("parsing game: %w", err)

		return true
	}

	game := chess.NewGame(opt)

	headers := make(map[string]string)
	for _, tag := range game.TagPairs() {
		headers[tag.Key] = tag.Value
	}

	s.current = &notnilGame{
		headers:   headers,
		moves:     game.Moves(),
		positions: game.Positions(),
	}

	return true
}

// nextChunk accumulates lines up to the next "[Event " header or the end of
// the stream. Content before the first header is discarded.
func (s *notnilScanner) nextChunk() (string, bool) {
	var b strings.Builder

	if s.buffered {
		b.WriteString(s.pending)
		b.WriteByte('\n')
		s.buffered = false
	}

	for s.lines.Scan() {
		line := s.lines.Text()

		if strings.HasPrefix(line, "[Event ") {
			if b.Len() == 0 {
				b.WriteString(line)
				b.WriteByte('\n')

				continue
			}

			s.pending = line
			s.buffered = true

			return b.String(), true
		}

		if b.Len() == 0 {
			continue
		}

		b.WriteString(line)
		b.WriteByte('\n')
	}

	if b.Len() == 0 {
		return "", false
	}

	return b.String(), true
}

func (s *notnilScanner) Game() (Game, error) {
	if s.gameErr != nil {
		return nil, s.gameErr
	}

	return s.current, nil
}

func (s *notnilScanner) Err() error { return s.lines.Err() }

// notnilGame exposes a replayed game. positions always has one more entry
// than moves: positions[i] is the board before moves[i].
type notnilGame struct {
	headers   map[string]string
	moves     []*chess.Move
	positions []*chess.Position
}

func (g *notnilGame) Header(key string) string { return g.headers[key] }

func (g *notnilGame) Headers() map[string]string {
	out := make(map[string]string, len(g.headers))
	for k, v := range g.headers {
		out[k] = v
	}

	return out
}

func (g *notnilGame) MoveCount() int { return len(g.moves) }

func (g *notnilGame) Notation(i int) (string, string) {
	san := chess.AlgebraicNotation{}.Encode(g.positions[i], g.moves[i])
	uci := chess.UCINotation{}.Encode(g.positions[i], g.moves[i])

	return san, uci
}

func (g *notnilGame) FENAt(i int) string { return g.positions[i].String() }

func (g *notnilGame) SideToMove(i int) string {
	if g.positions[i].Turn() == chess.White {
		return "white"
	}

	return "black"
}

func (g *notnilGame) FullmoveNumber(i int) int {
	return fenFullmove(g.positions[i].String())
}

// fenFullmove reads the fullmove counter (sixth FEN field).
func fenFullmove(fen string) int {
	fields := strings.Fields(fen)
	if len(fields) < 6 {
		return 1
	}

	n, err := strconv.Atoi(fields[5])
	if err != nil || n < 1 {
		return 1
	}

	return n
}
