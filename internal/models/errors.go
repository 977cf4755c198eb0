package models

import "errors"

// Sentinel errors for record validation. DecodeError and ValidationError
// conditions skip the record and keep the batch going; only transaction-level
// failures abort an import.
var (
	ErrMissingFEN  = errors.New("missing FEN field")
	ErrInvalidFEN  = errors.New("invalid FEN")
	ErrBadThemes   = errors.New("themes is not a list")
	ErrEmptyRecord = errors.New("empty record")
)

// ErrPositionNotFound reports a FEN lookup that matched no stored position.
var ErrPositionNotFound = errors.New("position not found")

// ErrNoGames indicates a PGN stream with no parseable games.
var ErrNoGames = errors.New("no valid chess games found")
