package switchgame

import (
	"errors"
	"fmt"
)

// ErrDuplicatePlayer is an error when the same name is seated twice
var ErrDuplicatePlayer = errors.New("player names must be unique")

// ErrInvalidHandSize is an error when the hand size is not at least one
var ErrInvalidHandSize = errors.New("hand size must be greater than zero")

// ErrNotEnoughCards is an error when the deck cannot cover the deal and the first top card
var ErrNotEnoughCards = errors.New("not enough cards in the deck to deal")

// ErrInvalidStartingPlayer is an error when the starting player is not a seat in the game
var ErrInvalidStartingPlayer = errors.New("starting player is out of range")

// ErrPlayerNotFound is an error when a name is not seated in the game
var ErrPlayerNotFound = errors.New("player not found with that name")

// ErrUnknownMoveType happens when a payload carries a move type other than play, pick or wait
var ErrUnknownMoveType = errors.New("unknown move type")

// ErrInvalidCard happens when a payload carries a card with an unknown rank or suit
var ErrInvalidCard = errors.New("invalid card")

// ErrInvalidSuit happens when a payload carries an unknown override suit
var ErrInvalidSuit = errors.New("invalid suit")

const (
	messageNotValidMove = "Not a valid move"
	messageGameIsOver   = "Game is over"
)

// PlayerCountError is an error on the number of players in the game
type PlayerCountError int

func (p PlayerCountError) Error() string {
	return fmt.Sprintf("expected %d–%d players, got %d", minPlayers, maxPlayers, int(p))
}
