package switchgame

import (
	"fmt"

	"switch-server/pkg/deck"
)

// MoveType is the kind of move a player makes
type MoveType int

// move types
const (
	MovePick MoveType = iota
	MovePlay
	MoveWait
)

func (m MoveType) String() string {
	switch m {
	case MovePick:
		return "pick"
	case MovePlay:
		return "play"
	case MoveWait:
		return "wait"
	}

	return fmt.Sprintf("move(%d)", int(m))
}

// MoveTypeFromString returns the move type for the wire name
func MoveTypeFromString(s string) (MoveType, error) {
	switch s {
	case "pick":
		return MovePick, nil
	case "play":
		return MovePlay, nil
	case "wait":
		return MoveWait, nil
	}

	return 0, fmt.Errorf("%w: %s", ErrUnknownMoveType, s)
}

// Move is a single move by a player
type Move struct {
	Type MoveType
	// Card is only set for MovePlay
	Card *deck.Card
	// Suit is the suit chosen when an ace is played, ignored for any other card
	Suit *deck.Suit
}

// PickMove returns a pick move
func PickMove() Move {
	return Move{Type: MovePick}
}

// WaitMove returns a wait move
func WaitMove() Move {
	return Move{Type: MoveWait}
}

// PlayMove returns a move that plays the card
func PlayMove(card deck.Card) Move {
	return Move{Type: MovePlay, Card: &card}
}

// PlayAceMove returns a move that plays an ace and changes the suit
func PlayAceMove(card deck.Card, suit deck.Suit) Move {
	return Move{Type: MovePlay, Card: &card, Suit: &suit}
}

// Response is the result of a move
// A move that fails leaves the game untouched
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func validResponse() Response {
	return Response{Success: true}
}

func invalidResponse(message string) Response {
	return Response{Message: message}
}
