package switchgame

import "switch-server/pkg/deck"

// Player is a seat in the game, identified by name
type Player struct {
	Name string
}

// NewPlayer returns a new player
func NewPlayer(name string) *Player {
	return &Player{Name: name}
}

// PlayerHand links a player to the cards they hold
type PlayerHand struct {
	Player *Player
	Hand   deck.Hand
}

func newPlayerHand(player *Player) *PlayerHand {
	return &PlayerHand{
		Player: player,
		Hand:   make(deck.Hand, 0),
	}
}
