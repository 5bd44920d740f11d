package switchgame

import (
	"switch-server/pkg/deck"
	"switch-server/pkg/playable"
)

// GameState is the overall game state
// This is safe for all players to see
type GameState struct {
	State           State              `json:"state"`
	NumberOfPlayers int                `json:"number_of_players"`
	CurrentPlayer   int                `json:"current_player"`
	TopCard         deck.Card          `json:"top_card"`
	Players         []*GameStatePlayer `json:"players"`
	CardsInDeck     int                `json:"cards_in_deck"`
	Direction       Direction          `json:"direction"`
	Winner          string             `json:"winner,omitempty"`
}

// GameStatePlayer is the state of an individual player
// This is safe for all players to see
type GameStatePlayer struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// PlayerState is the state sent to a seated player
// Hand must only be shown to the intended player
type PlayerState struct {
	*GameState
	Hand deck.Hand `json:"hand"`
}

func (g *Game) getGameState() *GameState {
	players := make([]*GameStatePlayer, len(g.players))
	for i, player := range g.players {
		players[i] = &GameStatePlayer{
			Name:  player.Name,
			Count: g.playerHands[player.Name].Hand.Count(),
		}
	}

	return &GameState{
		State:           g.state,
		NumberOfPlayers: len(g.players),
		CurrentPlayer:   g.currentPlayer,
		TopCard:         g.TopCard(),
		Players:         players,
		CardsInDeck:     g.deck.CardsLeft(),
		Direction:       g.direction,
		Winner:          g.Winner(),
	}
}

// GetPlayerState returns the state for the given player
func (g *Game) GetPlayerState(playerName string) (*playable.Response, error) {
	playerHand, ok := g.playerHands[playerName]
	if !ok {
		return nil, ErrPlayerNotFound
	}

	return &playable.Response{
		Key: "game",
		Data: &PlayerState{
			GameState: g.getGameState(),
			Hand:      playerHand.Hand.Clone(),
		},
	}, nil
}

// GetWatcherState returns the state without any hands
func (g *Game) GetWatcherState() *playable.Response {
	return &playable.Response{
		Key:  "watch",
		Data: g.getGameState(),
	}
}
