package switchgame

import (
	"switch-server/pkg/playable"
)

var _ playable.Playable = (*Game)(nil)

// Name returns the name of the game
func (g *Game) Name() string {
	return "switch"
}

// LogChan returns a channel for sending log messages
func (g *Game) LogChan() <-chan []*playable.LogMessage {
	return g.logChan
}

// Action performs a move sent by a client
// A move that breaks the rules is not an error, it's reported back in the response
func (g *Game) Action(playerName string, message *playable.PayloadIn) (playerResponse *playable.Response, updateState bool, err error) {
	move, err := moveFromPayload(message)
	if err != nil {
		return nil, false, err
	}

	resp := g.Play(playerName, move)
	return &playable.Response{
		Key:     "response",
		Data:    resp,
		Context: message.Context,
	}, resp.Success, nil
}

func moveFromPayload(message *playable.PayloadIn) (Move, error) {
	moveType, err := MoveTypeFromString(message.Type)
	if err != nil {
		return Move{}, err
	}

	if message.Card != nil && !message.Card.Valid() {
		return Move{}, ErrInvalidCard
	}

	if message.Suit != nil && !message.Suit.Valid() {
		return Move{}, ErrInvalidSuit
	}

	return Move{
		Type: moveType,
		Card: message.Card,
		Suit: message.Suit,
	}, nil
}

// GetEndOfGameDetails returns the winner once a player has emptied their hand
func (g *Game) GetEndOfGameDetails() (gameOverDetails *playable.GameOverDetails, isGameOver bool) {
	if g.state != StateFinished {
		return nil, false
	}

	return &playable.GameOverDetails{
		Winner: g.Winner(),
		Log:    g.getGameState(),
	}, true
}
