package playable

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"switch-server/pkg/deck"
)

// Playable is a game that can be played
type Playable interface {
	// Action performs with a message
	// If playerResponse is not null, that's the response sent directly to the client
	// If updateState is true, it will trigger a state update for all connected clients
	Action(playerName string, message *PayloadIn) (playerResponse *Response, updateState bool, err error)

	// GetPlayerState returns the current state of the game for a seated player
	// This includes the player's own hand
	GetPlayerState(playerName string) (*Response, error)

	// GetWatcherState returns the current state of the game without any hands
	GetWatcherState() *Response

	// GetEndOfGameDetails returns the details after a game is over
	// If the game is still in progress, nil will be returned and the second param will be false
	GetEndOfGameDetails() (gameOverDetails *GameOverDetails, isGameOver bool)

	// Name returns the name of the game
	Name() string

	// LogChan should return a channel that a game will send log messages to
	LogChan() <-chan []*LogMessage
}

// LogMessage is the format a game should send log messages in
// If PlayerNames is empty, assume it's a general statement, otherwise the message will be sent like "{player} did X, Y, Z"
type LogMessage struct {
	UUID        string      `json:"uuid"`
	PlayerNames []string    `json:"playerNames"`
	Cards       []deck.Card `json:"cards"`
	Message     string      `json:"message"`
	Time        time.Time   `json:"time"`
}

// Response is a container for a message sent to a client
// Key is the name of the event the client receives
type Response struct {
	Key     string      `json:"key"`
	Data    interface{} `json:"data"`
	Context string      `json:"context,omitempty"`
}

// PayloadIn is the format we expect from the JS client for a move
type PayloadIn struct {
	Type string     `json:"type"`
	Card *deck.Card `json:"card"`
	// Suit is only used when an ace is played
	Suit *deck.Suit `json:"suit"`
	// Context will be passed back on any outgoing message
	Context string `json:"context"`
}

// GameOverDetails provides details on how the game ended
type GameOverDetails struct {
	Winner string
	Log    interface{}
}

// SimpleLogMessage returns a new LogMessage
func SimpleLogMessage(playerName string, format string, a ...interface{}) *LogMessage {
	var playerNames []string
	if playerName != "" {
		playerNames = []string{playerName}
	}

	return &LogMessage{
		UUID:        uuid.New().String(),
		PlayerNames: playerNames,
		Message:     fmt.Sprintf(format, a...),
		Time:        time.Now(),
	}
}

// CardLogMessage returns a new LogMessage that shows a card
func CardLogMessage(playerName string, card deck.Card, format string, a ...interface{}) *LogMessage {
	msg := SimpleLogMessage(playerName, format, a...)
	msg.Cards = []deck.Card{card}
	return msg
}
