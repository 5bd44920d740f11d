package room

import (
	"fmt"
)

// EventKind is a message a client can send to the server
type EventKind int

// inbound events
const (
	EventChatMessage EventKind = iota
	EventAccountLogin
	EventAccountListing
	EventPlayerReady
	EventPlayerMove
)

// EventKinds is every inbound event
var EventKinds = []EventKind{
	EventChatMessage,
	EventAccountLogin,
	EventAccountListing,
	EventPlayerReady,
	EventPlayerMove,
}

func (e EventKind) String() string {
	switch e {
	case EventChatMessage:
		return "chat:message"
	case EventAccountLogin:
		return "account:login"
	case EventAccountListing:
		return "account:listing"
	case EventPlayerReady:
		return "game:player:ready"
	case EventPlayerMove:
		return "game:player:move"
	}

	return fmt.Sprintf("event(%d)", int(e))
}

// ParseEventKind returns the event for the wire name
// An unknown name returns an UnrecognizedMessageError
func ParseEventKind(name string) (EventKind, error) {
	for _, kind := range EventKinds {
		if kind.String() == name {
			return kind, nil
		}
	}

	return 0, UnrecognizedMessageError{Name: name}
}

// UnrecognizedMessageError is returned when a client sends an event the server doesn't handle
type UnrecognizedMessageError struct {
	Name string
}

func (u UnrecognizedMessageError) Error() string {
	return fmt.Sprintf("unrecognized message: %q", u.Name)
}

// outbound events
const (
	eventChatMessage        = "chat:message"
	eventAccountError       = "account:error"
	eventAccountToken       = "account:token"
	eventPlayersAdded       = "players:added"
	eventPlayersReconnected = "players:reconnected"
	eventPlayersDisconnect  = "players:disconnected"
	eventPlayersListing     = "players:listing"
	eventPlayerReady        = "game:player:ready"
	eventPlayerResponse     = "game:player:response"
	eventStateStart         = "game:state:start"
	eventStateUpdate        = "game:state:update"
	eventStateWatch         = "game:state:watch"
	eventGameLog            = "game:log"
	eventGameFinished       = "game:finished"
	eventGameTerminated     = "game:terminated"
	eventError              = "error"
)
