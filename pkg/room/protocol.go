package room

import (
	"encoding/json"
	"errors"
	"strings"
)

// MessageIn is the envelope a client sends
type MessageIn struct {
	Name    string          `json:"name"`
	Message json.RawMessage `json:"message"`
}

// Event is the envelope sent to a client
type Event struct {
	Type    string      `json:"type"`
	Name    string      `json:"name"`
	Message interface{} `json:"message"`
}

func newEvent(name string, message interface{}) *Event {
	return &Event{
		Type:    "event",
		Name:    name,
		Message: message,
	}
}

type errorMessage struct {
	Message string `json:"message"`
}

func newErrorEvent(name string, err error) *Event {
	return newEvent(name, errorMessage{Message: err.Error()})
}

type chatMessage struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// loginMessage is either a bare name or {name, token}
type loginMessage struct {
	Name  string `json:"name"`
	Token string `json:"token"`
}

func (l *loginMessage) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err == nil {
		l.Name = name
		return nil
	}

	type alias loginMessage
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return errors.New("login expects a name or an object with a name")
	}

	*l = loginMessage(a)
	return nil
}

type tokenMessage struct {
	Name  string `json:"name"`
	Token string `json:"token"`
}

type listingPlayer struct {
	Name         string `json:"name"`
	Ready        bool   `json:"ready"`
	Disconnected bool   `json:"disconnected"`
}

type finishedMessage struct {
	Winner string `json:"winner"`
}

type terminatedMessage struct {
	Reason string `json:"reason"`
}

// decodeMessage decodes an optional message body, an absent body decodes to the zero value
func decodeMessage(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 || strings.TrimSpace(string(raw)) == "null" {
		return nil
	}

	return json.Unmarshal(raw, v)
}

// ErrorEvent returns the event sent when a client's message could not be handled
func ErrorEvent(err error) *Event {
	return newErrorEvent(eventError, err)
}
