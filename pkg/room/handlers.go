package room

import (
	"encoding/json"
	"fmt"
	"strings"

	"switch-server/pkg/playable"
)

type handlerFunc func(r *Room, c *Client, message json.RawMessage) error

var handlers = map[EventKind]handlerFunc{
	EventChatMessage:    (*Room).handleChatMessage,
	EventAccountLogin:   (*Room).handleLogin,
	EventAccountListing: (*Room).handleListing,
	EventPlayerReady:    (*Room).handlePlayerReady,
	EventPlayerMove:     (*Room).handlePlayerMove,
}

// validateHandlers returns an error if an inbound event has no handler
func validateHandlers(table map[EventKind]handlerFunc) error {
	for _, kind := range EventKinds {
		if fn, ok := table[kind]; !ok || fn == nil {
			return fmt.Errorf("no handler for event %s", kind)
		}
	}

	if len(table) != len(EventKinds) {
		return fmt.Errorf("expected %d handlers, got %d", len(EventKinds), len(table))
	}

	return nil
}

func (r *Room) handleChatMessage(c *Client, message json.RawMessage) error {
	var text string
	if err := decodeMessage(message, &text); err != nil {
		return fmt.Errorf("chat message must be a string: %w", err)
	}

	r.broadcast(newEvent(eventChatMessage, chatMessage{
		Name: c.name,
		Text: text,
	}))

	return nil
}

func (r *Room) handleLogin(c *Client, message json.RawMessage) error {
	if c.name != "" {
		return ErrAlreadyLoggedIn
	}

	var msg loginMessage
	if err := decodeMessage(message, &msg); err != nil {
		return err
	}

	name := strings.TrimSpace(msg.Name)
	if name == "" {
		name = r.guestName()
	}

	if !validName(name) {
		return ErrInvalidName
	}

	for _, client := range r.Clients() {
		if client != c && client.name == name {
			return ErrNameTaken
		}
	}

	log := r.logger.WithField("name", name)

	s, found := r.seats[name]
	if found {
		if s.client != nil {
			return ErrNameTaken
		}

		if s.hasToken {
			tokenName, err := r.options.Signer.Validate(msg.Token, r.id)
			if err != nil || tokenName != name {
				log.WithError(err).Info("seat reclaimed with an invalid token")
				return ErrInvalidToken
			}
		}

		s.client = c
		c.name = name
		log.Debug("player reconnected")
		r.broadcast(newEvent(eventPlayersReconnected, name))

		if r.game != nil {
			if r.activePlayers[name] {
				r.sendPlayerState(c, eventStateStart)
			}

			if len(r.logMessages) > 0 {
				c.Send(newEvent(eventGameLog, r.logMessages))
			}
		}
	} else {
		s = &seat{
			name:   name,
			client: c,
		}

		r.seats[name] = s
		r.seatOrder = append(r.seatOrder, name)
		c.name = name
		log.Debug("player logged in")
		r.broadcast(newEvent(eventPlayersAdded, name))
	}

	r.issueToken(c, s)
	return nil
}

func (r *Room) handleListing(c *Client, _ json.RawMessage) error {
	players := make([]listingPlayer, len(r.seatOrder))
	for i, name := range r.seatOrder {
		s := r.seats[name]
		players[i] = listingPlayer{
			Name:         s.name,
			Ready:        s.ready,
			Disconnected: s.client == nil,
		}
	}

	c.Send(newEvent(eventPlayersListing, players))
	return nil
}

func (r *Room) handlePlayerReady(c *Client, _ json.RawMessage) error {
	s, err := r.seatFor(c)
	if err != nil {
		return err
	}

	if r.game != nil {
		r.logger.WithField("name", s.name).Debug("game in progress, ignoring ready")
		return nil
	}

	s.ready = true
	r.broadcast(newEvent(eventPlayerReady, s.name))

	if n := len(r.seatOrder); n < minPlayers || n > maxPlayers || !r.allReady() {
		return nil
	}

	return r.startGame()
}

func (r *Room) handlePlayerMove(c *Client, message json.RawMessage) error {
	s, err := r.seatFor(c)
	if err != nil {
		return err
	}

	if r.game == nil {
		return ErrNoActiveGame
	}

	var payload playable.PayloadIn
	if err := decodeMessage(message, &payload); err != nil {
		return fmt.Errorf("could not decode move: %w", err)
	}

	resp, updateState, err := r.game.Action(s.name, &payload)
	if err != nil {
		return err
	}

	if resp != nil {
		c.Send(newEvent(eventPlayerResponse, resp.Data))
	}

	if updateState {
		r.sendGameState(eventStateUpdate)
	}

	r.flushLogMessages()

	if details, isOver := r.game.GetEndOfGameDetails(); isOver {
		r.endGame(details)
	}

	return nil
}
