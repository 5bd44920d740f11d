package room

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"switch-server/internal/jwt"
	"switch-server/internal/rng"
	"switch-server/pkg/deck"
	"switch-server/pkg/playable/switchgame"
)

// fixedDeck deals alice 6c,7c and bob 9h,10h, flips the five of clubs and leaves the three of diamonds to pick
func fixedDeck() *deck.Deck {
	d := deck.NewEmpty(rng.NewSeeded(1))
	d.AddCards(deck.CardsFromString("3d,5c,10h,7c,9h,6c"))
	return d
}

func newTestRoom(t *testing.T) *Room {
	t.Helper()

	signer, err := jwt.NewSigner("test-secret", "")
	if err != nil {
		t.Fatal(err)
	}

	return newRoom("test", Options{
		HandSize: 2,
		Signer:   signer,
		NewDeck:  fixedDeck,
	})
}

// connect adds the client without going through the run loop
func connect(r *Room) *Client {
	c := NewClient(nil, r.id)
	r.lock.Lock()
	c.room = r
	r.clients[c] = true
	r.lock.Unlock()

	return c
}

func send(t *testing.T, r *Room, c *Client, name string, message interface{}) {
	t.Helper()

	var raw json.RawMessage
	if message != nil {
		b, err := json.Marshal(message)
		if err != nil {
			t.Fatal(err)
		}
		raw = b
	}

	r.dispatch(c, &MessageIn{Name: name, Message: raw})
}

// events drains everything sent to the client so far
func events(c *Client) []*Event {
	evs := make([]*Event, 0)
	for {
		select {
		case msg := <-c.SendChan():
			evs = append(evs, msg.(*Event))
		default:
			return evs
		}
	}
}

func eventNames(evs []*Event) []string {
	names := make([]string, len(evs))
	for i, ev := range evs {
		names[i] = ev.Name
	}

	return names
}

func findEvent(evs []*Event, name string) *Event {
	for _, ev := range evs {
		if ev.Name == name {
			return ev
		}
	}

	return nil
}

// startedRoom returns a room where alice and bob are playing
func startedRoom(t *testing.T) (*Room, *Client, *Client) {
	t.Helper()

	r := newTestRoom(t)
	alice := connect(r)
	bob := connect(r)
	send(t, r, alice, "account:login", "alice")
	send(t, r, bob, "account:login", "bob")
	send(t, r, alice, "game:player:ready", nil)
	send(t, r, bob, "game:player:ready", nil)
	if r.game == nil {
		t.Fatal("expected the game to start")
	}

	events(alice)
	events(bob)
	return r, alice, bob
}

func TestValidateHandlers(t *testing.T) {
	a := assert.New(t)
	a.NoError(validateHandlers(handlers))

	missing := map[EventKind]handlerFunc{}
	for kind, fn := range handlers {
		missing[kind] = fn
	}
	delete(missing, EventPlayerMove)
	a.EqualError(validateHandlers(missing), "no handler for event game:player:move")

	missing[EventPlayerMove] = nil
	a.EqualError(validateHandlers(missing), "no handler for event game:player:move")

	missing[EventPlayerMove] = (*Room).handlePlayerMove
	missing[EventKind(99)] = (*Room).handleListing
	a.EqualError(validateHandlers(missing), "expected 5 handlers, got 6")
}

func TestParseEventKind(t *testing.T) {
	a := assert.New(t)

	for _, kind := range EventKinds {
		parsed, err := ParseEventKind(kind.String())
		a.NoError(err)
		a.Equal(kind, parsed)
	}

	_, err := ParseEventKind("game:player:cheat")
	var unrecognized UnrecognizedMessageError
	a.True(errors.As(err, &unrecognized))
	a.Equal("game:player:cheat", unrecognized.Name)
	a.EqualError(err, `unrecognized message: "game:player:cheat"`)
}

func TestRoom_dispatch_unrecognized(t *testing.T) {
	a := assert.New(t)

	r := newTestRoom(t)
	c := connect(r)
	send(t, r, c, "foo", nil)

	evs := events(c)
	a.Equal([]string{"error"}, eventNames(evs))
	a.Equal(errorMessage{Message: `unrecognized message: "foo"`}, evs[0].Message)
	a.Equal("event", evs[0].Type)
}

func TestRoom_chat(t *testing.T) {
	a := assert.New(t)

	r := newTestRoom(t)
	alice := connect(r)
	watcher := connect(r)
	send(t, r, alice, "account:login", "alice")
	events(alice)
	events(watcher)

	send(t, r, alice, "chat:message", "hello")
	for _, c := range []*Client{alice, watcher} {
		evs := events(c)
		a.Equal([]string{"chat:message"}, eventNames(evs))
		a.Equal(chatMessage{Name: "alice", Text: "hello"}, evs[0].Message)
	}

	send(t, r, alice, "chat:message", map[string]string{"text": "hello"})
	a.Equal([]string{"error"}, eventNames(events(alice)))
	a.Empty(events(watcher))
}

func TestRoom_login(t *testing.T) {
	a := assert.New(t)

	r := newTestRoom(t)
	alice := connect(r)
	other := connect(r)

	send(t, r, alice, "account:login", "alice")
	evs := events(alice)
	a.Equal([]string{"players:added", "account:token"}, eventNames(evs))
	a.Equal("alice", evs[0].Message)

	token := evs[1].Message.(tokenMessage)
	a.Equal("alice", token.Name)
	a.NotEmpty(token.Token)

	a.Equal([]string{"players:added"}, eventNames(events(other)))

	send(t, r, alice, "account:login", "alice2")
	evs = events(alice)
	a.Equal([]string{"account:error"}, eventNames(evs))
	a.Equal(errorMessage{Message: ErrAlreadyLoggedIn.Error()}, evs[0].Message)

	send(t, r, other, "account:login", map[string]string{"name": " alice "})
	evs = events(other)
	a.Equal([]string{"account:error"}, eventNames(evs))
	a.Equal(errorMessage{Message: ErrNameTaken.Error()}, evs[0].Message)

	send(t, r, other, "account:login", "this name is far too long to fit on the table")
	a.Equal(errorMessage{Message: ErrInvalidName.Error()}, events(other)[0].Message)

	send(t, r, other, "account:login", 12)
	a.Equal([]string{"account:error"}, eventNames(events(other)))

	a.Equal([]string{"alice"}, r.seatOrder)
}

func TestRoom_login_guest(t *testing.T) {
	a := assert.New(t)

	r := newTestRoom(t)
	c := connect(r)
	send(t, r, c, "account:login", "")

	evs := events(c)
	a.Equal([]string{"players:added", "account:token"}, eventNames(evs))
	a.NotEmpty(c.name)
	a.Equal(c.name, evs[0].Message)

	c2 := connect(r)
	send(t, r, c2, "account:login", nil)
	a.NotEmpty(c2.name)
	a.NotEqual(c.name, c2.name)
}

func TestRoom_reconnect(t *testing.T) {
	a := assert.New(t)

	r := newTestRoom(t)
	alice := connect(r)
	bob := connect(r)
	send(t, r, alice, "account:login", "alice")
	token := events(alice)[1].Message.(tokenMessage).Token
	send(t, r, bob, "account:login", "bob")
	events(bob)

	a.False(r.RemoveClient(alice))
	r.clientLeft(alice)
	a.Equal([]string{"players:disconnected"}, eventNames(events(bob)))

	send(t, r, bob, "account:listing", nil)
	a.Equal([]listingPlayer{
		{Name: "alice", Disconnected: true},
		{Name: "bob"},
	}, events(bob)[0].Message)

	alice2 := connect(r)
	send(t, r, alice2, "account:login", "alice")
	evs := events(alice2)
	a.Equal([]string{"account:error"}, eventNames(evs))
	a.Equal(errorMessage{Message: ErrInvalidToken.Error()}, evs[0].Message)

	send(t, r, alice2, "account:login", map[string]string{"name": "alice", "token": token})
	a.Equal([]string{"players:reconnected", "account:token"}, eventNames(events(alice2)))
	a.Equal([]string{"players:reconnected"}, eventNames(events(bob)))
	a.Equal(alice2, r.seats["alice"].client)
	a.Equal([]string{"alice", "bob"}, r.seatOrder)
}

func TestRoom_reconnect_tokenFromOtherRoom(t *testing.T) {
	a := assert.New(t)

	r := newTestRoom(t)
	alice := connect(r)
	send(t, r, alice, "account:login", "alice")
	events(alice)
	r.RemoveClient(alice)
	r.clientLeft(alice)

	token, err := r.options.Signer.Sign("another-room", "alice")
	a.NoError(err)

	alice2 := connect(r)
	send(t, r, alice2, "account:login", map[string]string{"name": "alice", "token": token})
	a.Equal(errorMessage{Message: ErrInvalidToken.Error()}, events(alice2)[0].Message)
}

func TestRoom_reconnect_withoutSigner(t *testing.T) {
	a := assert.New(t)

	r := newRoom("test", Options{})
	alice := connect(r)
	send(t, r, alice, "account:login", "alice")
	a.Equal([]string{"players:added"}, eventNames(events(alice)))
	r.RemoveClient(alice)
	r.clientLeft(alice)

	alice2 := connect(r)
	send(t, r, alice2, "account:login", "alice")
	a.Equal([]string{"players:reconnected"}, eventNames(events(alice2)))
}

func TestRoom_ready(t *testing.T) {
	a := assert.New(t)

	r := newTestRoom(t)
	alice := connect(r)
	bob := connect(r)
	watcher := connect(r)

	send(t, r, watcher, "game:player:ready", nil)
	a.Equal(errorMessage{Message: ErrNotLoggedIn.Error()}, events(watcher)[0].Message)

	send(t, r, alice, "account:login", "alice")
	send(t, r, alice, "game:player:ready", nil)
	a.Nil(r.game, "one player is not enough")

	send(t, r, bob, "account:login", "bob")
	events(alice)
	events(bob)
	events(watcher)

	send(t, r, bob, "game:player:ready", nil)
	a.NotNil(r.game)

	evs := events(bob)
	a.Equal([]string{"game:player:ready", "game:state:start", "game:log"}, eventNames(evs))
	state := evs[1].Message.(*switchgame.PlayerState)
	a.Equal("9h,10h", state.Hand.String())
	a.Equal(deck.CardFromString("5c"), state.TopCard)
	a.Equal(1, state.CurrentPlayer)

	evs = events(alice)
	a.Equal([]string{"game:player:ready", "game:state:start", "game:log"}, eventNames(evs))
	a.Equal("6c,7c", evs[1].Message.(*switchgame.PlayerState).Hand.String())

	evs = events(watcher)
	a.Equal([]string{"game:player:ready", "game:state:watch", "game:log"}, eventNames(evs))
	a.IsType(&switchgame.GameState{}, evs[1].Message)

	a.False(r.seats["alice"].ready, "readiness is reset once the game starts")
	a.False(r.seats["bob"].ready)

	// ready is ignored while a game is being played
	send(t, r, alice, "game:player:ready", nil)
	a.Empty(events(alice))
}

func TestRoom_ready_tooManyPlayers(t *testing.T) {
	a := assert.New(t)

	r := newRoom("test", Options{})
	clients := make([]*Client, 5)
	for i := range clients {
		clients[i] = connect(r)
		send(t, r, clients[i], "account:login", "")
	}

	for _, c := range clients {
		send(t, r, c, "game:player:ready", nil)
	}

	a.Nil(r.game)
	a.True(r.allReady())
}

func TestRoom_ready_disconnectedSeat(t *testing.T) {
	a := assert.New(t)

	r := newTestRoom(t)
	alice := connect(r)
	bob := connect(r)
	send(t, r, alice, "account:login", "alice")
	send(t, r, bob, "account:login", "bob")
	send(t, r, alice, "game:player:ready", nil)
	r.RemoveClient(alice)
	r.clientLeft(alice)
	events(bob)

	send(t, r, bob, "game:player:ready", nil)
	a.NotNil(r.game)
	a.Equal([]string{"game:player:ready", "game:state:start", "game:log"}, eventNames(events(bob)))

	alice2 := connect(r)
	token, err := r.options.Signer.Sign(r.id, "alice")
	a.NoError(err)
	send(t, r, alice2, "account:login", map[string]string{"name": "alice", "token": token})

	evs := events(alice2)
	a.Equal([]string{"players:reconnected", "game:state:start", "game:log", "account:token"}, eventNames(evs))
	a.Equal("6c,7c", evs[1].Message.(*switchgame.PlayerState).Hand.String())
}

func TestRoom_move(t *testing.T) {
	a := assert.New(t)

	r, alice, bob := startedRoom(t)
	watcher := connect(r)

	send(t, r, alice, "game:player:move", map[string]interface{}{
		"type": "play",
		"card": map[string]int{"rank": 6, "suit": int(deck.Clubs)},
	})

	evs := events(alice)
	a.Equal([]string{"game:player:response", "game:state:update", "game:log"}, eventNames(evs))
	a.Equal(switchgame.Response{Success: true}, evs[0].Message)
	a.Equal("7c", evs[1].Message.(*switchgame.PlayerState).Hand.String())

	evs = events(bob)
	a.Equal([]string{"game:state:update", "game:log"}, eventNames(evs))
	a.Equal(2, evs[0].Message.(*switchgame.PlayerState).CurrentPlayer)

	a.Equal([]string{"game:state:watch", "game:log"}, eventNames(events(watcher)))

	// a move out of turn is answered but changes nothing
	send(t, r, alice, "game:player:move", map[string]string{"type": "pick"})
	evs = events(alice)
	a.Equal([]string{"game:player:response"}, eventNames(evs))
	a.Equal(switchgame.Response{Message: "Not player alice's turn"}, evs[0].Message)
	a.Empty(events(bob))

	send(t, r, bob, "game:player:move", map[string]string{"type": "pick"})
	a.Equal([]string{"game:player:response", "game:state:update", "game:log"}, eventNames(events(bob)))
	events(alice)
	events(watcher)

	send(t, r, alice, "game:player:move", map[string]interface{}{
		"type": "play",
		"card": map[string]int{"rank": 7, "suit": int(deck.Clubs)},
	})

	evs = events(alice)
	a.Equal([]string{"game:player:response", "game:state:update", "game:log", "game:finished"}, eventNames(evs))
	a.Equal(finishedMessage{Winner: "alice"}, findEvent(evs, "game:finished").Message)
	a.Equal([]string{"game:state:update", "game:log", "game:finished"}, eventNames(events(bob)))
	a.Equal([]string{"game:state:watch", "game:log", "game:finished"}, eventNames(events(watcher)))

	a.Nil(r.game)
	a.Nil(r.activePlayers)

	send(t, r, alice, "game:player:move", map[string]string{"type": "pick"})
	a.Equal(errorMessage{Message: ErrNoActiveGame.Error()}, events(alice)[0].Message)
}

func TestRoom_move_errors(t *testing.T) {
	a := assert.New(t)

	r, alice, _ := startedRoom(t)
	watcher := connect(r)

	send(t, r, watcher, "game:player:move", map[string]string{"type": "pick"})
	a.Equal(errorMessage{Message: ErrNotLoggedIn.Error()}, events(watcher)[0].Message)

	send(t, r, alice, "game:player:move", map[string]string{"type": "discard"})
	evs := events(alice)
	a.Equal([]string{"error"}, eventNames(evs))
	a.Equal(errorMessage{Message: "unknown move type: discard"}, evs[0].Message)

	send(t, r, alice, "game:player:move", "pick")
	a.Equal([]string{"error"}, eventNames(events(alice)))
	a.NotNil(r.game)
}

func TestRoom_addLogMessages(t *testing.T) {
	a := assert.New(t)

	r, _, _ := startedRoom(t)
	a.Len(r.logMessages, 1)

	for i := 0; i < 30; i++ {
		r.addLogMessages(r.logMessages[:1])
	}

	a.Len(r.logMessages, logMessageLimit)
}

func TestRoom_exec_recoversPanic(t *testing.T) {
	a := assert.New(t)

	r, alice, bob := startedRoom(t)
	a.NotPanics(func() {
		r.exec(func() {
			panic("boom")
		})
	})

	a.Nil(r.game)
	for _, c := range []*Client{alice, bob} {
		evs := events(c)
		a.Equal([]string{"game:terminated"}, eventNames(evs))
		a.Equal(terminatedMessage{Reason: "the game ran into an unexpected error"}, evs[0].Message)
	}

	// without a game there is nothing to terminate
	r.exec(func() {
		panic("boom")
	})
	a.Empty(events(alice))
}

func receive(t *testing.T, c *Client) *Event {
	t.Helper()

	select {
	case msg := <-c.SendChan():
		return msg.(*Event)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for an event")
	}

	return nil
}

func TestRoom_runLoop(t *testing.T) {
	a := assert.New(t)

	r := newTestRoom(t)
	r.StartShift()
	defer r.EndShift()

	c := NewClient(nil, r.id)
	r.AddClient(c)
	a.Equal([]*Client{c}, r.Clients())

	c.ReceivedMessage(&MessageIn{Name: "account:login", Message: json.RawMessage(`"alice"`)})
	a.Equal("players:added", receive(t, c).Name)
	a.Equal("account:token", receive(t, c).Name)

	a.True(r.RemoveClient(c))
	a.Empty(r.Clients())

	r.EndShift()
	// scheduling after the shift ended must not block
	r.ReceivedMessage(c, &MessageIn{Name: "account:listing"})
}
