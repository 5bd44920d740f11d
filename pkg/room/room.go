package room

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"switch-server/internal/util"
	"switch-server/pkg/deck"
	"switch-server/pkg/playable"
	"switch-server/pkg/room/gamefactory"
)

const (
	minPlayers    = 2
	maxPlayers    = 4
	maxNameLength = 32
)

// TokenSigner signs the tokens clients use to reclaim a seat after a disconnect
type TokenSigner interface {
	Sign(roomID, name string) (string, error)
	Validate(token, roomID string) (name string, err error)
}

// Options configure every room created by a registry
type Options struct {
	// Game is the name of the game factory, defaults to switch
	Game string
	// HandSize is passed to the game factory, zero means the game's default
	HandSize int
	// Signer issues reconnection tokens, tokens are not used if nil
	Signer TokenSigner
	// NewDeck overrides the deck a new game is dealt from
	NewDeck func() *deck.Deck
}

// seat is a name that has logged in to the room
// A seat outlives the connection so the player can reconnect
type seat struct {
	name   string
	client *Client
	ready  bool
	// hasToken is true once a reconnection token was issued for the seat
	hasToken bool
}

// Room is a group of clients playing one game at a time
type Room struct {
	id      string
	options Options
	logger  logrus.FieldLogger

	clients map[*Client]bool
	lock    sync.RWMutex

	// NOTE: the fields below must only be accessed from the run loop
	seats         map[string]*seat
	seatOrder     []string
	game          playable.Playable
	activePlayers map[string]bool
	logMessages   []*playable.LogMessage

	execInRunLoop chan func()
	close         chan bool
	closeOnce     sync.Once
}

// newRoom creates a new room object
// This is called from a blocking state, so it needs to return quickly
func newRoom(id string, opts Options) *Room {
	if opts.Game == "" {
		opts.Game = "switch"
	}

	return &Room{
		id:            id,
		options:       opts,
		logger:        logrus.WithField("room", id),
		clients:       make(map[*Client]bool),
		seats:         make(map[string]*seat),
		seatOrder:     make([]string, 0),
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
	}
}

// ID returns the room ID
func (r *Room) ID() string {
	return r.id
}

// Clients will return a slice of connected (at the time) clients
func (r *Room) Clients() []*Client {
	r.lock.RLock()
	defer r.lock.RUnlock()

	clients := make([]*Client, 0, len(r.clients))
	for client := range r.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (r *Room) StartShift() {
	go r.runLoop()
}

func (r *Room) runLoop() {
	r.logger.Debug("creating room run loop")
	for {
		select {
		case fn := <-r.execInRunLoop:
			r.exec(fn)
		case <-r.close:
			r.logger.Debug("terminating room run loop")
			return
		}
	}
}

// exec runs fn inside the run loop
// A panic ends the active game rather than the process
func (r *Room) exec(fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.WithField("panic", rec).Error("recovered from a panic in the room run loop")
			r.terminateGame("the game ran into an unexpected error")
		}
	}()

	fn()
}

// run schedules fn on the run loop
// Nothing is scheduled once the room has ended its shift
func (r *Room) run(fn func()) {
	select {
	case r.execInRunLoop <- fn:
	case <-r.close:
	}
}

// EndShift is called when the room is no longer needed
func (r *Room) EndShift() {
	r.closeOnce.Do(func() {
		close(r.close)
	})
}

// AddClient adds a client
// This method must return quickly
func (r *Room) AddClient(client *Client) {
	r.lock.Lock()
	client.room = r
	r.clients[client] = true
	r.lock.Unlock()

	r.run(func() {
		if r.game != nil {
			client.Send(newEvent(eventStateWatch, r.game.GetWatcherState().Data))
		}
	})
}

// RemoveClient removes a client
// This method must return quickly
func (r *Room) RemoveClient(client *Client) (lastClient bool) {
	r.lock.Lock()
	delete(r.clients, client)
	nClients := len(r.clients)
	r.lock.Unlock()

	if nClients > 0 {
		r.run(func() {
			r.clientLeft(client)
		})
		return false
	}

	return true
}

// ReceivedMessage is called when a client sends a message to the server
func (r *Room) ReceivedMessage(c *Client, msg *MessageIn) {
	r.run(func() {
		r.dispatch(c, msg)
	})
}

// dispatch looks up the handler for the message and runs it
// NOTE: must only be called from the run loop
func (r *Room) dispatch(c *Client, msg *MessageIn) {
	log := r.logger.WithFields(logrus.Fields{
		"client": c.String(),
		"event":  msg.Name,
	})

	kind, err := ParseEventKind(msg.Name)
	if err != nil {
		log.WithError(err).Warn("unrecognized message")
		c.Send(newErrorEvent(eventError, err))
		return
	}

	log.Trace("received message")
	if err := handlers[kind](r, c, msg.Message); err != nil {
		log.WithError(err).Info("could not handle message")

		name := eventError
		if kind == EventAccountLogin {
			name = eventAccountError
		}

		c.Send(newErrorEvent(name, err))
	}
}

// NOTE: must only be called from the run loop
func (r *Room) broadcast(event *Event) {
	for _, client := range r.Clients() {
		client.Send(event)
	}
}

// NOTE: must only be called from the run loop
func (r *Room) clientLeft(client *Client) {
	if client.name == "" {
		return
	}

	s, ok := r.seats[client.name]
	if !ok || s.client != client {
		return
	}

	s.client = nil
	r.logger.WithField("name", s.name).Debug("player disconnected")
	r.broadcast(newEvent(eventPlayersDisconnect, s.name))
}

// closeClients asks every connected client to disconnect
func (r *Room) closeClients(reason string) {
	for _, client := range r.Clients() {
		client.close(reason)
	}
}

func (r *Room) seatFor(c *Client) (*seat, error) {
	if c.name == "" {
		return nil, ErrNotLoggedIn
	}

	s, ok := r.seats[c.name]
	if !ok || s.client != c {
		return nil, ErrNotLoggedIn
	}

	return s, nil
}

func (r *Room) nameInUse(name string) bool {
	if _, ok := r.seats[name]; ok {
		return true
	}

	for _, client := range r.Clients() {
		if client.name == name {
			return true
		}
	}

	return false
}

// guestName returns a random name no one in the room is using
func (r *Room) guestName() string {
	for i := 0; i < 10; i++ {
		if name := util.GetRandomName(); !r.nameInUse(name) {
			return name
		}
	}

	return fmt.Sprintf("%s %d", util.GetRandomName(), len(r.seatOrder)+1)
}

func validName(name string) bool {
	return utf8.RuneCountInString(name) <= maxNameLength && !strings.ContainsAny(name, "\n\r\t")
}

func (r *Room) issueToken(c *Client, s *seat) {
	if r.options.Signer == nil {
		return
	}

	token, err := r.options.Signer.Sign(r.id, s.name)
	if err != nil {
		r.logger.WithError(err).WithField("name", s.name).Error("could not sign token")
		return
	}

	s.hasToken = true
	c.Send(newEvent(eventAccountToken, tokenMessage{
		Name:  s.name,
		Token: token,
	}))
}

func (r *Room) allReady() bool {
	for _, s := range r.seats {
		if !s.ready {
			return false
		}
	}

	return true
}

func (r *Room) resetReady() {
	for _, s := range r.seats {
		s.ready = false
	}
}

func (r *Room) startGame() error {
	factory, err := gamefactory.Get(r.options.Game)
	if err != nil {
		return err
	}

	names := append([]string{}, r.seatOrder...)
	game, err := factory.CreateGame(r.logger.WithField("game", r.options.Game), names, gamefactory.Options{
		HandSize: r.options.HandSize,
		NewDeck:  r.options.NewDeck,
	})
	if err != nil {
		return fmt.Errorf("could not start the game: %w", err)
	}

	r.game = game
	r.activePlayers = make(map[string]bool)
	for _, name := range names {
		r.activePlayers[name] = true
	}
	r.logMessages = nil
	r.resetReady()

	r.logger.WithField("players", names).Info("game started")
	r.sendGameState(eventStateStart)
	r.flushLogMessages()

	return nil
}

// sendGameState sends the seated players their own state and everyone else the watcher state
// NOTE: must only be called from the run loop
func (r *Room) sendGameState(playerEvent string) {
	watch := newEvent(eventStateWatch, r.game.GetWatcherState().Data)
	for _, client := range r.Clients() {
		if client.name == "" || !r.activePlayers[client.name] || r.seats[client.name].client != client {
			client.Send(watch)
			continue
		}

		r.sendPlayerState(client, playerEvent)
	}
}

func (r *Room) sendPlayerState(client *Client, playerEvent string) {
	resp, err := r.game.GetPlayerState(client.name)
	if err != nil {
		r.logger.WithError(err).WithField("name", client.name).Error("could not get player state")
		return
	}

	client.Send(newEvent(playerEvent, resp.Data))
}

func (r *Room) endGame(details *playable.GameOverDetails) {
	r.logger.WithField("winner", details.Winner).Info("game finished")
	r.broadcast(newEvent(eventGameFinished, finishedMessage{Winner: details.Winner}))
	r.clearGame()
}

// terminateGame ends the active game without a winner
func (r *Room) terminateGame(reason string) {
	if r.game == nil {
		return
	}

	r.broadcast(newEvent(eventGameTerminated, terminatedMessage{Reason: reason}))
	r.clearGame()
}

func (r *Room) clearGame() {
	r.game = nil
	r.activePlayers = nil
	r.resetReady()
}
