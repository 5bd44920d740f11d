package switchgame

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"switch-server/pkg/deck"
	"switch-server/pkg/playable"
)

// Game is a single round of switch
// Game is not safe for concurrent use, callers must serialize calls to Play()
type Game struct {
	options     Options
	players     []*Player
	playerHands map[string]*PlayerHand
	deck        *deck.Deck
	playedCards *deck.PlayedCards

	// currentPlayer is a 1-based index into players
	currentPlayer    int
	direction        Direction
	state            State
	accumulatedCount int
	winner           *Player

	logger  logrus.FieldLogger
	logChan chan []*playable.LogMessage
}

// NewGame deals a new game of switch
// The deck is used in the order given; shuffle it beforehand
func NewGame(logger logrus.FieldLogger, playerNames []string, d *deck.Deck, opts Options) (*Game, error) {
	if len(playerNames) < minPlayers || len(playerNames) > maxPlayers {
		return nil, PlayerCountError(len(playerNames))
	}

	if opts.HandSize <= 0 {
		return nil, ErrInvalidHandSize
	}

	if opts.StartingPlayer == 0 {
		opts.StartingPlayer = 1
	}

	if opts.StartingPlayer < 1 || opts.StartingPlayer > len(playerNames) {
		return nil, ErrInvalidStartingPlayer
	}

	if d.CardsLeft() < opts.HandSize*len(playerNames)+1 {
		return nil, ErrNotEnoughCards
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	players := make([]*Player, len(playerNames))
	playerHands := make(map[string]*PlayerHand)
	for i, name := range playerNames {
		if _, found := playerHands[name]; found {
			return nil, ErrDuplicatePlayer
		}

		players[i] = NewPlayer(name)
		playerHands[name] = newPlayerHand(players[i])
	}

	g := &Game{
		options:       opts,
		players:       players,
		playerHands:   playerHands,
		deck:          d,
		playedCards:   deck.NewPlayedCards(),
		currentPlayer: opts.StartingPlayer,
		direction:     Clockwise,
		state:         StateNormal,
		logger:        logger,
		logChan:       make(chan []*playable.LogMessage, 256),
	}

	if err := g.deal(); err != nil {
		return nil, err
	}

	return g, nil
}

// deal gives each player one card at a time, then flips the first top card
func (g *Game) deal() error {
	for i := 0; i < g.options.HandSize; i++ {
		for _, player := range g.players {
			card, err := g.deck.Deal()
			if err != nil {
				return fmt.Errorf("could not deal to %s: %w", player.Name, err)
			}

			g.playerHands[player.Name].Hand.AddCard(card)
		}
	}

	topCard, err := g.deck.Deal()
	if err != nil {
		return fmt.Errorf("could not flip the top card: %w", err)
	}

	g.playedCards.AddCard(topCard)
	g.logger.WithField("topCard", topCard.String()).Debug("top card")

	if topCard.Rank == deck.Jack {
		g.setNextPlayer(&topCard, true)
	}

	g.updateState(topCard)

	g.sendLogMessages(playable.CardLogMessage("", topCard, "New game of switch started"))
	return nil
}

// Play validates the move and applies it
// A move that is not allowed leaves the game untouched and returns an unsuccessful response
func (g *Game) Play(playerName string, move Move) Response {
	if g.state == StateFinished {
		return invalidResponse(messageGameIsOver)
	}

	current := g.players[g.currentPlayer-1]
	if current.Name != playerName {
		return invalidResponse(fmt.Sprintf("Not player %s's turn", playerName))
	}

	playerHand := g.playerHands[current.Name]
	if !g.validMove(move, playerHand.Hand) {
		return invalidResponse(messageNotValidMove)
	}

	log := g.logger.WithFields(logrus.Fields{
		"player": playerName,
		"move":   move.Type.String(),
	})

	var played *deck.Card
	switch move.Type {
	case MovePick:
		count := 1
		if g.state == StatePick {
			count = g.accumulatedCount
			g.accumulatedCount = 0
			g.state = StateNormal
		}

		for i := 0; i < count; i++ {
			g.pick(&playerHand.Hand)
		}

		log.WithField("count", count).Debug("player picked")
		g.sendLogMessages(playable.SimpleLogMessage(playerName, "{} picked up %d", count))
	case MovePlay:
		card := *move.Card
		playerHand.Hand.RemoveCard(card)

		if card.Rank == deck.Ace && move.Suit != nil {
			g.playedCards.AddCard(card, *move.Suit)
			g.sendLogMessages(playable.CardLogMessage(playerName, card, "{} played an ace and chose %s", move.Suit.String()))
		} else {
			g.playedCards.AddCard(card)
			g.sendLogMessages(playable.CardLogMessage(playerName, card, "{} played a card"))
		}

		g.updateState(card)
		played = &card
		log.WithField("card", card.String()).Debug("player played")
	case MoveWait:
		g.state = StateNormal
		log.Debug("player waited")
		g.sendLogMessages(playable.SimpleLogMessage(playerName, "{} waited"))
	}

	if played != nil && playerHand.Hand.Count() == 0 {
		g.state = StateFinished
		g.accumulatedCount = 0
		g.winner = current
		log.Info("player won")
		g.sendLogMessages(playable.SimpleLogMessage(playerName, "{} won the game"))
		return validResponse()
	}

	g.setNextPlayer(played, false)
	return validResponse()
}

func (g *Game) validMove(move Move, hand deck.Hand) bool {
	topCard := g.TopCard()

	switch move.Type {
	case MovePick:
		return ValidPick(hand, topCard, g.state)
	case MoveWait:
		return ValidWait(hand, g.state)
	case MovePlay:
		if move.Card == nil {
			return false
		}

		if move.Suit != nil && !move.Suit.Valid() {
			return false
		}

		return ValidPlay(move.Card, hand, topCard, g.state)
	}

	return false
}

// setNextPlayer moves the turn along
// card is the card that was just placed face up, or nil if the move didn't place one
func (g *Game) setNextPlayer(card *deck.Card, startMove bool) {
	isJack := card != nil && card.Rank == deck.Jack

	// with two players a jack means play again, except on the deal when the other player starts
	if len(g.players) == 2 && isJack && !startMove {
		return
	}

	if isJack {
		g.direction = g.direction.reverse()
	}

	n := len(g.players)
	switch g.direction {
	case Clockwise:
		if g.currentPlayer == n {
			g.currentPlayer = 1
		} else {
			g.currentPlayer++
		}
	case Anticlockwise:
		if g.currentPlayer == 1 {
			g.currentPlayer = n
		} else {
			g.currentPlayer--
		}
	}
}

// pick deals a single card into the hand
// An empty deck is replenished from the buried played cards first
func (g *Game) pick(hand *deck.Hand) {
	if !g.deck.HasCard() {
		g.deck.AddCards(g.playedCards.ReturnPlayedCards())
		g.deck.Shuffle()
		g.logger.WithField("cardsLeft", g.deck.CardsLeft()).Debug("played cards shuffled back into the deck")
	}

	card, err := g.deck.Deal()
	if err != nil {
		// both the deck and the played cards are exhausted, legal play can't get here
		panic(fmt.Errorf("could not pick a card: %w", err))
	}

	hand.AddCard(card)
}

func (g *Game) sendLogMessages(msg ...*playable.LogMessage) {
	select {
	case g.logChan <- msg:
	default:
		g.logger.Warn("log channel is full, dropping log messages")
	}
}

// State returns the current state
func (g *Game) State() State {
	return g.state
}

// AccumulatedCount returns how many cards the next player must pick up if they can't stack
func (g *Game) AccumulatedCount() int {
	return g.accumulatedCount
}

// Direction returns the direction of play
func (g *Game) Direction() Direction {
	return g.direction
}

// CurrentPlayer returns the 1-based seat of the player whose turn it is
func (g *Game) CurrentPlayer() int {
	return g.currentPlayer
}

// CurrentPlayerName returns the name of the player whose turn it is
func (g *Game) CurrentPlayerName() string {
	return g.players[g.currentPlayer-1].Name
}

// Players returns the players in turn order
func (g *Game) Players() []*Player {
	return append([]*Player{}, g.players...)
}

// PlayerHand returns a copy of the player's hand
func (g *Game) PlayerHand(playerName string) (deck.Hand, error) {
	playerHand, ok := g.playerHands[playerName]
	if !ok {
		return nil, ErrPlayerNotFound
	}

	return playerHand.Hand.Clone(), nil
}

// TopCard returns the card on top of the played cards
func (g *Game) TopCard() deck.Card {
	card, ok := g.playedCards.TopCard()
	if !ok {
		panic("no top card, the game was not dealt")
	}

	return card
}

// CardsLeft returns the number of cards left in the deck
func (g *Game) CardsLeft() int {
	return g.deck.CardsLeft()
}

// PlayedCardsCount returns the number of played cards under the top card
func (g *Game) PlayedCardsCount() int {
	return g.playedCards.HistoryLen()
}

// Winner returns the winner's name, or an empty string while the game is in progress
func (g *Game) Winner() string {
	if g.winner == nil {
		return ""
	}

	return g.winner.Name
}

// Status is a summary of the game that is safe for everyone to see
type Status struct {
	CurrentPlayer int
	TopCard       deck.Card
	// Counts is the number of cards each player holds, in turn order
	Counts []int
}

// Status returns the status of the game
func (g *Game) Status() Status {
	counts := make([]int, len(g.players))
	for i, player := range g.players {
		counts[i] = g.playerHands[player.Name].Hand.Count()
	}

	return Status{
		CurrentPlayer: g.currentPlayer,
		TopCard:       g.TopCard(),
		Counts:        counts,
	}
}
