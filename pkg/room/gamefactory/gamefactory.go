package gamefactory

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"switch-server/pkg/deck"
	"switch-server/pkg/playable"
)

var factories = map[string]GameFactory{
	"switch": switchFactory{},
}

// Options are the room-level settings passed to every factory
type Options struct {
	// HandSize is how many cards each player is dealt, zero means the game's default
	HandSize int
	// NewDeck returns the deck to deal from, a shuffled 52 card deck is used if nil
	NewDeck func() *deck.Deck
}

// GameFactory is a factory for creating games that implement the Playable interface
type GameFactory interface {
	CreateGame(logger logrus.FieldLogger, playerNames []string, opts Options) (playable.Playable, error)
}

// Get returns a factory by the given name
func Get(name string) (GameFactory, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("no factory with name: %s", name)
	}

	return factory, nil
}

func (o Options) deck() *deck.Deck {
	if o.NewDeck != nil {
		return o.NewDeck()
	}

	d := deck.New(nil)
	d.Shuffle()
	return d
}
