package deck

import (
	"errors"

	"switch-server/internal/rng"
)

// ErrEndOfDeck is an error when Deal() is attempted and there are no more cards
var ErrEndOfDeck = errors.New("end of deck reached")

// Deck represents the draw pile
// The top of the deck is the end of Cards, Deal() takes from there
type Deck struct {
	Cards []Card `json:"cards"`
	rng   rng.Generator
}

// New returns a new deck with the 52 standard cards.
// Important! this deck is unshuffled. You must call the Shuffle() method to shuffle the cards
func New(gen rng.Generator) *Deck {
	d := NewEmpty(gen)
	d.buildDeck()
	return d
}

// NewEmpty returns a deck with no cards in it
func NewEmpty(gen rng.Generator) *Deck {
	if gen == nil {
		gen = rng.NewCrypto()
	}

	return &Deck{
		Cards: make([]Card, 0, 52),
		rng:   gen,
	}
}

func (d *Deck) buildDeck() {
	cards := make([]Card, 0, 52)
	for _, suit := range Suits {
		for rank := Ace; rank <= King; rank++ {
			cards = append(cards, Card{
				Rank: rank,
				Suit: suit,
			})
		}
	}

	d.Cards = cards
}

// Shuffle will shuffle the cards currently in the deck
func (d *Deck) Shuffle() {
	for j := len(d.Cards) - 1; j > 0; j-- {
		i := d.rng.Intn(j + 1)

		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
}

// AddCard puts the card on top of the deck
func (d *Deck) AddCard(card Card) {
	d.Cards = append(d.Cards, card)
}

// AddCards puts the cards on top of the deck, the last card ends up on top
func (d *Deck) AddCards(cards []Card) {
	d.Cards = append(d.Cards, cards...)
}

// Deal will remove and return the top card
// If there are no more cards, an ErrEndOfDeck is returned
func (d *Deck) Deal() (Card, error) {
	n := len(d.Cards)
	if n == 0 {
		return Card{}, ErrEndOfDeck
	}

	card := d.Cards[n-1]
	d.Cards = d.Cards[:n-1]

	return card, nil
}

// HasCard returns true if there is at least one card left
func (d *Deck) HasCard() bool {
	return len(d.Cards) > 0
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.Cards)
}
