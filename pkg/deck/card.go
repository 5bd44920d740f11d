package deck

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidSuit is an error when a suit outside of the four standard suits is used
var ErrInvalidSuit = errors.New("invalid suit")

// ErrInvalidRank is an error when a rank outside of ace to king is used
var ErrInvalidRank = errors.New("invalid rank")

// Suit represents a card suit
type Suit int

// suit constants
// The numeric values are part of the wire format
const (
	Hearts Suit = iota
	Clubs
	Diamonds
	Spades
)

// Suits is every suit in wire order
var Suits = []Suit{Hearts, Clubs, Diamonds, Spades}

// Valid returns true if the suit is one of the four standard suits
func (s Suit) Valid() bool {
	switch s {
	case Hearts, Clubs, Diamonds, Spades:
		return true
	}

	return false
}

func (s Suit) String() string {
	switch s {
	case Hearts:
		return "hearts"
	case Clubs:
		return "clubs"
	case Diamonds:
		return "diamonds"
	case Spades:
		return "spades"
	}

	return fmt.Sprintf("suit(%d)", int(s))
}

// Symbol returns the unicode symbol for the suit
func (s Suit) Symbol() string {
	switch s {
	case Hearts:
		return "♡"
	case Clubs:
		return "♣"
	case Diamonds:
		return "♢"
	case Spades:
		return "♠"
	}

	panic("unknown suit")
}

// Rank is the rank of a card, ace is always low
type Rank int

// rank constants
const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// Valid returns true if the rank is between ace and king
func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten:
		return strconv.Itoa(int(r))
	}

	return fmt.Sprintf("rank(%d)", int(r))
}

// Card is an individual playing card
// Cards are values, two cards are equal if both the suit and rank match
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

// NewCard returns a card, or an error if the suit or rank is not valid
func NewCard(suit Suit, rank Rank) (Card, error) {
	if !suit.Valid() {
		return Card{}, ErrInvalidSuit
	}

	if !rank.Valid() {
		return Card{}, ErrInvalidRank
	}

	return Card{Rank: rank, Suit: suit}, nil
}

// Valid returns true if both the suit and the rank are valid
func (c Card) Valid() bool {
	return c.Suit.Valid() && c.Rank.Valid()
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.Symbol()
}

var cardRx = regexp.MustCompile(`(?i)^([1-9]|1[0-3])([cdhs])\z`)

// CardFromString returns a Card from the string.
// The string must be in the format of <rank><suit> where rank >= 1 and <= 13 and suit in [cdhs]
func CardFromString(s string) Card {
	match := cardRx.FindStringSubmatch(s)
	if match == nil {
		panic(fmt.Sprintf("could not parse card: %s", s))
	}

	rank, err := strconv.Atoi(match[1])
	if err != nil {
		panic(fmt.Sprintf("could not parse card `%s`: %v", s, err))
	}

	var suit Suit
	switch strings.ToLower(match[2]) {
	case "c":
		suit = Clubs
	case "d":
		suit = Diamonds
	case "h":
		suit = Hearts
	case "s":
		suit = Spades
	default:
		// should never be hit due to the regexp
		panic("unknown suit")
	}

	return Card{
		Rank: Rank(rank),
		Suit: suit,
	}
}

// CardsFromString will returns a slice of cards
func CardsFromString(s string) []Card {
	if s == "" {
		return []Card{}
	}

	cardStrings := strings.Split(s, ",")
	cards := make([]Card, len(cardStrings))
	for i, card := range cardStrings {
		cards[i] = CardFromString(card)
	}

	return cards
}

// CardToString converts a card (Ace of Clubs) to a string (1c)
func CardToString(card Card) string {
	var suit string
	switch card.Suit {
	case Clubs:
		suit = "c"
	case Hearts:
		suit = "h"
	case Diamonds:
		suit = "d"
	case Spades:
		suit = "s"
	}

	return fmt.Sprintf("%d%s", int(card.Rank), suit)
}

// CardsToString will convert a slice of cards to a string in the format of 2c,3h,4s,...
func CardsToString(cards []Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = CardToString(card)
	}

	return strings.Join(c, ",")
}
