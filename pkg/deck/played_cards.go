package deck

// PlayedCards is the discard pile
// The top card is kept apart from the buried history, only the history is ever reshuffled
type PlayedCards struct {
	top     *Card
	history []Card
}

// NewPlayedCards returns an empty discard pile
func NewPlayedCards() *PlayedCards {
	return &PlayedCards{
		history: make([]Card, 0),
	}
}

// AddCard places the card on top of the pile, burying the previous top card.
// If suitOverride is provided, the top card takes that suit (the rank is kept)
func (p *PlayedCards) AddCard(card Card, suitOverride ...Suit) {
	if p.top != nil {
		p.history = append(p.history, *p.top)
	}

	if len(suitOverride) == 1 {
		card.Suit = suitOverride[0]
	}

	p.top = &card
}

// TopCard returns the top card, the second value is false if nothing has been played yet
func (p *PlayedCards) TopCard() (Card, bool) {
	if p.top == nil {
		return Card{}, false
	}

	return *p.top, true
}

// HistoryLen returns the number of buried cards
func (p *PlayedCards) HistoryLen() int {
	return len(p.history)
}

// ReturnPlayedCards empties the history and returns it
// The top card stays where it is
func (p *PlayedCards) ReturnPlayedCards() []Card {
	cards := p.history
	p.history = make([]Card, 0)

	return cards
}
