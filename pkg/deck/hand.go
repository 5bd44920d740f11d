package deck

// Hand represents a collection of cards
type Hand []Card

// AddCard adds a card to the hand
func (h *Hand) AddCard(card Card) {
	*h = append(*h, card)
}

// HasCard returns true if the hand contains the specified card
func (h Hand) HasCard(card Card) bool {
	for _, c := range h {
		if c == card {
			return true
		}
	}

	return false
}

// HasRank returns true if the hand contains a card of the specified rank
func (h Hand) HasRank(rank Rank) bool {
	for _, c := range h {
		if c.Rank == rank {
			return true
		}
	}

	return false
}

// RemoveCard removes a single copy of the card
// Returns false if the card was not in the hand
func (h *Hand) RemoveCard(card Card) bool {
	for i, c := range *h {
		if c == card {
			*h = append((*h)[:i:i], (*h)[i+1:]...)
			return true
		}
	}

	return false
}

// Count returns the number of cards in the hand
func (h Hand) Count() int {
	return len(h)
}

func (h Hand) String() string {
	return CardsToString(h)
}

// Clone returns a clone of the hand
func (h Hand) Clone() Hand {
	h2 := make(Hand, len(h))
	copy(h2, h)

	return h2
}
