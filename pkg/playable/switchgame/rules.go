package switchgame

import "switch-server/pkg/deck"

// ValidPick returns true if the player is allowed to pick up instead of playing.
// Picking is a last resort: it's only allowed when nothing in the hand can be played
func ValidPick(hand deck.Hand, topCard deck.Card, state State) bool {
	switch state {
	case StateWait, StateFinished:
		return false
	case StatePick:
		// only a card of the same rank can be stacked, so only that blocks a pick
		return !hand.HasRank(topCard.Rank)
	}

	for _, card := range hand {
		if card.Suit == topCard.Suit || card.Rank == topCard.Rank || card.Rank == deck.Ace {
			return false
		}
	}

	return true
}

// ValidWait returns true if the player may answer a pending eight by waiting
func ValidWait(hand deck.Hand, state State) bool {
	if state != StateWait {
		return false
	}

	return !hand.HasRank(deck.Eight)
}

// ValidPlay returns true if the card can be played on top of topCard
// A nil card is treated as a wait
func ValidPlay(card *deck.Card, hand deck.Hand, topCard deck.Card, state State) bool {
	if card == nil {
		return ValidWait(hand, state)
	}

	switch state {
	case StateWait:
		if card.Rank != deck.Eight {
			return false
		}
	case StatePick:
		if card.Rank != topCard.Rank {
			return false
		}
	case StateFinished:
		return false
	}

	if !hand.HasCard(*card) {
		return false
	}

	if card.Rank == deck.Ace {
		return true
	}

	return card.Rank == topCard.Rank || card.Suit == topCard.Suit
}

// updateState applies the special effect of the card that was just placed face up
func (g *Game) updateState(card deck.Card) {
	switch card.Rank {
	case deck.Two:
		g.state = StatePick
		g.accumulatedCount += 2
	case deck.Four:
		g.state = StatePick
		g.accumulatedCount += 4
	case deck.Eight:
		g.state = StateWait
		g.accumulatedCount = 0
	case deck.Ace, deck.Three, deck.Five, deck.Six, deck.Seven, deck.Nine, deck.Ten, deck.Jack, deck.Queen, deck.King:
		g.state = StateNormal
		g.accumulatedCount = 0
	default:
		panic("unknown rank: " + card.Rank.String())
	}
}
