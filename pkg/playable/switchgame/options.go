package switchgame

const (
	minPlayers = 2
	maxPlayers = 4
)

// DefaultHandSize is the number of cards dealt to each player in the shipped game
const DefaultHandSize = 7

// Options are options for creating a new game of switch
type Options struct {
	// HandSize is how many cards each player is dealt
	HandSize int
	// StartingPlayer is the 1-based seat that moves first, zero means the first seat
	StartingPlayer int
}

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		HandSize:       DefaultHandSize,
		StartingPlayer: 1,
	}
}
