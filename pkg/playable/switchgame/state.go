package switchgame

import "fmt"

// State is the state of the turn machine
type State int

// game states
const (
	// StateNormal is ordinary play
	StateNormal State = iota
	// StatePick means a two or four is pending, the next player stacks or picks up the accumulated count
	StatePick
	// StateWait means an eight is pending, the next player plays an eight or waits
	StateWait
	// StateFinished means a player emptied their hand
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StatePick:
		return "pick"
	case StateWait:
		return "wait"
	case StateFinished:
		return "finished"
	}

	return fmt.Sprintf("state(%d)", int(s))
}

// MarshalText encodes the state by name
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Direction is the direction the turn moves around the table
type Direction int

// directions
const (
	Clockwise Direction = iota
	Anticlockwise
)

func (d Direction) String() string {
	switch d {
	case Clockwise:
		return "clockwise"
	case Anticlockwise:
		return "anticlockwise"
	}

	return fmt.Sprintf("direction(%d)", int(d))
}

// MarshalText encodes the direction by name
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// reverse returns the opposite direction
func (d Direction) reverse() Direction {
	switch d {
	case Clockwise:
		return Anticlockwise
	case Anticlockwise:
		return Clockwise
	}

	panic(fmt.Sprintf("unknown direction: %d", int(d)))
}
