package room

import "errors"

// ErrAlreadyLoggedIn is returned when a client logs in twice
var ErrAlreadyLoggedIn = errors.New("already logged in")

// ErrNameTaken is returned when the chosen name belongs to a connected client
var ErrNameTaken = errors.New("name is already taken")

// ErrInvalidName is returned when the chosen name is too long
var ErrInvalidName = errors.New("name must be a single line of 32 characters or less")

// ErrInvalidToken is returned when a disconnected seat is reclaimed without its token
var ErrInvalidToken = errors.New("a valid token is required to reclaim this name")

// ErrNotLoggedIn is returned when a game event is sent before account:login
var ErrNotLoggedIn = errors.New("you must log in first")

// ErrNoActiveGame is returned when a move is sent while no game is being played
var ErrNoActiveGame = errors.New("no game in progress")
