package room

import (
	"switch-server/pkg/playable"
)

const logMessageLimit = 25

// addLogMessages keeps the most recent log messages for clients that reconnect
// Note: this must only be called from within the run loop
func (r *Room) addLogMessages(messages []*playable.LogMessage) {
	m := append(r.logMessages, messages...)
	count := len(m)
	if count > logMessageLimit {
		m = m[count-logMessageLimit:]
	}

	r.logMessages = m
}

// flushLogMessages drains the game's log channel and sends anything new to every client
// Note: this must only be called from within the run loop
func (r *Room) flushLogMessages() {
	if r.game == nil {
		return
	}

	messages := make([]*playable.LogMessage, 0)
drain:
	for {
		select {
		case msg := <-r.game.LogChan():
			messages = append(messages, msg...)
		default:
			break drain
		}
	}

	if len(messages) == 0 {
		return
	}

	r.addLogMessages(messages)
	r.broadcast(newEvent(eventGameLog, messages))
}
