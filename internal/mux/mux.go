package mux

import (
	"net/http"

	gmux "github.com/gorilla/mux"
	"switch-server/pkg/room"
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version  string
	debug    bool
	registry *room.Registry
}

// NewMux returns a new HTTP mux
// Debug endpoints are only routed when debug is true
func NewMux(version string, registry *room.Registry, debug bool) *Mux {
	this := &Mux{
		Router:   gmux.NewRouter(),
		version:  version,
		debug:    debug,
		registry: registry,
	}

	r := this.Router
	r.NotFoundHandler = jsonErrorHandler(http.StatusNotFound)
	r.MethodNotAllowedHandler = jsonErrorHandler(http.StatusMethodNotAllowed)

	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodGet).Path("/room").Handler(this.getRoom())
	r.Methods(http.MethodGet).Path("/ws").Handler(this.getRoomWS())
	r.Methods(http.MethodGet).Path("/room/{id:[a-zA-Z0-9_-]{1,64}}/ws").Handler(this.getRoomWS())

	if debug {
		r.Methods(http.MethodPost).Path("/clear").Handler(this.postClear())
	}

	return this
}

type roomResponse struct {
	Rooms []string `json:"rooms"`
}

func (m *Mux) getRoom() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, roomResponse{
			Rooms: m.registry.RoomIDs(),
		})
	}
}

// postClear tears down every room, connected clients are disconnected
func (m *Mux) postClear() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.registry.Reset()
		writeJSON(w, http.StatusOK, "OK")
	}
}
