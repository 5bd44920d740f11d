package room

import (
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

// Registry is responsible for dispatching clients to rooms
// A room is created when its first client connects and removed when its last client leaves
type Registry struct {
	options Options
	rooms   map[string]*Room
	lock    sync.Mutex
}

// NewRegistry returns a new registry
// It panics if an inbound event has no handler
func NewRegistry(opts Options) *Registry {
	if err := validateHandlers(handlers); err != nil {
		panic(err)
	}

	return &Registry{
		options: opts,
		rooms:   make(map[string]*Room),
	}
}

// ClientConnected is called when a client connects to the server
func (r *Registry) ClientConnected(client *Client) {
	r.lock.Lock()
	defer r.lock.Unlock()

	logrus.WithField("client", client.String()).Debug("client connected")
	room, found := r.rooms[client.roomID]
	if !found {
		room = newRoom(client.roomID, r.options)
		room.StartShift()
		r.rooms[client.roomID] = room
	}

	room.AddClient(client)
}

// ClientDisconnected is called when a client disconnects from the server
func (r *Registry) ClientDisconnected(client *Client) {
	r.lock.Lock()
	defer r.lock.Unlock()

	logrus.WithField("client", client.String()).Debug("client disconnected")
	room, found := r.rooms[client.roomID]
	if !found || room != client.room {
		logrus.WithField("room", client.roomID).Debug("room was already removed")
		return
	}

	if room.RemoveClient(client) {
		room.EndShift()
		delete(r.rooms, client.roomID)
	}
}

// Room returns the room with the ID
func (r *Registry) Room(id string) (*Room, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()

	room, found := r.rooms[id]
	return room, found
}

// RoomIDs returns the IDs of every open room, sorted
func (r *Registry) RoomIDs() []string {
	r.lock.Lock()
	defer r.lock.Unlock()

	ids := make([]string, 0, len(r.rooms))
	for id := range r.rooms {
		ids = append(ids, id)
	}

	sort.Strings(ids)
	return ids
}

// Reset tears down every room and disconnects their clients
func (r *Registry) Reset() {
	r.lock.Lock()
	defer r.lock.Unlock()

	for id, room := range r.rooms {
		room.EndShift()
		room.closeClients("server reset")
		delete(r.rooms, id)
	}

	logrus.Info("registry reset")
}
