package room

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Client is a client connected to the server via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	id     string
	roomID string
	room   *Room

	// name is empty until the client logs in
	// NOTE: only read or written from the room's run loop
	name string
}

// NewClient returns a new client object for the room
func NewClient(conn *websocket.Conn, roomID string) *Client {
	return &Client{
		send:   make(chan interface{}, 256),
		Close:  make(chan string, 1),
		Conn:   conn,
		id:     uuid.New().String(),
		roomID: roomID,
	}
}

// Send send a message to the web client
// If the client's buffer is full the message is dropped and false is returned
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		logrus.WithField("client", c.String()).Warn("client send buffer is full, dropping message")
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// RoomID returns the ID of the room the client joined
func (c *Client) RoomID() string {
	return c.roomID
}

// String returns a traceable identifier for the client and room
func (c *Client) String() string {
	return fmt.Sprintf("%s:%s", c.id, c.roomID)
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *MessageIn) {
	if c.room == nil {
		logrus.WithField("client", c.String()).WithField("event", msg.Name).Warn("received message, but room not found")
		return
	}

	c.room.ReceivedMessage(c, msg)
}

// close asks the write loop to close the connection, it does not block
func (c *Client) close(reason string) {
	select {
	case c.Close <- reason:
	default:
	}
}
