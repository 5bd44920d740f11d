package mux

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"switch-server/internal/jwt"
	"switch-server/internal/rng"
	"switch-server/pkg/deck"
	"switch-server/pkg/room"
)

func newTestRegistry(t *testing.T) *room.Registry {
	t.Helper()

	signer, err := jwt.NewSigner("test-secret", "")
	if err != nil {
		t.Fatal(err)
	}

	return room.NewRegistry(room.Options{
		HandSize: 2,
		Signer:   signer,
		NewDeck: func() *deck.Deck {
			d := deck.NewEmpty(rng.NewSeeded(1))
			d.AddCards(deck.CardsFromString("3d,5c,10h,7c,9h,6c"))
			return d
		},
	})
}

func assertDo(t *testing.T, ts *httptest.Server, method, path string, body interface{}, respBody interface{}, statusCode int) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}

		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, ts.URL+path, reqBody)
	if err != nil {
		t.Fatal(err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	assert.Equal(t, statusCode, resp.StatusCode)

	if respBody != nil {
		if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
			t.Fatal(err)
		}
	}
}

func assertGet(t *testing.T, ts *httptest.Server, path string, respBody interface{}, statusCode int) {
	t.Helper()
	assertDo(t, ts, http.MethodGet, path, nil, respBody, statusCode)
}

func assertPost(t *testing.T, ts *httptest.Server, path string, body interface{}, respBody interface{}, statusCode int) {
	t.Helper()
	assertDo(t, ts, http.MethodPost, path, body, respBody, statusCode)
}

type testEvent struct {
	Type    string          `json:"type"`
	Name    string          `json:"name"`
	Message json.RawMessage `json:"message"`
}

func dial(t *testing.T, ts *httptest.Server, path string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		_ = conn.Close()
	})

	return conn
}

func sendMessage(t *testing.T, conn *websocket.Conn, name string, message interface{}) {
	t.Helper()

	b, err := json.Marshal(message)
	if err != nil {
		t.Fatal(err)
	}

	if err := conn.WriteJSON(room.MessageIn{Name: name, Message: b}); err != nil {
		t.Fatal(err)
	}
}

// readUntil reads events until one with the name arrives
func readUntil(t *testing.T, conn *websocket.Conn, name string) testEvent {
	t.Helper()

	_ = conn.SetReadDeadline(time.Now().Add(time.Second * 2))
	for {
		var event testEvent
		if err := conn.ReadJSON(&event); err != nil {
			t.Fatalf("waiting for %s: %v", name, err)
		}

		if event.Name == name {
			return event
		}
	}
}
