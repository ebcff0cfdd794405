/*
Package api
File: hub.go
Description:
    The WebSocket Hub fans craft events out to every connected client.

    Architecture:
    - Hub: the single manager goroutine, owns the client set.
    - Client: one browser connection with its own buffered send channel.
    - ServeWs: the HTTP handler that upgrades a GET request to a WebSocket.
*/

package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/everforgeworks/harvest-craft/internal/game"
)

// Message defines the standard JSON envelope for all real-time communication.
type Message struct {
	Type    string `json:"type"`    // Event type, e.g. "item.crafted"
	Payload any    `json:"payload"` // The event data
	Sender  string `json:"sender"`  // "system" for server-originated events
}

// Client represents a single connected browser tab.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte // Buffered outbound messages
}

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	clients map[*Client]bool

	// Broadcast receives already-encoded messages for every client.
	Broadcast chan []byte

	register   chan *Client
	unregister chan *Client
	count      chan chan int
	done       chan struct{}
	stopOnce   sync.Once

	sendBuffer int
}

// NewHub creates a Hub. Run must be started in its own goroutine.
func NewHub(sendBuffer int) *Hub {
	if sendBuffer <= 0 {
		sendBuffer = 256
	}
	return &Hub{
		Broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		count:      make(chan chan int),
		done:       make(chan struct{}),
		clients:    make(map[*Client]bool),
		sendBuffer: sendBuffer,
	}
}

// Run is the main event loop for the Hub. It returns after Stop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			log.Println("WS: New Connection Registered")

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}

		case message := <-h.Broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow or dead client, drop it.
					close(client.send)
					delete(h.clients, client)
				}
			}

		case reply := <-h.count:
			reply <- len(h.clients)

		case <-h.done:
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return
		}
	}
}

// Clients reports how many connections are registered.
func (h *Hub) Clients() int {
	reply := make(chan int, 1)
	select {
	case h.count <- reply:
		return <-reply
	case <-h.done:
		return 0
	}
}

// Stop terminates Run and closes every client's send channel.
// Calling it more than once is a no-op.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// Notify implements game.Notifier by broadcasting the event to every client.
func (h *Hub) Notify(ev game.Event) {
	msg := Message{Type: ev.Type, Payload: ev, Sender: "system"}
	jsonBytes, err := json.Marshal(msg)
	if err != nil {
		log.Printf("WS: Error marshaling %s event: %v", ev.Type, err)
		return
	}
	select {
	case h.Broadcast <- jsonBytes:
	case <-h.done:
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWs upgrades the HTTP connection and registers the client with the hub.
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WS Upgrade Error:", err)
		return
	}

	client := &Client{hub: hub, conn: conn, send: make(chan []byte, hub.sendBuffer)}

	select {
	case hub.register <- client:
	case <-hub.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// readPump drains the connection so close frames are processed.
// Clients never send commands over the socket; crafting goes through HTTP.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WS Error: %v", err)
			}
			return
		}
	}
}

// writePump pumps messages from the hub to the websocket connection.
func (c *Client) writePump() {
	defer c.conn.Close()

	// Exits when the hub closes c.send.
	for message := range c.send {
		w, err := c.conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)

		if err := w.Close(); err != nil {
			return
		}
	}
}
