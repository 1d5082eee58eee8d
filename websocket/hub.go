package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
)

// The hub pushes portal events (token issued, application submitted,
// certificate delivered) to connected admin dashboards. Publishing is
// fire-and-forget: a full buffer drops the event rather than blocking a
// request handler.

type Event struct {
	Type   string    `json:"type"`
	Email  string    `json:"email,omitempty"`
	Matric string    `json:"matric,omitempty"`
	Code   string    `json:"code,omitempty"`
	At     time.Time `json:"at"`
}

const (
	EventTokenIssued          = "token_issued"
	EventApplicationSubmitted = "application_submitted"
	EventCertificateDelivered = "certificate_delivered"
)

type Client struct {
	Conn *websocket.Conn
}

var clients = make(map[*websocket.Conn]struct{})
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var events = make(chan Event, 64)

func Publish(event Event) {
	event.At = time.Now()
	select {
	case events <- event:
	default:
		log.Printf("Event feed full, dropping %s event", event.Type)
	}
}

func RunHub() {
	for {
		select {
		case client := <-Register:
			clientsMu.Lock()
			clients[client.Conn] = struct{}{}
			clientsMu.Unlock()
			log.Println("Admin event client connected")
		case client := <-Unregister:
			clientsMu.Lock()
			delete(clients, client.Conn)
			clientsMu.Unlock()
			log.Println("Admin event client disconnected")
		case event := <-events:
			clientsMu.RLock()
			var dead []*websocket.Conn
			for conn := range clients {
				if err := conn.WriteJSON(event); err != nil {
					log.Printf("Error sending event to client: %v", err)
					conn.Close()
					dead = append(dead, conn)
				}
			}
			clientsMu.RUnlock()
			if len(dead) > 0 {
				clientsMu.Lock()
				for _, conn := range dead {
					delete(clients, conn)
				}
				clientsMu.Unlock()
			}
		}
	}
}
