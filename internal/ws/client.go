package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Client is one live websocket connection bound to a user. Outbound events
// go through the buffered send channel drained by writePump, so fan-out
// never blocks on a slow consumer.
type Client struct {
	userID int
	conn   *websocket.Conn
	send   chan []byte

	done     chan struct{}
	stopOnce sync.Once
}

func newClient(userID int, conn *websocket.Conn) *Client {
	return &Client{
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, 64),
		done:   make(chan struct{}),
	}
}

// push queues an event for delivery. Events to a client whose buffer is
// full are dropped rather than blocking the sender.
func (c *Client) push(ev outEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("marshal %s event: %v", ev.Name, err)
		return
	}

	select {
	case c.send <- data:
	default:
		log.Printf("dropping %s event for user %d: send buffer full", ev.Name, c.userID)
	}
}

// stop ends writePump and closes the connection.
func (c *Client) stop() {
	c.stopOnce.Do(func() { close(c.done) })
	c.conn.Close()
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		case data := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readEvents delivers inbound events to handle until the connection drops.
func (c *Client) readEvents(handle func(Event)) {
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			log.Printf("bad event from user %d: %v", c.userID, err)
			continue
		}
		handle(ev)
	}
}

// reject upgrades the connection just far enough to force-disconnect it.
// Unauthenticated connects get a close frame and nothing else.
func reject(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "not authenticated"),
		time.Now().Add(writeWait))
	conn.Close()
}
