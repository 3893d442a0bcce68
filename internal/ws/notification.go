package ws

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/aleksk/socialnet/internal/middleware"
	"github.com/aleksk/socialnet/internal/store"
)

// NotificationChannel reports unread state. On connect it pushes
// status(true) once if anything is unread; clients acknowledge individual
// messages through the status request and get the recomputed flag back.
type NotificationChannel struct {
	store    store.ChatStore
	Presence *Registry
}

func NewNotificationChannel(st store.ChatStore) *NotificationChannel {
	return &NotificationChannel{store: st, Presence: NewRegistry()}
}

func (nc *NotificationChannel) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := middleware.SessionUserID(r)
	if userID == 0 {
		reject(w, r)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("notification upgrade: %v", err)
		return
	}

	client := newClient(userID, conn)
	go client.writePump()

	nc.Presence.Bind(userID, client)
	defer func() {
		nc.Presence.Unbind(userID, client)
		client.stop()
	}()

	if unread, err := nc.store.HasUnread(userID); err != nil {
		log.Printf("notification: unread check for user %d: %v", userID, err)
	} else if unread {
		client.push(outEvent{Name: "status", Data: true})
	}

	client.readEvents(func(ev Event) { nc.handleEvent(client, ev) })
}

func (nc *NotificationChannel) handleEvent(client *Client, ev Event) {
	if ev.Name != "status" {
		log.Printf("notification: unknown event %q from user %d", ev.Name, client.userID)
		return
	}

	var messageID string
	if err := json.Unmarshal(ev.Data, &messageID); err != nil {
		log.Printf("notification: bad status payload from user %d: %v", client.userID, err)
	} else if err := nc.store.ReadMessage(client.userID, messageID); err != nil {
		// Read failures must not drop the channel; the client still gets
		// the current flag.
		log.Printf("notification: read %s for user %d: %v", messageID, client.userID, err)
	}

	unread, err := nc.store.HasUnread(client.userID)
	if err != nil {
		log.Printf("notification: unread check for user %d: %v", client.userID, err)
		return
	}

	client.push(outEvent{Name: ev.Name, Ack: ev.Ack, Data: unread})
}
