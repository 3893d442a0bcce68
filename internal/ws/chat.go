package ws

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/aleksk/socialnet/internal/middleware"
	"github.com/aleksk/socialnet/internal/models"
	"github.com/aleksk/socialnet/internal/store"
)

// ChatChannel is the realtime messaging endpoint. Connections are bound
// into its presence registry; message delivery fans out to every live
// connection of the sender and, when online, the receiver.
type ChatChannel struct {
	store    store.ChatStore
	Presence *Registry
}

func NewChatChannel(st store.ChatStore) *ChatChannel {
	return &ChatChannel{store: st, Presence: NewRegistry()}
}

// chatSummary is one entry of the init event: a conversation's last message
// with both participants resolved.
type chatSummary struct {
	Message  *models.Message `json:"message"`
	Sender   *models.User    `json:"sender"`
	Receiver *models.User    `json:"receiver"`
}

type chatPayload struct {
	Messages []models.Message `json:"messages"`
	Friend   *models.User     `json:"friend"`
}

func (ch *ChatChannel) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := middleware.SessionUserID(r)
	if userID == 0 {
		reject(w, r)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("chat upgrade: %v", err)
		return
	}

	client := newClient(userID, conn)
	go client.writePump()

	ch.Presence.Bind(userID, client)
	defer func() {
		ch.Presence.Unbind(userID, client)
		client.stop()
	}()

	ch.sendInit(client)
	client.readEvents(func(ev Event) { ch.handleEvent(client, ev) })
}

// sendInit replays a summary of every conversation the user participates in.
func (ch *ChatChannel) sendInit(client *Client) {
	chats, err := ch.store.UserChats(client.userID)
	if err != nil {
		log.Printf("init for user %d: %v", client.userID, err)
		return
	}

	summaries := []chatSummary{}
	for _, friendID := range chats {
		message, err := ch.store.LastMessage(friendID, client.userID)
		if err != nil {
			log.Printf("init last message %d-%d: %v", friendID, client.userID, err)
			continue
		}

		sender, err := ch.store.GetUserByID(message.SenderID)
		if err != nil {
			log.Printf("init resolve sender %d: %v", message.SenderID, err)
			continue
		}
		receiver, err := ch.store.GetUserByID(message.ReceiverID)
		if err != nil {
			log.Printf("init resolve receiver %d: %v", message.ReceiverID, err)
			continue
		}

		summaries = append(summaries, chatSummary{
			Message:  message,
			Sender:   sender,
			Receiver: receiver,
		})
	}

	client.push(outEvent{Name: "init", Data: summaries})
}

func (ch *ChatChannel) handleEvent(client *Client, ev Event) {
	switch ev.Name {
	case "getChat":
		ch.handleGetChat(client, ev)
	case "message":
		ch.handleMessage(client, ev)
	default:
		log.Printf("chat: unknown event %q from user %d", ev.Name, client.userID)
	}
}

// handleGetChat answers a history request over the ack envelope.
func (ch *ChatChannel) handleGetChat(client *Client, ev Event) {
	var friendID int
	if err := json.Unmarshal(ev.Data, &friendID); err != nil {
		client.push(outEvent{Name: ev.Name, Ack: ev.Ack, Data: errorPayload{"friendId expected"}})
		return
	}

	messages, err := ch.store.GetChat(client.userID, friendID)
	if err != nil {
		client.push(outEvent{Name: ev.Name, Ack: ev.Ack, Data: errorPayload{err.Error()}})
		return
	}
	friend, err := ch.store.GetUserByID(friendID)
	if err != nil {
		client.push(outEvent{Name: ev.Name, Ack: ev.Ack, Data: errorPayload{err.Error()}})
		return
	}

	client.push(outEvent{Name: ev.Name, Ack: ev.Ack, Data: chatPayload{
		Messages: messages,
		Friend:   friend,
	}})
}

// handleMessage persists a new message and fans it out. When the receiver
// is online the message is marked read as part of delivery; offline
// receivers keep it unread for the notification channel to report.
func (ch *ChatChannel) handleMessage(client *Client, ev Event) {
	var req struct {
		FriendID int    `json:"friendId"`
		Content  string `json:"content"`
	}
	if err := json.Unmarshal(ev.Data, &req); err != nil {
		log.Printf("chat: bad message payload from user %d: %v", client.userID, err)
		return
	}

	message, err := ch.store.CreateMessage(client.userID, req.FriendID, req.Content)
	if err != nil {
		log.Printf("chat: create message from user %d: %v", client.userID, err)
		return
	}

	if ch.Presence.Online(req.FriendID) {
		if err := ch.store.ReadMessage(req.FriendID, message.ID); err != nil {
			log.Printf("chat: auto-read %s: %v", message.ID, err)
		} else {
			message.Readed = true
		}

		for _, conn := range ch.Presence.Connections(req.FriendID) {
			conn.push(outEvent{Name: "message", Data: message})
		}
	}

	for _, conn := range ch.Presence.Connections(client.userID) {
		conn.push(outEvent{Name: "message", Data: message})
	}
}
