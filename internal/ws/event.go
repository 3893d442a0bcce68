package ws

import "encoding/json"

// Event is the wire envelope for both realtime channels. Ack is a
// client-chosen id; replies to request/response calls echo it so the client
// can correlate the answer.
type Event struct {
	Name string          `json:"event"`
	Ack  int             `json:"ack,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

type outEvent struct {
	Name string `json:"event"`
	Ack  int    `json:"ack,omitempty"`
	Data any    `json:"data,omitempty"`
}

// errorPayload is returned over the ack envelope when a request/response
// call fails.
type errorPayload struct {
	Error string `json:"error"`
}
