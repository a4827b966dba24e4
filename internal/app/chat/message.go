/*
Package chat implements the real-time room core: which connection is bound to which user and
room, who occupies each room, and the events that keep every connected client in sync.

The Manager is the single owner of that state. Transports translate wire frames into calls on
the Manager and deliver the frames it produces through the Peer interface; Client is the
WebSocket transport.
*/
package chat

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType names a frame on the wire.
type EventType string

// Inbound events.
const (
	EventJoin        EventType = "join"
	EventLeaveRoom   EventType = "leave_room"
	EventSendMessage EventType = "send_message"
	EventTyping      EventType = "typing"
	EventStopTyping  EventType = "stop_typing"
)

// Outbound events.
const (
	EventRoomJoined     EventType = "room_joined"
	EventUserJoined     EventType = "user_joined"
	EventUserLeft       EventType = "user_left"
	EventMessageHistory EventType = "message_history"
	EventNewMessage     EventType = "new_message"
	EventUserTyping     EventType = "user_typing"
	EventUserStopTyping EventType = "user_stop_typing"
)

// Envelope is the frame format in both directions.
type Envelope struct {
	Type    EventType       `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// JoinPayload is the payload of an inbound join.
type JoinPayload struct {
	Username string `json:"username"`
	Room     string `json:"room"`
}

// RoomJoinedPayload is sent to the joining connection only.
type RoomJoinedPayload struct {
	Room    string   `json:"room"`
	Members []string `json:"members"`
}

// PresencePayload carries user_joined and user_left.
type PresencePayload struct {
	Username string   `json:"username"`
	Members  []string `json:"members"`
}

// TypingPayload carries user_typing and user_stop_typing.
type TypingPayload struct {
	Username string `json:"username"`
}

// Message is a persisted room message. The JSON form is what clients receive in
// new_message and message_history.
type Message struct {
	ID       string `json:"_id"`
	FromUser string `json:"from_user"`
	Room     string `json:"room"`
	Body     string `json:"message"`
	DateSent string `json:"date_sent"`
}

// DateSentLayout renders as MM-DD-YYYY h:mm AM/PM.
const DateSentLayout = "01-02-2006 3:04 PM"

// FormatDateSent renders t in the date_sent format, in t's location.
func FormatDateSent(t time.Time) string {
	return t.Format(DateSentLayout)
}

// encodeFrame marshals an outbound frame.
func encodeFrame(event EventType, payload any) ([]byte, error) {
	frame, err := json.Marshal(struct {
		Type    EventType `json:"type"`
		Payload any       `json:"payload"`
	}{event, payload})
	if err != nil {
		return nil, fmt.Errorf("encode %s frame: %w", event, err)
	}
	return frame, nil
}
