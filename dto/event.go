package dto

import "encoding/json"

const (
	EventJoinFaculty        = "join-faculty"
	EventSendGroupMessage   = "send-group-message"
	EventJoinPrivateChat    = "join-private-chat"
	EventSendPrivateMessage = "send-private-message"

	EventLoadMessages        = "load-messages"
	EventNewGroupMessage     = "new-group-message"
	EventLoadPrivateMessages = "load-private-messages"
	EventNewPrivateMessage   = "new-private-message"
	EventMessageDeleted      = "message-deleted"
	EventTopicUpdated        = "topicUpdated"
	EventRulesUpdated        = "rulesUpdated"
	EventMessageError        = "message-error"
)

// Event is a frame sent from the server to a websocket client.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// InboundEvent is a frame received from a websocket client.
type InboundEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
