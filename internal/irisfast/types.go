package irisfast

// Message is one chat event delivered by the Iris gateway.
type Message struct {
	Room   string       `json:"room"`
	Msg    string       `json:"msg"`
	Sender *string      `json:"sender,omitempty"`
	JSON   *MessageMeta `json:"json,omitempty"`
}

// MessageMeta carries the decoded per-message metadata block.
type MessageMeta struct {
	UserID string `json:"user_id"`
	ChatID string `json:"chat_id"`
}

// Config is the gateway's /config response.
type Config struct {
	Port              int    `json:"port"`
	PollingSpeed      int    `json:"polling_speed"`
	MessageRate       int    `json:"message_rate"`
	WebserverEndpoint string `json:"webserver_endpoint"`
}

// ReplyRequest is the /reply payload for both text and image replies.
type ReplyRequest struct {
	Type string `json:"type"`
	Room string `json:"room"`
	Data string `json:"data"`
}

// WebSocketState tracks the gateway event stream connection.
type WebSocketState string

const (
	WSStateDisconnected WebSocketState = "disconnected"
	WSStateConnecting   WebSocketState = "connecting"
	WSStateConnected    WebSocketState = "connected"
	WSStateReconnecting WebSocketState = "reconnecting"
	WSStateFailed       WebSocketState = "failed"
)

// MessageCallback receives inbound chat events.
type MessageCallback func(message *Message)

// StateCallback receives connection state transitions.
type StateCallback func(state WebSocketState)
