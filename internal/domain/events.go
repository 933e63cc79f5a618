package domain

// EventType names a server to client message.
type EventType string

const (
	EventRosterUpdate   EventType = "roster:update"
	EventSessionStart   EventType = "session:start"
	EventQuestionShow   EventType = "question:show"
	EventAnswerReceived EventType = "answer:received"
	EventAnswerReveal   EventType = "answer:reveal"
	EventQuestionNext   EventType = "question:next"
)

// Event is one outbound message. Payload is nil for pure signals.
type Event struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload,omitempty"`
}

// SessionStart is the payload of a session:start event.
type SessionStart struct {
	StartedAt int64 `json:"startedAt"`
}
