package http

import (
	"encoding/json"
	"errors"
	"fmt"

	"live-quiz-service/internal/domain"
)

// MessageType names a client to server message.
type MessageType string

const (
	MsgJoin         MessageType = "join"
	MsgStart        MessageType = "start"
	MsgQuestionShow MessageType = "question:show"
	MsgAnswer       MessageType = "answer"
	MsgReveal       MessageType = "reveal"
	MsgNext         MessageType = "next"
)

var (
	errUnknownMessage   = errors.New("unknown message type")
	errMalformedMessage = errors.New("malformed message")
)

type inboundEnvelope struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// inbound is the closed set of messages a client can send. Every variant is
// handled by the type switch in dispatch.
type inbound interface {
	roomCode() string
}

type joinMessage struct {
	Code        string                   `json:"code"`
	Participant *domain.ParticipantPatch `json:"participant"`
}

type startMessage struct {
	Code string `json:"code"`
}

type showQuestionMessage struct {
	Code     string          `json:"code"`
	Question domain.Question `json:"question"`
}

type answerMessage struct {
	Code          string          `json:"code"`
	QuestionIndex json.RawMessage `json:"questionIndex"`
	AnswerIndex   json.RawMessage `json:"answerIndex"`
	TimeUsed      json.RawMessage `json:"timeUsed"`
}

type revealMessage struct {
	Code string `json:"code"`
}

type nextMessage struct {
	Code string `json:"code"`
}

func (m *joinMessage) roomCode() string         { return m.Code }
func (m *startMessage) roomCode() string        { return m.Code }
func (m *showQuestionMessage) roomCode() string { return m.Code }
func (m *answerMessage) roomCode() string       { return m.Code }
func (m *revealMessage) roomCode() string       { return m.Code }
func (m *nextMessage) roomCode() string         { return m.Code }

func (m *answerMessage) answer() domain.Answer {
	return domain.Answer{
		QuestionIndex: m.QuestionIndex,
		AnswerIndex:   m.AnswerIndex,
		TimeUsed:      m.TimeUsed,
	}
}

// decodeInbound parses one frame into its message variant.
func decodeInbound(data []byte) (inbound, error) {
	var env inboundEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedMessage, err)
	}

	var msg inbound
	switch env.Type {
	case MsgJoin:
		msg = &joinMessage{}
	case MsgStart:
		msg = &startMessage{}
	case MsgQuestionShow:
		msg = &showQuestionMessage{}
	case MsgAnswer:
		msg = &answerMessage{}
	case MsgReveal:
		msg = &revealMessage{}
	case MsgNext:
		msg = &nextMessage{}
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownMessage, env.Type)
	}

	if len(env.Payload) == 0 || string(env.Payload) == "null" {
		return msg, nil
	}
	if err := json.Unmarshal(env.Payload, msg); err != nil {
		return nil, fmt.Errorf("%w: %s payload: %v", errMalformedMessage, env.Type, err)
	}
	return msg, nil
}
