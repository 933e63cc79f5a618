package domain

import "encoding/json"

// Participant is one roster entry of a room.
type Participant struct {
	ID              string `json:"id"`
	DisplayName     string `json:"displayName"`
	AvatarReference string `json:"avatarReference,omitempty"`
}

// ParticipantPatch carries the fields a join supplied. Nil fields were not
// supplied and leave the existing roster entry untouched.
type ParticipantPatch struct {
	ID              string  `json:"id"`
	DisplayName     *string `json:"displayName"`
	AvatarReference *string `json:"avatarReference"`
}

// Question is the payload shown to every connection of a room. It has no
// correct-answer field so the answer key can never reach participants.
type Question struct {
	Number      int      `json:"number"`
	Total       int      `json:"total"`
	Text        string   `json:"text"`
	AnswerTexts []string `json:"answerTexts"`
}

// Clone returns a copy that shares no memory with q.
func (q Question) Clone() Question {
	out := q
	if q.AnswerTexts != nil {
		out.AnswerTexts = append([]string(nil), q.AnswerTexts...)
	}
	return out
}

// Answer is relayed to the room exactly as the participant sent it. The
// fields are unverified input.
type Answer struct {
	QuestionIndex json.RawMessage `json:"questionIndex,omitempty"`
	AnswerIndex   json.RawMessage `json:"answerIndex,omitempty"`
	TimeUsed      json.RawMessage `json:"timeUsed,omitempty"`
}

// RoomSnapshot is a read-only view of a room.
type RoomSnapshot struct {
	Code            string        `json:"code"`
	Students        []Participant `json:"students"`
	StartedAt       *int64        `json:"startedAt,omitempty"`
	CurrentQuestion *Question     `json:"currentQuestion,omitempty"`
	Connections     int           `json:"connections"`
}
