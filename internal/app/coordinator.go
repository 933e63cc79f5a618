package app

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"live-quiz-service/internal/domain"
)

// RoomRepository abstracts where live rooms are kept (in-memory, Redis-marked, etc).
type RoomRepository interface {
	GetOrCreate(code string) *Room
	Get(code string) (*Room, bool)
}

// Coordinator contains the live session use cases. It owns no state of its
// own; everything lives in the rooms handed out by the repository.
type Coordinator struct {
	rooms  RoomRepository
	logger zerolog.Logger
}

func NewCoordinator(rooms RoomRepository, logger zerolog.Logger) *Coordinator {
	return &Coordinator{rooms: rooms, logger: logger}
}

// Join attaches sub to the room for code, upserts the participant when one
// is given, broadcasts the roster and replays missed state to sub.
func (c *Coordinator) Join(_ context.Context, code string, sub Subscriber, participant *domain.ParticipantPatch) ([]domain.Participant, error) {
	code, err := normalizeCode(code)
	if err != nil {
		return nil, err
	}
	room := c.rooms.GetOrCreate(code)
	roster := room.join(sub, participant)
	c.logger.Debug().Str("room", code).Str("conn_id", sub.ID()).Int("roster", len(roster)).Msg("joined room")
	return roster, nil
}

// Start stamps the session start time and broadcasts it. sub, when not nil,
// is attached to the room so the presenter receives the room's events.
func (c *Coordinator) Start(_ context.Context, code string, sub Subscriber) (int64, error) {
	code, err := normalizeCode(code)
	if err != nil {
		return 0, err
	}
	room := c.rooms.GetOrCreate(code)
	ts := room.start(sub)
	c.logger.Info().Str("room", code).Int64("started_at", ts).Msg("session started")
	return ts, nil
}

// ShowQuestion stores q as the room's current question and broadcasts it.
// A room that was never started still accepts questions.
func (c *Coordinator) ShowQuestion(_ context.Context, code string, q domain.Question) error {
	code, err := normalizeCode(code)
	if err != nil {
		return err
	}
	room := c.rooms.GetOrCreate(code)
	room.showQuestion(q)
	c.logger.Debug().Str("room", code).Int("number", q.Number).Int("total", q.Total).Msg("question shown")
	return nil
}

// Reveal tells clients to show correctness. No room state changes.
func (c *Coordinator) Reveal(_ context.Context, code string) error {
	return c.signal(code, domain.Event{Type: domain.EventAnswerReveal})
}

// Next tells clients the presenter is advancing. The next question itself
// only arrives with the following ShowQuestion.
func (c *Coordinator) Next(_ context.Context, code string) error {
	return c.signal(code, domain.Event{Type: domain.EventQuestionNext})
}

// RecordAnswer relays an answer to the room as received. Nothing is
// validated, deduplicated or tallied here.
func (c *Coordinator) RecordAnswer(_ context.Context, code string, answer domain.Answer) error {
	return c.signal(code, domain.Event{Type: domain.EventAnswerReceived, Payload: answer})
}

// Leave detaches sub from the room. The roster keeps the participant.
func (c *Coordinator) Leave(_ context.Context, code string, sub Subscriber) {
	room, ok := c.rooms.Get(code)
	if !ok {
		return
	}
	room.detach(sub)
}

// Snapshot returns the stored state of an existing room.
func (c *Coordinator) Snapshot(_ context.Context, code string) (domain.RoomSnapshot, error) {
	code, err := normalizeCode(code)
	if err != nil {
		return domain.RoomSnapshot{}, err
	}
	room, ok := c.rooms.Get(code)
	if !ok {
		return domain.RoomSnapshot{}, domain.ErrRoomNotFound
	}
	return room.Snapshot(), nil
}

func (c *Coordinator) signal(code string, ev domain.Event) error {
	code, err := normalizeCode(code)
	if err != nil {
		return err
	}
	room, ok := c.rooms.Get(code)
	if !ok {
		return domain.ErrRoomNotFound
	}
	room.signal(ev)
	return nil
}

// normalizeCode rejects empty and whitespace-only codes. Any other code is
// the room identity exactly as sent.
func normalizeCode(code string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return "", domain.ErrEmptyCode
	}
	return code, nil
}
