package app

import (
	"sync"

	"github.com/jonboulle/clockwork"
	"live-quiz-service/internal/domain"
)

// Subscriber is a connection attached to one or more rooms.
type Subscriber interface {
	ID() string
	// Deliver hands ev to the subscriber without blocking. It returns false
	// when the subscriber is gone or cannot keep up; the room then detaches it.
	Deliver(ev domain.Event) bool
}

// Room is the live state of one session. All mutations and the fan-out of
// the resulting events happen under mu, so every subscriber of a room sees
// events in the same order. Rooms never share a lock.
type Room struct {
	code  string
	clock clockwork.Clock

	mu              sync.Mutex
	roster          *Roster
	startedAt       *int64
	currentQuestion *domain.Question
	subscribers     map[string]Subscriber
}

// NewRoom is exported for the registry implementations.
func NewRoom(code string, clock clockwork.Clock) *Room {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Room{
		code:        code,
		clock:       clock,
		roster:      NewRoster(),
		subscribers: make(map[string]Subscriber),
	}
}

// Code returns the join code of the room.
func (r *Room) Code() string {
	return r.code
}

// Snapshot returns a copy of the stored state.
func (r *Room) Snapshot() domain.RoomSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := domain.RoomSnapshot{
		Code:        r.code,
		Students:    r.roster.List(),
		Connections: len(r.subscribers),
	}
	if r.startedAt != nil {
		ts := *r.startedAt
		snap.StartedAt = &ts
	}
	if r.currentQuestion != nil {
		q := r.currentQuestion.Clone()
		snap.CurrentQuestion = &q
	}
	return snap
}

// join attaches sub, upserts the participant when one was supplied,
// broadcasts the roster and then replays the session start and the current
// question to sub alone.
func (r *Room) join(sub Subscriber, patch *domain.ParticipantPatch) []domain.Participant {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.attachLocked(sub)

	var roster []domain.Participant
	if patch != nil {
		roster = r.roster.Upsert(*patch)
	} else {
		roster = r.roster.List()
	}
	r.broadcastLocked(domain.Event{Type: domain.EventRosterUpdate, Payload: roster})

	if r.startedAt != nil {
		r.sendLocked(sub, domain.Event{
			Type:    domain.EventSessionStart,
			Payload: domain.SessionStart{StartedAt: *r.startedAt},
		})
	}
	if r.currentQuestion != nil {
		r.sendLocked(sub, domain.Event{
			Type:    domain.EventQuestionShow,
			Payload: r.currentQuestion.Clone(),
		})
	}
	return roster
}

// start stamps the session start, replacing any earlier stamp.
func (r *Room) start(sub Subscriber) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sub != nil {
		r.attachLocked(sub)
	}
	ts := r.clock.Now().UnixMilli()
	r.startedAt = &ts
	r.broadcastLocked(domain.Event{
		Type:    domain.EventSessionStart,
		Payload: domain.SessionStart{StartedAt: ts},
	})
	return ts
}

func (r *Room) showQuestion(q domain.Question) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := q.Clone()
	r.currentQuestion = &stored
	r.broadcastLocked(domain.Event{Type: domain.EventQuestionShow, Payload: stored.Clone()})
}

// signal broadcasts an event that carries no state change.
func (r *Room) signal(ev domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.broadcastLocked(ev)
}

func (r *Room) detach(sub Subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.subscribers, sub.ID())
}

func (r *Room) attachLocked(sub Subscriber) {
	r.subscribers[sub.ID()] = sub
}

func (r *Room) broadcastLocked(ev domain.Event) {
	for id, sub := range r.subscribers {
		if !sub.Deliver(ev) {
			delete(r.subscribers, id)
		}
	}
}

func (r *Room) sendLocked(sub Subscriber, ev domain.Event) {
	if !sub.Deliver(ev) {
		delete(r.subscribers, sub.ID())
	}
}
