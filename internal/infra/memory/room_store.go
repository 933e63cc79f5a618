package memory

import (
	"sync"

	"github.com/jonboulle/clockwork"
	"live-quiz-service/internal/app"
)

// RoomStore is an in-memory implementation of app.RoomRepository. Rooms
// live until the process exits.
type RoomStore struct {
	clock clockwork.Clock
	mu    sync.RWMutex
	rooms map[string]*app.Room
}

func NewRoomStore(clock clockwork.Clock) *RoomStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &RoomStore{
		clock: clock,
		rooms: make(map[string]*app.Room),
	}
}

func (s *RoomStore) GetOrCreate(code string) *app.Room {
	s.mu.RLock()
	room, ok := s.rooms[code]
	s.mu.RUnlock()
	if ok {
		return room
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if room, ok := s.rooms[code]; ok {
		return room
	}
	room = app.NewRoom(code, s.clock)
	s.rooms[code] = room
	return room
}

func (s *RoomStore) Get(code string) (*app.Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[code]
	return room, ok
}

// Len reports how many rooms are open.
func (s *RoomStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}
