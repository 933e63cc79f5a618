package redis

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"live-quiz-service/internal/app"
)

const (
	keyPrefix = "live:room:"
	// markerTimeout bounds the marker write a new room makes.
	markerTimeout = time.Second
)

// RoomStore is a Redis-aware implementation of app.RoomRepository.
// Notes:
//   - Rooms stay in a local map; all session state and fan-out is in-process.
//   - Redis only carries a liveness marker per room (value: creation time in
//     epoch ms) so operators can see which codes are open. It is never read
//     back, and marker expiry does not free the room.
//   - The marker is written after the room map lock is released, so a slow
//     Redis never holds up lookups of other rooms.
type RoomStore struct {
	client        *redis.Client
	ttl           time.Duration
	clock         clockwork.Clock
	logger        zerolog.Logger
	markerTimeout time.Duration

	mu    sync.RWMutex
	rooms map[string]*app.Room
}

func NewRoomStore(client *redis.Client, ttl time.Duration, clock clockwork.Clock, logger zerolog.Logger) *RoomStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &RoomStore{
		client:        client,
		ttl:           ttl,
		clock:         clock,
		logger:        logger,
		markerTimeout: markerTimeout,
		rooms:         make(map[string]*app.Room),
	}
}

func (s *RoomStore) GetOrCreate(code string) *app.Room {
	room, created := s.getOrInsert(code)
	if created {
		s.writeMarker(code)
	}
	return room
}

func (s *RoomStore) getOrInsert(code string) (*app.Room, bool) {
	s.mu.RLock()
	room, ok := s.rooms[code]
	s.mu.RUnlock()
	if ok {
		return room, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if room, ok := s.rooms[code]; ok {
		return room, false
	}
	room = app.NewRoom(code, s.clock)
	s.rooms[code] = room
	return room, true
}

// writeMarker is best effort; a failed write is recreated by the next Refresh.
func (s *RoomStore) writeMarker(code string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.markerTimeout)
	defer cancel()
	created := strconv.FormatInt(s.clock.Now().UnixMilli(), 10)
	if err := s.client.Set(ctx, Key(code), created, s.ttl).Err(); err != nil {
		s.logger.Warn().Err(err).Str("room", code).Msg("set room marker")
	}
}

func (s *RoomStore) Get(code string) (*app.Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[code]
	return room, ok
}

// Refresh extends the TTL of every room marker, recreating markers that
// already expired.
func (s *RoomStore) Refresh(ctx context.Context) error {
	s.mu.RLock()
	codes := make([]string, 0, len(s.rooms))
	for code := range s.rooms {
		codes = append(codes, code)
	}
	s.mu.RUnlock()
	if len(codes) == 0 {
		return nil
	}

	now := strconv.FormatInt(s.clock.Now().UnixMilli(), 10)
	pipe := s.client.Pipeline()
	for _, code := range codes {
		pipe.SetNX(ctx, Key(code), now, s.ttl)
		pipe.Expire(ctx, Key(code), s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("refresh room markers: %w", err)
	}
	return nil
}

// Heartbeat calls Refresh every interval until ctx is done.
func (s *RoomStore) Heartbeat(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = s.ttl / 2
	}
	if interval <= 0 {
		<-ctx.Done()
		return nil
	}
	ticker := s.clock.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.Chan():
			if err := s.Refresh(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("room marker heartbeat")
			}
		}
	}
}

// Key returns the Redis key of the liveness marker for code.
func Key(code string) string {
	return keyPrefix + code
}
