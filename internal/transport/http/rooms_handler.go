package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"live-quiz-service/internal/app"
	"live-quiz-service/internal/domain"
)

// RoomsHandler serves read-only room snapshots. It never creates a room.
type RoomsHandler struct {
	coordinator *app.Coordinator
	logger      zerolog.Logger
}

func NewRoomsHandler(coordinator *app.Coordinator, logger zerolog.Logger) *RoomsHandler {
	return &RoomsHandler{coordinator: coordinator, logger: logger}
}

// ServeSnapshot handles GET /rooms/{code}.
func (h *RoomsHandler) ServeSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.coordinator.Snapshot(r.Context(), r.PathValue("code"))
	switch {
	case errors.Is(err, domain.ErrEmptyCode):
		http.Error(w, "missing room code", http.StatusBadRequest)
		return
	case errors.Is(err, domain.ErrRoomNotFound):
		http.Error(w, "room not found", http.StatusNotFound)
		return
	case err != nil:
		h.logger.Error().Err(err).Msg("room snapshot")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		h.logger.Debug().Err(err).Msg("write room snapshot")
	}
}
