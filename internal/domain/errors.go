package domain

import "errors"

var (
	// ErrEmptyCode is returned when a message carries no join code. Callers drop such messages silently.
	ErrEmptyCode = errors.New("join code is empty")
	// ErrRoomNotFound is returned when a signal targets a code no one has opened.
	ErrRoomNotFound = errors.New("room not found")
)
