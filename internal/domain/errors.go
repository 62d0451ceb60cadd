package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNoSession         = errors.New("no active session")
	ErrEmptyPool         = errors.New("recipe pool is empty")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrCameraUnavailable = errors.New("camera unavailable")
)
