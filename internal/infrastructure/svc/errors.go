package svc

import (
	"errors"

	"quoteboard/internal/application/usecase/board"
)

// ErrNoFeedsEnabled is returned by Run when there is no feed to stream and no API to serve.
var ErrNoFeedsEnabled = board.ErrNoFeeds

// ErrStorageInitFailed wraps any store that failed to open.
var ErrStorageInitFailed = errors.New("storage initialization failed")
