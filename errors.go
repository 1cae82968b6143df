/*
Copyright © 2026 Stoppa contributors
*/

package main

import (
	"errors"
)

// Sentinel errors for rejected client events. None of these are fatal to the
// process; the worst outcome of any handler is a session reset.
var (
	ErrSessionFull         = errors.New("the game is full")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnknownPlayer       = errors.New("unknown player")
	ErrDuplicateSubmission = errors.New("answers already submitted")
)
