package errorvalues

import "errors"

var (
	ErrEmailTaken       = errors.New("email already registered")
	ErrUserNotFound     = errors.New("user doesn't exist")
	ErrWrongCredentials = errors.New("wrong email or password")

	ErrSessionNotFound = errors.New("session doesn't exist")
	ErrSessionExpired  = errors.New("session expired")

	ErrTaskNotFound     = errors.New("task doesn't exist")
	ErrNoteNotFound     = errors.New("note doesn't exist")
	ErrPomodoroNotFound = errors.New("pomodoro session doesn't exist")
)
