package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"user_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Picture      string    `json:"picture,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is an opaque server-side token record. Valid while now < ExpiresAt,
// all instants treated as UTC.
type Session struct {
	Token     string    `json:"-"`
	UserID    uuid.UUID `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

type Subtask struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type Task struct {
	ID          uuid.UUID `json:"task_id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Priority    string    `json:"priority"`
	Category    string    `json:"category"`
	// Calendar date YYYY-MM-DD, no time component
	DueDate     string     `json:"due_date,omitempty"`
	Completed   bool       `json:"completed"`
	Order       int        `json:"order"`
	Recurring   string     `json:"recurring,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Subtasks    []Subtask  `json:"subtasks"`
}

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

const (
	ActionCreated   = "created"
	ActionCompleted = "completed"
)

// ActivityEntry is an append-only record of a task lifecycle event.
// TaskTitle is a snapshot; the task itself may be edited or deleted later.
type ActivityEntry struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Action    string    `json:"action"`
	TaskID    uuid.UUID `json:"task_id"`
	TaskTitle string    `json:"task_title"`
	CreatedAt time.Time `json:"created_at"`
}

type PomodoroSession struct {
	ID        uuid.UUID  `json:"session_id"`
	UserID    uuid.UUID  `json:"user_id"`
	TaskID    *uuid.UUID `json:"task_id,omitempty"`
	Duration  int        `json:"duration"`
	Completed bool       `json:"completed"`
	CreatedAt time.Time  `json:"created_at"`
}

type StickyNote struct {
	ID        uuid.UUID `json:"note_id"`
	UserID    uuid.UUID `json:"user_id"`
	Content   string    `json:"content"`
	Color     string    `json:"color"`
	X         int       `json:"x_position"`
	Y         int       `json:"y_position"`
	ZIndex    int       `json:"z_index"`
	Expanded  bool      `json:"is_expanded"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type NoteEdge struct {
	ID        uuid.UUID `json:"edge_id"`
	UserID    uuid.UUID `json:"user_id"`
	SourceID  uuid.UUID `json:"source_id"`
	TargetID  uuid.UUID `json:"target_id"`
	CreatedAt time.Time `json:"created_at"`
}

type DayCount struct {
	Day       string `json:"day"`
	Completed int    `json:"completed"`
}

type Stats struct {
	Total            int        `json:"total"`
	Completed        int        `json:"completed"`
	Pending          int        `json:"pending"`
	TodayTasks       int        `json:"today_tasks"`
	TodayCompleted   int        `json:"today_completed"`
	Streak           int        `json:"streak"`
	CompletionRate   float64    `json:"completion_rate"`
	PomodoroSessions int        `json:"pomodoro_sessions"`
	ThisWeek         []DayCount `json:"this_week_data"`
	LastWeek         []DayCount `json:"last_week_data"`
}
