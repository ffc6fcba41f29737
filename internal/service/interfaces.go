package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/safi/checktick/pkg/entity"
)

type RegisterRequest struct {
	Name     string `validate:"required,min=1,max=100"`
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,min=8"`
}

type CreateTaskRequest struct {
	Title       string           `validate:"required,max=500"`
	Description string           `validate:"max=5000"`
	Priority    string           `validate:"omitempty,oneof=low medium high"`
	Category    string           `validate:"max=100"`
	DueDate     string           `validate:"omitempty,datetime=2006-01-02"`
	Recurring   string           `validate:"max=100"`
	Subtasks    []entity.Subtask `validate:"-"`
}

// UpdateTaskRequest enumerates every updatable field. Nil means "leave as is";
// subtasks are replaced wholesale.
type UpdateTaskRequest struct {
	Title       *string           `validate:"omitempty,min=1,max=500"`
	Description *string           `validate:"omitempty,max=5000"`
	Priority    *string           `validate:"omitempty,oneof=low medium high"`
	Category    *string           `validate:"omitempty,max=100"`
	DueDate     *string           `validate:"omitempty,datetime=2006-01-02"`
	Completed   *bool             `validate:"-"`
	Order       *int              `validate:"-"`
	Recurring   *string           `validate:"omitempty,max=100"`
	Subtasks    *[]entity.Subtask `validate:"-"`
}

type OrderAssignment struct {
	TaskID uuid.UUID
	Order  int
}

type CreateNoteRequest struct {
	Content  string `validate:"max=10000"`
	Color    string `validate:"max=50"`
	X        int    `validate:"-"`
	Y        int    `validate:"-"`
	ZIndex   int    `validate:"-"`
	Expanded bool   `validate:"-"`
}

type UpdateNoteRequest struct {
	Content  *string `validate:"omitempty,max=10000"`
	Color    *string `validate:"omitempty,max=50"`
	X        *int    `validate:"-"`
	Y        *int    `validate:"-"`
	ZIndex   *int    `validate:"-"`
	Expanded *bool   `validate:"-"`
}

type UserServiceI interface {
	// Validates credentials, hashes the password, creates the user row
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	// Compares given credentials. If ok, gives back user's data with ID
	Login(ctx context.Context, email, password string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// Verifies the current password before storing the new hash
	ChangePassword(ctx context.Context, id uuid.UUID, current, updated string) error
}

type SessionServiceI interface {
	// Issues a fresh token and invalidates all prior sessions of uid
	Create(ctx context.Context, uid uuid.UUID) (*entity.Session, error)
	// Resolves a raw token to its owning user
	Resolve(ctx context.Context, token string) (*entity.User, error)
	// Deletes the session if present. Idempotent
	Revoke(ctx context.Context, token string) error
}

type TasksServiceI interface {
	List(ctx context.Context, uid uuid.UUID) ([]*entity.Task, error)
	Create(ctx context.Context, uid uuid.UUID, req *CreateTaskRequest) (*entity.Task, error)
	Update(ctx context.Context, id, uid uuid.UUID, req *UpdateTaskRequest) (*entity.Task, error)
	Delete(ctx context.Context, id, uid uuid.UUID) error
	// Applies each assignment individually; unowned ids are skipped
	Reorder(ctx context.Context, uid uuid.UUID, assignments []OrderAssignment) error
}

type StatsServiceI interface {
	Compute(ctx context.Context, uid uuid.UUID) (*entity.Stats, error)
}

type PomodoroServiceI interface {
	Start(ctx context.Context, uid uuid.UUID, taskID *uuid.UUID, duration int) (*entity.PomodoroSession, error)
	Complete(ctx context.Context, id, uid uuid.UUID) error
}

type NotesServiceI interface {
	List(ctx context.Context, uid uuid.UUID) ([]*entity.StickyNote, error)
	Create(ctx context.Context, uid uuid.UUID, req *CreateNoteRequest) (*entity.StickyNote, error)
	Update(ctx context.Context, id, uid uuid.UUID, req *UpdateNoteRequest) (*entity.StickyNote, error)
	Delete(ctx context.Context, id, uid uuid.UUID) error
	ListEdges(ctx context.Context, uid uuid.UUID) ([]*entity.NoteEdge, error)
	// Links two owned notes
	Link(ctx context.Context, uid, sourceID, targetID uuid.UUID) (*entity.NoteEdge, error)
	Unlink(ctx context.Context, id, uid uuid.UUID) error
}
