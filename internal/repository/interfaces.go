package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/safi/checktick/pkg/entity"
)

type UsersRepositoryI interface {
	// Creates new user in database. ID must be pre-generated
	Create(ctx context.Context, user *entity.User) error
	// Looks up user by email. Used for login
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// Looks up user by id. Used by the auth gate
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error)
	// Replaces user's password hash
	UpdatePassword(ctx context.Context, uid uuid.UUID, passwordHash string) error
}

type SessionsRepositoryI interface {
	// Persists a new session row
	Create(ctx context.Context, session *entity.Session) error
	// Looks up session by its opaque token
	FindByToken(ctx context.Context, token string) (*entity.Session, error)
	// Removes session by token. Idempotent, missing token is not an error
	DeleteByToken(ctx context.Context, token string) error
	// Removes every session owned by uid. Single-active-session policy
	DeleteByUserID(ctx context.Context, uid uuid.UUID) error
}

type TasksRepositoryI interface {
	// Inserts a task. ID and Order must be set by the caller
	Create(ctx context.Context, task *entity.Task) error
	// Searches task with given id owned by uid
	GetByID(ctx context.Context, id, uid uuid.UUID) (*entity.Task, error)
	// Lists tasks of uid ascending by display order
	GetByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Task, error)
	// Rewrites every mutable column of the task row
	Update(ctx context.Context, task *entity.Task) error
	// Deletes task with id owned by uid
	Delete(ctx context.Context, id, uid uuid.UUID) error
	// Next display order for uid: max(existing)+1, 0 when none
	NextOrder(ctx context.Context, uid uuid.UUID) (int, error)
	// Sets display order of a single owned task
	SetOrder(ctx context.Context, id, uid uuid.UUID, order int) error
	// Total and completed task counts for uid
	CountByUserID(ctx context.Context, uid uuid.UUID) (total, completed int, err error)
	// Total and completed counts among tasks due on the given calendar date
	CountDueOn(ctx context.Context, uid uuid.UUID, date string) (total, completed int, err error)
	// Count of tasks completed within [from, to]
	CountCompletedBetween(ctx context.Context, uid uuid.UUID, from, to time.Time) (int, error)
}

type ActivityLogRepositoryI interface {
	// Appends a lifecycle event. Entries are never updated or deleted
	Append(ctx context.Context, entry *entity.ActivityEntry) error
	// Timestamps of "completed" entries for uid, most recent first
	CompletionDates(ctx context.Context, uid uuid.UUID) ([]time.Time, error)
}

type PomodoroRepositoryI interface {
	Create(ctx context.Context, session *entity.PomodoroSession) error
	// Flags the session completed if owned by uid
	SetCompleted(ctx context.Context, id, uid uuid.UUID) error
	// Count of completed sessions for uid
	CountCompleted(ctx context.Context, uid uuid.UUID) (int, error)
}

type NotesRepositoryI interface {
	Create(ctx context.Context, note *entity.StickyNote) error
	GetByID(ctx context.Context, id, uid uuid.UUID) (*entity.StickyNote, error)
	GetByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.StickyNote, error)
	Update(ctx context.Context, note *entity.StickyNote) error
	Delete(ctx context.Context, id, uid uuid.UUID) error
	CreateEdge(ctx context.Context, edge *entity.NoteEdge) error
	GetEdgesByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.NoteEdge, error)
	DeleteEdge(ctx context.Context, id, uid uuid.UUID) error
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
