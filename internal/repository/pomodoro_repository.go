package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/safi/checktick/internal/error_values"
	"github.com/safi/checktick/pkg/cleanup"
	"github.com/safi/checktick/pkg/entity"
)

type PomodoroRepository struct {
	conn PgConnection
}

func NewPomodoroRepo(cfg DBConfig) *PomodoroRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for pomodoroRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for pomodoroRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pomodoroRepo pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &PomodoroRepository{
		conn: pool,
	}
}

func NewPomodoroRepoWithConn(conn PgConnection) *PomodoroRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for pomodoroRepo: " + err.Error())
	}
	return &PomodoroRepository{
		conn: conn,
	}
}

func (pr *PomodoroRepository) Create(ctx context.Context, session *entity.PomodoroSession) error {
	if session == nil {
		return errors.New("pomodoro session is nil")
	}
	_, err := pr.conn.Exec(ctx, `INSERT INTO pomodoro_sessions (id, user_id, task_id, duration) VALUES ($1, $2, $3, $4);`,
		session.ID,
		session.UserID,
		session.TaskID,
		session.Duration,
	)
	if err != nil {
		return errors.New("creating pomodoro session db error: " + err.Error())
	}
	return nil
}

func (pr *PomodoroRepository) SetCompleted(ctx context.Context, id, uid uuid.UUID) error {
	ct, err := pr.conn.Exec(ctx, `UPDATE pomodoro_sessions SET completed = TRUE WHERE id = $1 AND user_id = $2;`, id, uid)
	if err != nil {
		return errors.New("completing pomodoro session error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrPomodoroNotFound
	}
	return nil
}

func (pr *PomodoroRepository) CountCompleted(ctx context.Context, uid uuid.UUID) (int, error) {
	row := pr.conn.QueryRow(ctx, `SELECT COUNT(*) FROM pomodoro_sessions WHERE user_id = $1 AND completed;`, uid)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, errors.New("counting completed pomodoro sessions error: " + err.Error())
	}
	return count, nil
}
